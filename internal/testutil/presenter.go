//go:build !production

package testutil

import (
	"sync"

	"github.com/palemoky/whist/internal/game/card"
)

// PlayEvent 一次出牌
type PlayEvent struct {
	Seat int
	Card card.Card
}

// RecordingPresenter 记录会话发出的所有显示调用
type RecordingPresenter struct {
	mu sync.Mutex

	Statuses []string
	Scores   map[int]int
	Trumps   []card.Suit
	Hands    map[int]card.Hand
	Plays    []PlayEvent
	// Tricks 每次 ClearTrick 时收起的本墩出牌
	Tricks  [][]PlayEvent
	current []PlayEvent
}

// NewRecordingPresenter 创建记录用的 presenter
func NewRecordingPresenter() *RecordingPresenter {
	return &RecordingPresenter{
		Scores: make(map[int]int),
		Hands:  make(map[int]card.Hand),
	}
}

func (p *RecordingPresenter) DisplayStatus(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Statuses = append(p.Statuses, text)
}

func (p *RecordingPresenter) DisplayScore(seat, value int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Scores[seat] = value
}

func (p *RecordingPresenter) DisplayTrump(suit card.Suit) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Trumps = append(p.Trumps, suit)
}

func (p *RecordingPresenter) DisplayHand(seat int, hand card.Hand) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Hands[seat] = append(card.Hand(nil), hand...)
}

func (p *RecordingPresenter) DisplayPlay(seat int, c card.Card) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ev := PlayEvent{Seat: seat, Card: c}
	p.Plays = append(p.Plays, ev)
	p.current = append(p.current, ev)
}

func (p *RecordingPresenter) ClearTrick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Tricks = append(p.Tricks, p.current)
	p.current = nil
}

// LastStatus 最后一条状态
func (p *RecordingPresenter) LastStatus() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Statuses) == 0 {
		return ""
	}
	return p.Statuses[len(p.Statuses)-1]
}

// CompletedTricks 已收起的墩
func (p *RecordingPresenter) CompletedTricks() [][]PlayEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]PlayEvent(nil), p.Tricks...)
}
