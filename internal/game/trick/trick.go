package trick

import (
	"errors"
	"fmt"

	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/rule"
)

// Phase 一墩牌的状态
type Phase int

const (
	PhaseAwaitingLead Phase = iota
	PhaseCollecting
	PhaseResolved
)

var phaseNames = map[Phase]string{
	PhaseAwaitingLead: "AwaitingLead",
	PhaseCollecting:   "Collecting",
	PhaseResolved:     "Resolved",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "Unknown"
}

// ErrResolved 一墩已结束，不能再出牌
var ErrResolved = errors.New("trick already resolved")

// Play 一次出牌
type Play struct {
	Seat int
	Card card.Card
}

// Trick 一墩牌：每个座位各出一张，决出一个赢家
type Trick struct {
	trump  card.Suit
	seats  int
	phase  Phase
	plays  []Play
	winner Play
}

// New 创建一墩牌
func New(trump card.Suit, seats int) *Trick {
	return &Trick{
		trump: trump,
		seats: seats,
		phase: PhaseAwaitingLead,
		plays: make([]Play, 0, seats),
	}
}

// Play 记录一次出牌并更新当前赢家，返回该牌是否成为新的赢牌
func (t *Trick) Play(seat int, c card.Card) (bool, error) {
	if t.phase == PhaseResolved {
		return false, ErrResolved
	}
	for _, p := range t.plays {
		if p.Seat == seat {
			return false, fmt.Errorf("player %d already played %s in this trick", seat, p.Card)
		}
	}

	play := Play{Seat: seat, Card: c}
	t.plays = append(t.plays, play)

	newWinner := false
	if t.phase == PhaseAwaitingLead {
		t.winner = play
		t.phase = PhaseCollecting
		newWinner = true
	} else if rule.Beats(c, t.winner.Card, t.trump) {
		t.winner = play
		newWinner = true
	}

	if len(t.plays) == t.seats {
		t.phase = PhaseResolved
	}
	return newWinner, nil
}

// Lead 首牌花色，首牌出之前返回 false
func (t *Trick) Lead() (card.Suit, bool) {
	if len(t.plays) == 0 {
		return 0, false
	}
	return t.plays[0].Card.Suit, true
}

// Winner 当前（或最终）赢家
func (t *Trick) Winner() (Play, bool) {
	if len(t.plays) == 0 {
		return Play{}, false
	}
	return t.winner, true
}

// Phase 当前状态
func (t *Trick) Phase() Phase {
	return t.phase
}

// Plays 已出的牌（副本）
func (t *Trick) Plays() []Play {
	return append([]Play(nil), t.plays...)
}

// Cards 已出的牌面
func (t *Trick) Cards() []card.Card {
	cards := make([]card.Card, len(t.plays))
	for i, p := range t.plays {
		cards[i] = p.Card
	}
	return cards
}

// Trump 本墩主牌花色
func (t *Trick) Trump() card.Suit {
	return t.trump
}
