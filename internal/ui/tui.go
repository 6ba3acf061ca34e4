package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/session"
	"github.com/palemoky/whist/internal/game/strategy"
)

// TUI 把会话接到 bubbletea 程序上：会话在自己的 goroutine 里运行，
// 显示调用通过 Program.Send 转成消息，人类选牌经一次性 channel 返回。
type TUI struct {
	program *tea.Program
	model   *TableModel
}

var (
	_ session.Presenter   = (*TUI)(nil)
	_ strategy.CardSource = (*TUI)(nil)
)

// NewTUI 创建终端界面
func NewTUI(kinds [session.NumSeats]strategy.Kind, snd SoundPlayer, opts ...tea.ProgramOption) *TUI {
	model := NewTableModel(kinds, snd)
	return &TUI{
		program: tea.NewProgram(model, opts...),
		model:   model,
	}
}

// Run 启动界面并在后台运行 play。界面退出会取消传给 play 的 context。
func (t *TUI) Run(ctx context.Context, play func(ctx context.Context) (*session.Result, error)) (*session.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	t.model.SetCancel(cancel)

	var (
		result  *session.Result
		playErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, playErr = play(ctx)
		t.program.Send(gameOverMsg{result: result, err: playErr})
	}()

	_, err := t.program.Run()
	cancel()
	<-done
	if err != nil {
		return nil, err
	}
	return result, playErr
}

func (t *TUI) DisplayStatus(text string) {
	t.program.Send(statusMsg(text))
}

func (t *TUI) DisplayScore(seat, value int) {
	t.program.Send(scoreMsg{seat: seat, value: value})
}

func (t *TUI) DisplayTrump(suit card.Suit) {
	t.program.Send(trumpMsg(suit))
}

func (t *TUI) DisplayHand(seat int, hand card.Hand) {
	t.program.Send(handMsg{seat: seat, hand: append(card.Hand(nil), hand...)})
}

func (t *TUI) DisplayPlay(seat int, c card.Card) {
	t.program.Send(playMsg{seat: seat, card: c})
}

func (t *TUI) ClearTrick() {
	t.program.Send(clearTrickMsg{})
}

// AwaitCard 阻塞直到玩家在界面上选出一张牌或 ctx 被取消
func (t *TUI) AwaitCard(ctx context.Context, seat int, hand card.Hand, state strategy.GameState) (card.Card, error) {
	reply := make(chan card.Card, 1)
	t.program.Send(awaitCardMsg{
		seat:  seat,
		hand:  append(card.Hand(nil), hand...),
		state: state,
		reply: reply,
	})

	select {
	case <-ctx.Done():
		return card.Card{}, ctx.Err()
	case c := <-reply:
		return c, nil
	}
}

func (t *TUI) Reject(seat int, c card.Card, reason string) {
	t.program.Send(rejectMsg{seat: seat, card: c, reason: reason})
}
