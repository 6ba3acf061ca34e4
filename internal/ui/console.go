package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/session"
	"github.com/palemoky/whist/internal/game/strategy"
)

// ConsolePresenter 无界面模式：每个显示调用写一行文本
type ConsolePresenter struct {
	mu     sync.Mutex
	out    io.Writer
	faceUp [session.NumSeats]bool
}

var _ session.Presenter = (*ConsolePresenter)(nil)

// NewConsolePresenter 只打印人类座位的手牌；没有人类玩家时打印全部
func NewConsolePresenter(out io.Writer, kinds [session.NumSeats]strategy.Kind) *ConsolePresenter {
	p := &ConsolePresenter{out: out}
	hasHuman := false
	for seat, k := range kinds {
		if k == strategy.KindHuman {
			p.faceUp[seat] = true
			hasHuman = true
		}
	}
	if !hasHuman {
		for seat := range p.faceUp {
			p.faceUp[seat] = true
		}
	}
	return p
}

func (p *ConsolePresenter) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *ConsolePresenter) DisplayStatus(text string) {
	p.printf("%s", text)
}

func (p *ConsolePresenter) DisplayScore(seat, value int) {
	p.printf("score: player %d = %d", seat, value)
}

func (p *ConsolePresenter) DisplayTrump(suit card.Suit) {
	p.printf("trump: %s %s", suit, suit.Name())
}

func (p *ConsolePresenter) DisplayHand(seat int, hand card.Hand) {
	if seat < 0 || seat >= session.NumSeats || !p.faceUp[seat] {
		return
	}
	p.printf("hand: player %d [%s]", seat, hand)
}

func (p *ConsolePresenter) DisplayPlay(seat int, c card.Card) {
	p.printf("play: player %d %s", seat, c)
}

func (p *ConsolePresenter) ClearTrick() {
	p.printf("----")
}

// LineInput 从文本流逐行读取人类玩家的牌
type LineInput struct {
	in    io.Reader
	out   io.Writer
	lines chan string
	errs  chan error
	once  sync.Once
}

var _ strategy.CardSource = (*LineInput)(nil)

// NewLineInput 创建行输入，提示写到 out
func NewLineInput(in io.Reader, out io.Writer) *LineInput {
	return &LineInput{
		in:    in,
		out:   out,
		lines: make(chan string),
		errs:  make(chan error, 1),
	}
}

// start 后台读取输入，避免阻塞读无法响应 ctx 取消
func (l *LineInput) start() {
	l.once.Do(func() {
		go func() {
			scanner := bufio.NewScanner(l.in)
			for scanner.Scan() {
				l.lines <- scanner.Text()
			}
			err := scanner.Err()
			if err == nil {
				err = io.EOF
			}
			l.errs <- err
		}()
	})
}

func (l *LineInput) AwaitCard(ctx context.Context, seat int, hand card.Hand, state strategy.GameState) (card.Card, error) {
	l.start()
	for {
		prompt := fmt.Sprintf("player %d, hand [%s]", seat, hand)
		if lead, ok := state.LeadSuit(); ok {
			prompt += fmt.Sprintf(", lead %s", lead.Name())
		}
		_, _ = fmt.Fprintf(l.out, "%s, trump %s > ", prompt, state.Trump.Name())

		select {
		case <-ctx.Done():
			return card.Card{}, ctx.Err()
		case err := <-l.errs:
			l.errs <- err
			if errors.Is(err, io.EOF) {
				return card.Card{}, fmt.Errorf("input closed: %w", err)
			}
			return card.Card{}, err
		case line := <-l.lines:
			c, err := card.Parse(line)
			if err != nil {
				_, _ = fmt.Fprintf(l.out, "%v\n", err)
				continue
			}
			return c, nil
		}
	}
}

func (l *LineInput) Reject(_ int, c card.Card, reason string) {
	_, _ = fmt.Fprintf(l.out, "%s rejected: %s\n", c, reason)
}
