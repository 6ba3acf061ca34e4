package strategy

import (
	"context"
	"fmt"

	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/rule"
)

// CardSource 外部输入（终端界面等），阻塞直到玩家选出一张牌
type CardSource interface {
	AwaitCard(ctx context.Context, seat int, hand card.Hand, state GameState) (card.Card, error)
	// Reject 通知玩家所选的牌不被接受，随后会再次 AwaitCard
	Reject(seat int, c card.Card, reason string)
}

// Human 把选牌交给外部输入，并在能跟牌却不跟时要求重选
type Human struct {
	source CardSource
}

// NewHuman 创建人类策略
func NewHuman(source CardSource) *Human {
	return &Human{source: source}
}

func (s *Human) SelectCard(ctx context.Context, seat int, hand card.Hand, state GameState) (card.Card, error) {
	for {
		selected, err := s.source.AwaitCard(ctx, seat, hand, state)
		if err != nil {
			return card.Card{}, err
		}
		if !hand.Contains(selected) {
			s.source.Reject(seat, selected, fmt.Sprintf("%s is not in your hand", selected))
			continue
		}
		if lead, ok := state.LeadSuit(); ok && selected.Suit != lead && rule.CanFollow(hand, lead) {
			s.source.Reject(seat, selected, fmt.Sprintf("you must follow %s", lead.Name()))
			continue
		}
		return selected, nil
	}
}

func (s *Human) OnCardPlayed(card.Card) {}

func (s *Human) Kind() Kind { return KindHuman }
