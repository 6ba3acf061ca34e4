package strategy

import (
	"context"
	"math/rand/v2"

	"github.com/palemoky/whist/internal/game/card"
)

// Random 从整手牌中随机出一张，不理会跟牌规则
type Random struct {
	rng *rand.Rand
}

// NewRandom 创建随机策略
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (s *Random) SelectCard(_ context.Context, _ int, hand card.Hand, _ GameState) (card.Card, error) {
	return pick(s.rng, hand), nil
}

func (s *Random) OnCardPlayed(card.Card) {}

func (s *Random) Kind() Kind { return KindRandom }

// Legal 能跟牌时在首牌花色中随机，否则在整手牌中随机
type Legal struct {
	rng *rand.Rand
}

// NewLegal 创建合法随机策略
func NewLegal(rng *rand.Rand) *Legal {
	return &Legal{rng: rng}
}

func (s *Legal) SelectCard(_ context.Context, _ int, hand card.Hand, state GameState) (card.Card, error) {
	if lead, ok := state.LeadSuit(); ok {
		if follow := hand.WithSuit(lead); len(follow) > 0 {
			return pick(s.rng, follow), nil
		}
	}
	return pick(s.rng, hand), nil
}

func (s *Legal) OnCardPlayed(card.Card) {}

func (s *Legal) Kind() Kind { return KindLegal }

func pick(rng *rand.Rand, cards []card.Card) card.Card {
	return cards[rng.IntN(len(cards))]
}
