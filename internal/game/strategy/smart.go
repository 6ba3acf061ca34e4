package strategy

import (
	"context"
	"slices"

	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/rule"
)

// SmartOption 智能策略选项
type SmartOption func(*Smart)

// WithFullTrickPurge 一墩结束后把四张牌各自从所属花色中扣除。
// 默认只从最后一张牌的花色中扣除。
func WithFullTrickPurge() SmartOption {
	return func(s *Smart) {
		s.fullPurge = true
	}
}

// Smart 记牌策略：记住其他座位可能还持有的牌，优先打出稳赢的最小牌
type Smart struct {
	counter    *CardCounter
	trickSoFar []card.Card
	fullPurge  bool
}

// NewSmart 以 牌堆 - 自己手牌 初始化记牌器，每局重新创建
func NewSmart(hand card.Hand, deck card.Deck, opts ...SmartOption) *Smart {
	s := &Smart{
		counter:    NewCardCounter(deck, hand),
		trickSoFar: make([]card.Card, 0, NumSeats),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Counter 记牌器
func (s *Smart) Counter() *CardCounter {
	return s.counter
}

func (s *Smart) Kind() Kind { return KindSmart }

// OnCardPlayed 记录本墩已出的牌，满四张时从记牌器中扣除
func (s *Smart) OnCardPlayed(c card.Card) {
	if len(s.trickSoFar) < NumSeats {
		s.trickSoFar = append(s.trickSoFar, c)
	}
	if len(s.trickSoFar) == NumSeats {
		if s.fullPurge {
			s.counter.DeductCards(s.trickSoFar)
		} else {
			s.counter.DeductFromSuit(c.Suit, s.trickSoFar)
		}
		s.trickSoFar = s.trickSoFar[:0]
	}
}

func (s *Smart) SelectCard(_ context.Context, _ int, hand card.Hand, state GameState) (card.Card, error) {
	var leadCards []card.Card
	if lead, ok := state.LeadSuit(); ok {
		leadCards = strongestFirst(hand.WithSuit(lead))
	}
	trumpCards := strongestFirst(hand.WithSuit(state.Trump))

	switch len(s.trickSoFar) {
	case 0:
		return s.lead(hand), nil
	case NumSeats - 1:
		return s.playLast(hand, leadCards, trumpCards, state.Trump), nil
	default:
		return s.playMiddle(hand, leadCards, trumpCards), nil
	}
}

// lead 按花色枚举顺序找第一张稳赢的最小牌，找不到就出最小的牌
func (s *Smart) lead(hand card.Hand) card.Card {
	for _, suit := range card.Suits {
		if c, ok := s.smallestWinningCard(strongestFirst(hand.WithSuit(suit))); ok {
			return c
		}
	}
	return weakestOnHand(hand)
}

// playLast 最后出牌：从小到大找第一张能压过本墩所有牌的牌
func (s *Smart) playLast(hand card.Hand, leadCards, trumpCards []card.Card, trump card.Suit) card.Card {
	if len(leadCards) > 0 {
		if c, ok := s.smallestBeatingTrick(leadCards, trump); ok {
			return c
		}
		return leadCards[len(leadCards)-1]
	}
	if len(trumpCards) > 0 {
		if c, ok := s.smallestBeatingTrick(trumpCards, trump); ok {
			return c
		}
	}
	return weakestOnHand(hand)
}

// playMiddle 中间出牌：有首牌花色时出稳赢的最小牌，否则出最小的首牌花色；
// 没有首牌花色时垫最小的主牌，再没有就出最小的牌
func (s *Smart) playMiddle(hand card.Hand, leadCards, trumpCards []card.Card) card.Card {
	if len(leadCards) > 0 {
		if c, ok := s.smallestWinningCard(leadCards); ok {
			return c
		}
		return leadCards[len(leadCards)-1]
	}
	if len(trumpCards) > 0 {
		return trumpCards[len(trumpCards)-1]
	}
	return weakestOnHand(hand)
}

// smallestWinningCard suitCards 为同一花色、从大到小排列。
// 其他座位没有该花色时返回该花色最小的牌；否则返回能压过最大未见牌的最小一张。
func (s *Smart) smallestWinningCard(suitCards []card.Card) (card.Card, bool) {
	if len(suitCards) == 0 {
		return card.Card{}, false
	}
	strongestUnseen, ok := s.counter.Strongest(suitCards[0].Suit)
	if !ok {
		return suitCards[len(suitCards)-1], true
	}

	var winning card.Card
	found := false
	for _, c := range suitCards {
		if !rule.RankGreater(c, strongestUnseen) {
			break
		}
		winning = c
		found = true
	}
	return winning, found
}

// smallestBeatingTrick candidates 从大到小排列，从最小的开始比较
func (s *Smart) smallestBeatingTrick(candidates []card.Card, trump card.Suit) (card.Card, bool) {
	for i := len(candidates) - 1; i >= 0; i-- {
		if s.beatsTrickSoFar(candidates[i], trump) {
			return candidates[i], true
		}
	}
	return card.Card{}, false
}

// beatsTrickSoFar 与本墩每张牌比较：
// 对非主牌，候选牌须为主牌或点数更大；对主牌，候选牌须为点数更大的主牌。
func (s *Smart) beatsTrickSoFar(c card.Card, trump card.Suit) bool {
	for _, played := range s.trickSoFar {
		if played.Suit != trump {
			if c.Suit != trump && !rule.RankGreater(c, played) {
				return false
			}
			continue
		}
		if c.Suit != trump || !rule.RankGreater(c, played) {
			return false
		}
	}
	return true
}

func weakestOnHand(hand card.Hand) card.Card {
	c, _ := card.Weakest(hand)
	return c
}

func strongestFirst(cards []card.Card) []card.Card {
	sorted := slices.Clone(cards)
	sortStrongestFirst(sorted)
	return sorted
}
