package card

import (
	"slices"
	"strings"
)

// Hand 一个座位的手牌
type Hand []Card

// WithSuit 返回指定花色的牌，保持手牌顺序
func (h Hand) WithSuit(s Suit) []Card {
	var result []Card
	for _, c := range h {
		if c.Suit == s {
			result = append(result, c)
		}
	}
	return result
}

// CountSuit 统计指定花色的张数
func (h Hand) CountSuit(s Suit) int {
	n := 0
	for _, c := range h {
		if c.Suit == s {
			n++
		}
	}
	return n
}

// Contains 判断手牌中是否有这张牌
func (h Hand) Contains(c Card) bool {
	return slices.Contains(h, c)
}

// Remove 从手牌中移除一张牌，返回是否找到
func (h *Hand) Remove(c Card) bool {
	idx := slices.Index(*h, c)
	if idx < 0 {
		return false
	}
	*h = slices.Delete(*h, idx, idx+1)
	return true
}

// SortSuitPriority 按花色枚举顺序排序，同花色从大到小。仅用于展示。
func (h Hand) SortSuitPriority() {
	slices.SortFunc(h, func(a, b Card) int {
		if a.Suit != b.Suit {
			return int(a.Suit) - int(b.Suit)
		}
		return int(a.Rank) - int(b.Rank)
	})
}

// Weakest 返回点数最小的牌，点数相同时取靠前的一张
func Weakest(cards []Card) (Card, bool) {
	if len(cards) == 0 {
		return Card{}, false
	}
	weakest := cards[0]
	for _, c := range cards[1:] {
		if RankGreater(weakest, c) {
			weakest = c
		}
	}
	return weakest, true
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
