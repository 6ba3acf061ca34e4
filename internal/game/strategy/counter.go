package strategy

import (
	"slices"

	"github.com/palemoky/whist/internal/game/card"
)

// CardCounter tracks, per suit, the cards not yet seen in this seat's hand or in completed tricks.
// Each bucket is kept strongest first.
type CardCounter struct {
	remaining map[card.Suit][]card.Card
}

// NewCardCounter creates a counter holding deck minus own hand.
func NewCardCounter(deck card.Deck, own card.Hand) *CardCounter {
	cc := &CardCounter{
		remaining: make(map[card.Suit][]card.Card),
	}
	cc.Reset(deck, own)
	return cc
}

// Reset refills the counter from the deck and removes the cards in own.
func (cc *CardCounter) Reset(deck card.Deck, own card.Hand) {
	for _, s := range card.Suits {
		bucket := deck.OfSuit(s)
		sortStrongestFirst(bucket)
		cc.remaining[s] = bucket
	}
	for _, c := range own {
		cc.remove(c.Suit, c)
	}
}

// DeductFromSuit removes cards from the bucket of suit only; cards of other suits stay where they are.
func (cc *CardCounter) DeductFromSuit(suit card.Suit, cards []card.Card) {
	for _, c := range cards {
		cc.remove(suit, c)
	}
}

// DeductCards removes every card from its own suit bucket.
func (cc *CardCounter) DeductCards(cards []card.Card) {
	for _, c := range cards {
		cc.remove(c.Suit, c)
	}
}

func (cc *CardCounter) remove(suit card.Suit, c card.Card) {
	bucket := cc.remaining[suit]
	if idx := slices.Index(bucket, c); idx >= 0 {
		cc.remaining[suit] = slices.Delete(bucket, idx, idx+1)
	}
}

// Remaining returns a copy of the unseen cards of a suit, strongest first.
func (cc *CardCounter) Remaining(suit card.Suit) []card.Card {
	return slices.Clone(cc.remaining[suit])
}

// Strongest returns the strongest unseen card of a suit.
func (cc *CardCounter) Strongest(suit card.Suit) (card.Card, bool) {
	bucket := cc.remaining[suit]
	if len(bucket) == 0 {
		return card.Card{}, false
	}
	return bucket[0], true
}

// Contains reports whether c is still counted as unseen.
func (cc *CardCounter) Contains(c card.Card) bool {
	for _, bucket := range cc.remaining {
		if slices.Contains(bucket, c) {
			return true
		}
	}
	return false
}

// Total returns the number of unseen cards across all suits.
func (cc *CardCounter) Total() int {
	total := 0
	for _, bucket := range cc.remaining {
		total += len(bucket)
	}
	return total
}

func sortStrongestFirst(cards []card.Card) {
	slices.SortStableFunc(cards, func(a, b card.Card) int {
		return int(a.Rank) - int(b.Rank)
	})
}
