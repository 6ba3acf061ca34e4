package card

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankGreater_AceBeatsEverything(t *testing.T) {
	t.Parallel()

	ace := Card{Suit: Spades, Rank: Ace}
	for r := King; r <= Two; r++ {
		other := Card{Suit: Spades, Rank: r}
		assert.True(t, RankGreater(ace, other), "A 应大于 %s", r)
		assert.False(t, RankGreater(other, ace), "%s 不应大于 A", r)
	}
}

func TestRankGreater_StrictOrder(t *testing.T) {
	t.Parallel()

	order := []Rank{Ace, King, Queen, Jack, Ten, Nine, Eight, Seven, Six, Five, Four, Three, Two}
	for i := 0; i < len(order)-1; i++ {
		stronger := Card{Suit: Hearts, Rank: order[i]}
		weaker := Card{Suit: Hearts, Rank: order[i+1]}
		assert.True(t, RankGreater(stronger, weaker), "%s > %s", stronger, weaker)
	}
	same := Card{Suit: Hearts, Rank: Queen}
	assert.False(t, RankGreater(same, same))
}

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	require.Len(t, deck, 52)

	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "重复的牌: %s", c)
		seen[c] = true
	}

	spades := deck.OfSuit(Spades)
	require.Len(t, spades, 13)
	assert.Equal(t, Card{Suit: Spades, Rank: Ace}, spades[0])
	assert.Equal(t, Card{Suit: Spades, Rank: Two}, spades[12])
}

func TestDealOut_IsBijection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		seed         uint64
		cardsPerSeat int
	}{
		{"full deal", 30006, 13},
		{"short deal", 1, 5},
		{"single card", 42, 1},
		{"empty deal", 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deck := NewDeck()
			rng := rand.New(rand.NewPCG(tt.seed, tt.seed))
			hands := DealOut(deck, rng, 4, tt.cardsPerSeat)
			require.Len(t, hands, 5)

			seen := make(map[Card]int)
			for i, h := range hands[:4] {
				assert.Len(t, h, tt.cardsPerSeat, "seat %d", i)
			}
			assert.Len(t, hands[4], 52-4*tt.cardsPerSeat, "leftover pile")
			for _, h := range hands {
				for _, c := range h {
					seen[c]++
				}
			}
			assert.Len(t, seen, 52)
			for c, n := range seen {
				assert.Equal(t, 1, n, "card %s", c)
			}
		})
	}
}

func TestDealOut_DeterministicForSeed(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	a := DealOut(deck, rand.New(rand.NewPCG(9, 9)), 4, 13)
	b := DealOut(deck, rand.New(rand.NewPCG(9, 9)), 4, 13)
	assert.Equal(t, a, b)
	assert.Equal(t, NewDeck(), deck, "DealOut 不应修改原牌堆")
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Card
		hasError bool
	}{
		{"letters", "QH", Card{Suit: Hearts, Rank: Queen}, false},
		{"lower case ten", "10s", Card{Suit: Spades, Rank: Ten}, false},
		{"T for ten", "TD", Card{Suit: Diamonds, Rank: Ten}, false},
		{"symbol suit", "A♣", Card{Suit: Clubs, Rank: Ace}, false},
		{"spaces", "  2c ", Card{Suit: Clubs, Rank: Two}, false},
		{"bad rank", "XH", Card{}, true},
		{"bad suit", "AX", Card{}, true},
		{"too long", "AHS", Card{}, true},
		{"empty", "", Card{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := Parse(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestCard_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Q♥", Card{Suit: Hearts, Rank: Queen}.String())
	assert.Equal(t, "10♠", Card{Suit: Spades, Rank: Ten}.String())
	assert.Equal(t, "SPADES", Spades.Name())
	assert.True(t, Diamonds.IsRed())
	assert.False(t, Clubs.IsRed())
}
