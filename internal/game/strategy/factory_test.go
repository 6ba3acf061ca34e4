package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/whist/internal/apperrors"
	"github.com/palemoky/whist/internal/game/card"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Kind
		hasError bool
	}{
		{"human", KindHuman, false},
		{" Smart ", KindSmart, false},
		{"LEGAL", KindLegal, false},
		{"random", KindRandom, false},
		{"cheater", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			k, err := ParseKind(tt.input)
			if tt.hasError {
				assert.ErrorIs(t, err, apperrors.ErrUnknownStrategy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, k)
		})
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	hands := card.DealOut(card.NewDeck(), newRand(1), NumSeats, 13)
	deps := Deps{Rand: newRand(1), Deck: card.NewDeck(), Input: &mockSource{}}

	strategies, err := Build([]Assignment{
		{Kind: KindSmart, Seat: 3},
		{Kind: KindHuman, Seat: 0},
		{Kind: KindRandom, Seat: 2},
		{Kind: KindLegal, Seat: 1},
	}, hands, deps)
	require.NoError(t, err)
	require.Len(t, strategies, NumSeats)

	assert.Equal(t, KindHuman, strategies[0].Kind())
	assert.Equal(t, KindLegal, strategies[1].Kind())
	assert.Equal(t, KindRandom, strategies[2].Kind())
	assert.Equal(t, KindSmart, strategies[3].Kind())

	smart, ok := strategies[3].(*Smart)
	require.True(t, ok)
	assert.Equal(t, 39, smart.Counter().Total())
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	hands := card.DealOut(card.NewDeck(), newRand(1), NumSeats, 5)
	deps := Deps{Rand: newRand(1), Deck: card.NewDeck()}

	tests := []struct {
		name        string
		assignments []Assignment
		target      error
	}{
		{
			name:        "too few players",
			assignments: []Assignment{{Kind: KindLegal, Seat: 0}},
			target:      apperrors.ErrInvalidConfig,
		},
		{
			name: "duplicate seat",
			assignments: []Assignment{
				{Kind: KindLegal, Seat: 0}, {Kind: KindLegal, Seat: 0},
				{Kind: KindLegal, Seat: 2}, {Kind: KindLegal, Seat: 3},
			},
			target: apperrors.ErrInvalidConfig,
		},
		{
			name: "seat out of range",
			assignments: []Assignment{
				{Kind: KindLegal, Seat: 0}, {Kind: KindLegal, Seat: 1},
				{Kind: KindLegal, Seat: 2}, {Kind: KindLegal, Seat: 4},
			},
			target: apperrors.ErrInvalidConfig,
		},
		{
			name: "unknown kind",
			assignments: []Assignment{
				{Kind: "cheater", Seat: 0}, {Kind: KindLegal, Seat: 1},
				{Kind: KindLegal, Seat: 2}, {Kind: KindLegal, Seat: 3},
			},
			target: apperrors.ErrUnknownStrategy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Build(tt.assignments, hands, deps)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("human without input", func(t *testing.T) {
		t.Parallel()
		_, err := New(KindHuman, hands[0], deps)
		assert.Error(t, err)
	})
}
