package strategy

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/palemoky/whist/internal/apperrors"
	"github.com/palemoky/whist/internal/game/card"
)

// Assignment 某个座位使用的策略
type Assignment struct {
	Kind Kind
	Seat int
}

// Deps 创建策略所需的依赖
type Deps struct {
	Rand         *rand.Rand
	Deck         card.Deck
	Input        CardSource
	SmartOptions []SmartOption
}

// New 根据类型创建一个座位的策略
func New(kind Kind, hand card.Hand, deps Deps) (Strategy, error) {
	switch kind {
	case KindHuman:
		if deps.Input == nil {
			return nil, errors.New("human seat requires an input source")
		}
		return NewHuman(deps.Input), nil
	case KindSmart:
		return NewSmart(hand, deps.Deck, deps.SmartOptions...), nil
	case KindLegal:
		return NewLegal(deps.Rand), nil
	case KindRandom:
		return NewRandom(deps.Rand), nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownStrategy, kind)
}

// Build 为每个座位创建策略，结果按座位号索引
func Build(assignments []Assignment, hands []card.Hand, deps Deps) ([]Strategy, error) {
	if len(assignments) != NumSeats {
		return nil, fmt.Errorf("%w: expected %d players, got %d", apperrors.ErrInvalidConfig, NumSeats, len(assignments))
	}
	if len(hands) < NumSeats {
		return nil, fmt.Errorf("expected %d hands, got %d", NumSeats, len(hands))
	}

	strategies := make([]Strategy, NumSeats)
	for _, a := range assignments {
		if a.Seat < 0 || a.Seat >= NumSeats {
			return nil, fmt.Errorf("%w: seat %d out of range", apperrors.ErrInvalidConfig, a.Seat)
		}
		if strategies[a.Seat] != nil {
			return nil, fmt.Errorf("%w: seat %d assigned twice", apperrors.ErrInvalidConfig, a.Seat)
		}
		s, err := New(a.Kind, hands[a.Seat], deps)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", a.Seat, err)
		}
		strategies[a.Seat] = s
	}
	return strategies, nil
}
