//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/strategy"
	"github.com/palemoky/whist/internal/storage"
)

// MockRecorder 排行榜记录 mock
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordGameResult(ctx context.Context, rec storage.GameRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// MockCardSource 人类输入 mock
type MockCardSource struct {
	mock.Mock
}

func (m *MockCardSource) AwaitCard(ctx context.Context, seat int, hand card.Hand, state strategy.GameState) (card.Card, error) {
	args := m.Called(ctx, seat, hand, state)
	return args.Get(0).(card.Card), args.Error(1)
}

func (m *MockCardSource) Reject(seat int, c card.Card, reason string) {
	m.Called(seat, c, reason)
}

// ScriptedStrategy 按顺序打出预设的牌，并记录收到的广播
type ScriptedStrategy struct {
	Cards    []card.Card
	KindName strategy.Kind
	Seen     []card.Card
	next     int
}

// NewScripted 创建脚本策略，默认类型为 legal
func NewScripted(cards ...card.Card) *ScriptedStrategy {
	return &ScriptedStrategy{Cards: cards, KindName: strategy.KindLegal}
}

func (s *ScriptedStrategy) SelectCard(context.Context, int, card.Hand, strategy.GameState) (card.Card, error) {
	c := s.Cards[s.next%len(s.Cards)]
	s.next++
	return c, nil
}

func (s *ScriptedStrategy) OnCardPlayed(c card.Card) {
	s.Seen = append(s.Seen, c)
}

func (s *ScriptedStrategy) Kind() strategy.Kind { return s.KindName }
