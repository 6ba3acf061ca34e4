// Package strategy 定义出牌策略：人类、随机、合法随机和记牌的智能策略。
package strategy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/palemoky/whist/internal/apperrors"
	"github.com/palemoky/whist/internal/game/card"
)

// NumSeats 固定四个座位
const NumSeats = 4

// Kind 策略类型
type Kind string

const (
	KindHuman  Kind = "human"
	KindSmart  Kind = "smart"
	KindLegal  Kind = "legal"
	KindRandom Kind = "random"
)

// ParseKind 解析策略名称（大小写不敏感）
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindHuman, KindSmart, KindLegal, KindRandom:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownStrategy, name)
}

// GameState 策略可见的公开局面（只读）
type GameState struct {
	Trump        card.Suit
	Lead         card.Suit
	HasLead      bool // 本墩首牌出之前为 false
	Seats        int
	ThinkingTime time.Duration
}

// LeadSuit 首牌花色
func (s GameState) LeadSuit() (card.Suit, bool) {
	return s.Lead, s.HasLead
}

// Strategy 出牌策略
type Strategy interface {
	// SelectCard 必须返回 hand 中的一张牌
	SelectCard(ctx context.Context, seat int, hand card.Hand, state GameState) (card.Card, error)
	// OnCardPlayed 每有一张牌被打出（包括自己的）都会被调用
	OnCardPlayed(c card.Card)
	Kind() Kind
}
