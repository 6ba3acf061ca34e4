package rule

import (
	"fmt"

	"github.com/palemoky/whist/internal/game/card"
)

// RankGreater 点数比较（倒序编号，A 最大）
func RankGreater(a, b card.Card) bool {
	return card.RankGreater(a, b)
}

// Beats 判断 challenger 是否能取代当前赢牌 winning。
// 同花色且点数更大，或者 challenger 是主牌而 winning 不是。
func Beats(challenger, winning card.Card, trump card.Suit) bool {
	if challenger.Suit == winning.Suit && RankGreater(challenger, winning) {
		return true
	}
	return challenger.Suit == trump && winning.Suit != trump
}

// VerdictKind 出牌判定结果
type VerdictKind int

const (
	Legal VerdictKind = iota
	Violation
)

func (k VerdictKind) String() string {
	if k == Violation {
		return "VIOLATION"
	}
	return "LEGAL"
}

// Verdict 跟牌检查结果
type Verdict struct {
	Kind   VerdictKind
	Seat   int
	Card   card.Card
	Reason string
}

// IsViolation 是否违规
func (v Verdict) IsViolation() bool {
	return v.Kind == Violation
}

// CheckFollow 检查跟牌规则：出牌花色与首牌花色不同，且出牌前手中还有首牌花色，即为违规。
// handBeforePlay 为出牌前的手牌（包含 played）。
func CheckFollow(seat int, played card.Card, handBeforePlay card.Hand, lead card.Suit) Verdict {
	if played.Suit != lead && handBeforePlay.CountSuit(lead) > 0 {
		return Verdict{
			Kind:   Violation,
			Seat:   seat,
			Card:   played,
			Reason: fmt.Sprintf("Follow rule broken by player %d attempting to play %s", seat, played),
		}
	}
	return Verdict{Kind: Legal, Seat: seat, Card: played}
}

// CanFollow 手中是否有首牌花色
func CanFollow(hand card.Hand, lead card.Suit) bool {
	return hand.CountSuit(lead) > 0
}
