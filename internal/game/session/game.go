// Package session 驱动一整局惠斯特：发牌、按墩轮流出牌、广播、计分和违规处理。
package session

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/whist/internal/config"
	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/rule"
	"github.com/palemoky/whist/internal/game/strategy"
	"github.com/palemoky/whist/internal/storage"
)

// NumSeats 固定四个座位
const NumSeats = strategy.NumSeats

// GameState 游戏状态
type GameState int

const (
	GameStateInit GameState = iota
	GameStatePlaying
	GameStateEnded
)

// Presenter 界面边界：会话只通过它向外展示局面
type Presenter interface {
	DisplayStatus(text string)
	DisplayScore(seat, value int)
	DisplayTrump(suit card.Suit)
	DisplayHand(seat int, hand card.Hand)
	DisplayPlay(seat int, c card.Card)
	ClearTrick()
}

// NopPresenter 什么也不显示
type NopPresenter struct{}

func (NopPresenter) DisplayStatus(string) {}
func (NopPresenter) DisplayScore(int, int) {}
func (NopPresenter) DisplayTrump(card.Suit) {}
func (NopPresenter) DisplayHand(int, card.Hand) {}
func (NopPresenter) DisplayPlay(int, card.Card) {}
func (NopPresenter) ClearTrick() {}

// Recorder 接收结束的对局（排行榜）
type Recorder interface {
	RecordGameResult(ctx context.Context, rec storage.GameRecord) error
}

// DealFunc 发牌函数，返回 NumSeats+1 手牌（最后一手为底牌）
type DealFunc func(deck card.Deck, rng *rand.Rand, numSeats, cardsPerSeat int) []card.Hand

// BuildFunc 为每个座位创建策略
type BuildFunc func(assignments []strategy.Assignment, hands []card.Hand, deps strategy.Deps) ([]strategy.Strategy, error)

// Outcome 对局结局
type Outcome int

const (
	// OutcomeWinner 有玩家达到获胜分数
	OutcomeWinner Outcome = iota
	// OutcomeSpoiled 强制规则下有人不跟牌，对局作废
	OutcomeSpoiled
)

func (o Outcome) String() string {
	if o == OutcomeSpoiled {
		return "spoiled"
	}
	return "winner"
}

// Result 对局结果
type Result struct {
	GameID    string
	Outcome   Outcome
	Winner    int // OutcomeSpoiled 时为 -1
	Scores    [NumSeats]int
	Kinds     [NumSeats]strategy.Kind
	Rounds    int
	Tricks    int
	Violation *rule.Verdict
}

// Seat 座位及其手牌和策略
type Seat struct {
	Position int
	Hand     card.Hand
	Strategy strategy.Strategy
}

// GameSession 游戏会话。所有出牌都在调用 Run 的 goroutine 上顺序进行。
type GameSession struct {
	id          string
	state       GameState
	assignments []strategy.Assignment

	nbStartCards int
	winningScore int
	enforceRules bool
	thinkingTime time.Duration

	rng       *rand.Rand
	deck      card.Deck
	presenter Presenter
	input     strategy.CardSource
	recorder  Recorder
	smartOpts []strategy.SmartOption
	deal      DealFunc
	build     BuildFunc
	sleep     func(ctx context.Context, d time.Duration) error

	seats   []*Seat
	scores  [NumSeats]int
	trump   card.Suit
	lead    card.Suit
	hasLead bool

	rounds     int
	tricks     int
	violations []rule.Verdict
}

// Option 会话选项
type Option func(*GameSession)

// WithInput 人类座位的输入来源
func WithInput(src strategy.CardSource) Option {
	return func(gs *GameSession) { gs.input = src }
}

// WithRecorder 对局结束后记录结果
func WithRecorder(r Recorder) Option {
	return func(gs *GameSession) { gs.recorder = r }
}

// WithDeal 替换发牌函数
func WithDeal(fn DealFunc) Option {
	return func(gs *GameSession) { gs.deal = fn }
}

// WithStrategies 替换策略工厂
func WithStrategies(fn BuildFunc) Option {
	return func(gs *GameSession) { gs.build = fn }
}

// WithSleep 替换思考等待
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(gs *GameSession) { gs.sleep = fn }
}

// New 校验配置并创建会话
func New(cfg *config.Config, presenter Presenter, opts ...Option) (*GameSession, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	assignments, err := cfg.Players.Assignments()
	if err != nil {
		return nil, err
	}
	if presenter == nil {
		presenter = NopPresenter{}
	}

	seed := uint64(cfg.Seed)
	gs := &GameSession{
		id:           uuid.New().String(),
		state:        GameStateInit,
		assignments:  assignments,
		nbStartCards: cfg.NbStartCards,
		winningScore: cfg.WinningScore,
		enforceRules: cfg.EnforceRules,
		thinkingTime: cfg.ThinkingTimeDuration(),
		rng:          rand.New(rand.NewPCG(seed, seed)),
		deck:         card.NewDeck(),
		presenter:    presenter,
		deal:         card.DealOut,
		build:        strategy.Build,
		sleep:        sleepContext,
	}
	if cfg.Smart.FullTrickPurge {
		gs.smartOpts = append(gs.smartOpts, strategy.WithFullTrickPurge())
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs, nil
}

// ID 对局编号
func (gs *GameSession) ID() string { return gs.id }

// State 当前状态
func (gs *GameSession) State() GameState { return gs.state }

// Scores 各座位得分
func (gs *GameSession) Scores() [NumSeats]int { return gs.scores }

// Trump 本轮王牌花色
func (gs *GameSession) Trump() card.Suit { return gs.trump }

// Violations 非强制模式下记录的违规
func (gs *GameSession) Violations() []rule.Verdict {
	return append([]rule.Verdict(nil), gs.violations...)
}

// Hand 返回座位手牌的副本
func (gs *GameSession) Hand(seat int) card.Hand {
	if seat < 0 || seat >= len(gs.seats) {
		return nil
	}
	return append(card.Hand(nil), gs.seats[seat].Hand...)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
