package session

import (
	"context"
	"fmt"
	"time"

	"github.com/palemoky/whist/internal/apperrors"
	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/rule"
	"github.com/palemoky/whist/internal/game/strategy"
	"github.com/palemoky/whist/internal/game/trick"
	"github.com/palemoky/whist/internal/logger"
	"github.com/palemoky/whist/internal/storage"
)

// Run 进行对局直到有人达到获胜分数，或在强制规则下出现违规。
// 返回错误只表示无法继续（上下文取消、策略给出无效牌等），违规不是错误。
func (gs *GameSession) Run(ctx context.Context) (*Result, error) {
	if gs.state != GameStateInit {
		return nil, fmt.Errorf("session %s already started", gs.id)
	}
	gs.state = GameStatePlaying

	gs.presenter.DisplayStatus("Initializing...")
	for seat := range NumSeats {
		gs.presenter.DisplayScore(seat, 0)
	}
	logger.LogInfo("game %s started, players %v", gs.id, gs.assignments)

	for {
		if err := ctx.Err(); err != nil {
			gs.state = GameStateEnded
			return nil, err
		}
		if err := gs.startRound(); err != nil {
			gs.state = GameStateEnded
			return nil, err
		}
		result, err := gs.playRound(ctx)
		if err != nil {
			gs.state = GameStateEnded
			return nil, err
		}
		if result != nil {
			gs.endGame(ctx, result)
			return result, nil
		}
	}
}

// startRound 选王牌、发牌、排序手牌并为每个座位创建新策略
func (gs *GameSession) startRound() error {
	gs.rounds++
	gs.trump = card.Suits[gs.rng.IntN(len(card.Suits))]
	gs.presenter.DisplayTrump(gs.trump)

	hands := gs.deal(gs.deck, gs.rng, NumSeats, gs.nbStartCards)
	if len(hands) < NumSeats {
		return fmt.Errorf("deal returned %d hands, want %d", len(hands), NumSeats)
	}
	for seat := range NumSeats {
		hands[seat].SortSuitPriority()
	}

	strategies, err := gs.build(gs.assignments, hands, strategy.Deps{
		Rand:         gs.rng,
		Deck:         gs.deck,
		Input:        gs.input,
		SmartOptions: gs.smartOpts,
	})
	if err != nil {
		return err
	}

	gs.seats = make([]*Seat, NumSeats)
	for seat := range NumSeats {
		gs.seats[seat] = &Seat{Position: seat, Hand: hands[seat], Strategy: strategies[seat]}
		gs.presenter.DisplayHand(seat, hands[seat])
	}
	logger.LogInfo("round %d: trump is %s", gs.rounds, gs.trump.Name())
	return nil
}

// playRound 打完一轮。返回非 nil 的 Result 表示对局结束。
func (gs *GameSession) playRound(ctx context.Context) (*Result, error) {
	leader := gs.rng.IntN(NumSeats)
	for range gs.nbStartCards {
		winner, violation, err := gs.playTrick(ctx, leader)
		if err != nil {
			return nil, err
		}
		if violation != nil {
			return gs.result(OutcomeSpoiled, -1, violation), nil
		}

		gs.scores[winner]++
		gs.presenter.DisplayScore(winner, gs.scores[winner])
		gs.presenter.DisplayStatus(fmt.Sprintf("Player %d wins trick.", winner))
		logger.LogInfo("player %d wins trick, score %d", winner, gs.scores[winner])

		if gs.scores[winner] >= gs.winningScore {
			return gs.result(OutcomeWinner, winner, nil), nil
		}
		leader = winner
	}
	return nil, nil
}

// playTrick 从 leader 开始顺时针各出一张牌。
// 强制规则下出现违规时返回该违规，墩不再继续。
func (gs *GameSession) playTrick(ctx context.Context, leader int) (int, *rule.Verdict, error) {
	t := trick.New(gs.trump, NumSeats)
	gs.hasLead = false

	position := leader
	for range NumSeats {
		seat := gs.seats[position]
		selected, err := gs.selectCard(ctx, seat)
		if err != nil {
			return -1, nil, err
		}
		if !seat.Hand.Contains(selected) {
			return -1, nil, fmt.Errorf("%w: player %d (%s) chose %s which is not in hand %s",
				apperrors.ErrInvalidPlay, position, seat.Strategy.Kind(), selected, seat.Hand)
		}

		gs.broadcast(selected)

		if lead, ok := t.Lead(); ok {
			if verdict := rule.CheckFollow(position, selected, seat.Hand, lead); verdict.IsViolation() {
				if gs.enforceRules {
					logger.LogError("%s", verdict.Reason)
					gs.presenter.DisplayStatus("A cheating player spoiled the game!")
					return -1, &verdict, nil
				}
				logger.LogWarn("%s", verdict.Reason)
				gs.violations = append(gs.violations, verdict)
			}
		}

		seat.Hand.Remove(selected)
		newWinner, err := t.Play(position, selected)
		if err != nil {
			return -1, nil, err
		}
		if !gs.hasLead {
			gs.lead = selected.Suit
			gs.hasLead = true
		}
		logger.LogInfo("player %d played %s", position, selected)
		if newWinner {
			logger.LogInfo("NEW WINNER: player %d with %s", position, selected)
		}

		gs.presenter.DisplayPlay(position, selected)
		gs.presenter.DisplayHand(position, seat.Hand)
		position = (position + 1) % NumSeats
	}

	winner, _ := t.Winner()
	gs.tricks++
	gs.presenter.ClearTrick()
	return winner.Seat, nil, nil
}

// selectCard 非人类座位先显示思考状态并等待，再向策略要牌
func (gs *GameSession) selectCard(ctx context.Context, seat *Seat) (card.Card, error) {
	if seat.Strategy.Kind() == strategy.KindHuman {
		verb := "follow"
		if !gs.hasLead {
			verb = "lead"
		}
		gs.presenter.DisplayStatus(fmt.Sprintf("Player %d, choose a card to %s.", seat.Position, verb))
	} else {
		gs.presenter.DisplayStatus(fmt.Sprintf("Player %d thinking...", seat.Position))
		if err := gs.sleep(ctx, gs.thinkingTime); err != nil {
			return card.Card{}, err
		}
	}

	hand := append(card.Hand(nil), seat.Hand...)
	return seat.Strategy.SelectCard(ctx, seat.Position, hand, gs.gameState())
}

func (gs *GameSession) gameState() strategy.GameState {
	return strategy.GameState{
		Trump:        gs.trump,
		Lead:         gs.lead,
		HasLead:      gs.hasLead,
		Seats:        NumSeats,
		ThinkingTime: gs.thinkingTime,
	}
}

// broadcast 每张牌在检查之前通知所有策略（包括出牌者自己）
func (gs *GameSession) broadcast(c card.Card) {
	for _, seat := range gs.seats {
		seat.Strategy.OnCardPlayed(c)
	}
}

func (gs *GameSession) result(outcome Outcome, winner int, violation *rule.Verdict) *Result {
	res := &Result{
		GameID:    gs.id,
		Outcome:   outcome,
		Winner:    winner,
		Scores:    gs.scores,
		Rounds:    gs.rounds,
		Tricks:    gs.tricks,
		Violation: violation,
	}
	for _, a := range gs.assignments {
		res.Kinds[a.Seat] = a.Kind
	}
	return res
}

// endGame 展示结局并记录排行榜，记录失败只写日志
func (gs *GameSession) endGame(ctx context.Context, res *Result) {
	gs.state = GameStateEnded

	if res.Outcome == OutcomeSpoiled {
		logger.LogError("game %s spoiled: %s", gs.id, res.Violation.Reason)
		return
	}

	gs.presenter.DisplayStatus(fmt.Sprintf("Game over. Winner is player: %d", res.Winner))
	logger.LogInfo("game %s over after %d rounds and %d tricks, winner is player %d, scores %v",
		gs.id, res.Rounds, res.Tricks, res.Winner, res.Scores)

	if gs.recorder == nil {
		return
	}
	if err := gs.recorder.RecordGameResult(ctx, res.Record(time.Now())); err != nil {
		logger.LogWarn("failed to record game %s: %v", gs.id, err)
	}
}

// Record 转换为排行榜记录
func (r *Result) Record(playedAt time.Time) storage.GameRecord {
	seats := make([]storage.SeatRecord, NumSeats)
	for i := range seats {
		seats[i] = storage.SeatRecord{Seat: i, Strategy: string(r.Kinds[i]), Tricks: r.Scores[i]}
	}
	return storage.GameRecord{
		GameID:   r.GameID,
		Winner:   r.Winner,
		Rounds:   r.Rounds,
		Seats:    seats,
		PlayedAt: playedAt,
	}
}
