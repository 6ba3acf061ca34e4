// Package storage 把对局结果按策略类型汇总到 Redis，形成策略排行榜。
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	strategyStatsKey = "whist:strategy:stats:"
	leaderboardKey   = "whist:leaderboard:score"
	dailyLeaderboard = "whist:leaderboard:daily:"
)

// 积分规则
const (
	WinPoints   = 10 // 赢得整局
	TrickPoints = 1  // 每赢一墩

	// 连胜加成
	StreakBonus3 = 2
	StreakBonus5 = 5
)

// SeatRecord 一个座位在一局中的表现
type SeatRecord struct {
	Seat     int    `json:"seat"`
	Strategy string `json:"strategy"`
	Tricks   int    `json:"tricks"` // 结束时的得分（赢得的墩数）
}

// GameRecord 一局结束后交给排行榜的结果，只用于汇总，不单独保存
type GameRecord struct {
	GameID   string       `json:"game_id"`
	Winner   int          `json:"winner"`
	Rounds   int          `json:"rounds"`
	Seats    []SeatRecord `json:"seats"`
	PlayedAt time.Time    `json:"played_at"`
}

// StrategyStats 某种策略的累计统计。同一局中多个座位使用同一策略时按座位分别计数。
type StrategyStats struct {
	Strategy string `json:"strategy"`

	TotalGames int `json:"total_games"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	TricksWon  int `json:"tricks_won"`

	Score int `json:"score"`

	// 正数为连胜，负数为连败
	CurrentStreak int `json:"current_streak"`
	MaxWinStreak  int `json:"max_win_streak"`

	LastPlayedAt int64 `json:"last_played_at"`
	CreatedAt    int64 `json:"created_at"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank      int     `json:"rank"`
	Strategy  string  `json:"strategy"`
	Score     int     `json:"score"`
	Wins      int     `json:"wins"`
	Games     int     `json:"games"`
	TricksWon int     `json:"tricks_won"`
	WinRate   float64 `json:"win_rate"`
}

// LeaderboardManager 排行榜管理器
type LeaderboardManager struct {
	redis *redis.Client
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client}
}

// Connect 创建 Redis 客户端并测试连接
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}
	return rdb, nil
}

// GetStrategyStats 获取策略统计，不存在时返回 nil
func (lm *LeaderboardManager) GetStrategyStats(ctx context.Context, strategy string) (*StrategyStats, error) {
	data, err := lm.redis.Get(ctx, strategyStatsKey+strategy).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats StrategyStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SaveStrategyStats 保存策略统计
func (lm *LeaderboardManager) SaveStrategyStats(ctx context.Context, stats *StrategyStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lm.redis.Set(ctx, strategyStatsKey+stats.Strategy, data, 0).Err()
}

func (lm *LeaderboardManager) getOrCreateStats(ctx context.Context, strategy string, now time.Time) (*StrategyStats, error) {
	stats, err := lm.GetStrategyStats(ctx, strategy)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &StrategyStats{Strategy: strategy, CreatedAt: now.Unix()}
	}
	return stats, nil
}

// updateWinLossStats 更新胜负统计和连胜/连败
func updateWinLossStats(stats *StrategyStats, isWinner bool) {
	if isWinner {
		stats.Wins++
		stats.CurrentStreak = max(1, stats.CurrentStreak+1)
	} else {
		stats.Losses++
		stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
	}

	if stats.CurrentStreak > stats.MaxWinStreak {
		stats.MaxWinStreak = stats.CurrentStreak
	}
}

// calculateStreakBonus 计算连胜加成
func calculateStreakBonus(streak int) int {
	switch {
	case streak >= 5:
		return StreakBonus5
	case streak >= 3:
		return StreakBonus3
	default:
		return 0
	}
}

// RecordGameResult 记录一局结果：每个座位的策略各更新一次统计
func (lm *LeaderboardManager) RecordGameResult(ctx context.Context, rec GameRecord) error {
	if len(rec.Seats) == 0 {
		return errors.New("game record has no seats")
	}
	playedAt := rec.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	for _, seat := range rec.Seats {
		if err := lm.recordSeat(ctx, seat, seat.Seat == rec.Winner, playedAt); err != nil {
			return fmt.Errorf("record seat %d (%s): %w", seat.Seat, seat.Strategy, err)
		}
	}
	return nil
}

func (lm *LeaderboardManager) recordSeat(ctx context.Context, seat SeatRecord, isWinner bool, playedAt time.Time) error {
	stats, err := lm.getOrCreateStats(ctx, seat.Strategy, playedAt)
	if err != nil {
		return err
	}

	stats.TotalGames++
	stats.TricksWon += seat.Tricks
	stats.LastPlayedAt = playedAt.Unix()
	updateWinLossStats(stats, isWinner)

	scoreChange := seat.Tricks * TrickPoints
	if isWinner {
		scoreChange += WinPoints + calculateStreakBonus(stats.CurrentStreak)
	}
	stats.Score += scoreChange

	if err := lm.SaveStrategyStats(ctx, stats); err != nil {
		return err
	}
	return lm.UpdateLeaderboard(ctx, stats, playedAt)
}

// UpdateLeaderboard 更新总榜和日榜
func (lm *LeaderboardManager) UpdateLeaderboard(ctx context.Context, stats *StrategyStats, now time.Time) error {
	if err := lm.redis.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(stats.Score),
		Member: stats.Strategy,
	}).Err(); err != nil {
		return err
	}

	dailyKey := dailyLeaderboard + now.Format("2006-01-02")
	if err := lm.redis.ZAdd(ctx, dailyKey, redis.Z{
		Score:  float64(stats.Score),
		Member: stats.Strategy,
	}).Err(); err != nil {
		return err
	}
	// 日榜保留 2 天
	return lm.redis.Expire(ctx, dailyKey, 48*time.Hour).Err()
}

// GetLeaderboard 获取总榜（从高到低）
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	results, err := lm.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, result := range results {
		strategy, ok := result.Member.(string)
		if !ok {
			continue
		}
		stats, err := lm.GetStrategyStats(ctx, strategy)
		if err != nil || stats == nil {
			continue
		}

		winRate := 0.0
		if stats.TotalGames > 0 {
			winRate = float64(stats.Wins) / float64(stats.TotalGames) * 100
		}

		entries = append(entries, LeaderboardEntry{
			Rank:      i + 1,
			Strategy:  strategy,
			Score:     int(result.Score),
			Wins:      stats.Wins,
			Games:     stats.TotalGames,
			TricksWon: stats.TricksWon,
			WinRate:   winRate,
		})
	}
	return entries, nil
}

// GetStrategyRank 获取策略排名，未上榜返回 -1
func (lm *LeaderboardManager) GetStrategyRank(ctx context.Context, strategy string) (int64, error) {
	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, strategy).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil // Redis 排名从 0 开始
}
