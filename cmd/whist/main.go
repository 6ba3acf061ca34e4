package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/whist/internal/config"
	"github.com/palemoky/whist/internal/game/session"
	"github.com/palemoky/whist/internal/game/strategy"
	"github.com/palemoky/whist/internal/logger"
	"github.com/palemoky/whist/internal/sound"
	"github.com/palemoky/whist/internal/storage"
	"github.com/palemoky/whist/internal/ui"
)

const (
	exitOK        = 0
	exitError     = 1
	exitViolation = 2
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	configPath := flag.String("config", "configs/whist.yaml", "配置文件路径")
	headless := flag.Bool("headless", false, "不启动终端界面，逐行输出并从标准输入读牌")
	showLeaderboard := flag.Bool("leaderboard", false, "打印策略排行榜后退出")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		return exitError
	}

	if err := logger.Init(logger.Options{Dir: cfg.Log.Dir, Console: cfg.Log.Console && *headless}); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			code = exitError
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	leaderboard := connectLeaderboard(ctx, cfg)
	if *showLeaderboard {
		return printLeaderboard(ctx, leaderboard)
	}

	kinds, err := seatKinds(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	var opts []session.Option
	if leaderboard != nil {
		opts = append(opts, session.WithRecorder(leaderboard))
	}

	var result *session.Result
	if *headless {
		result, err = playHeadless(ctx, cfg, kinds, opts)
	} else {
		result, err = playTUI(ctx, cfg, kinds, opts)
	}
	return report(result, err)
}

// loadConfig 配置文件不存在时使用默认配置（仍然应用环境变量）
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "配置文件 %s 不存在，使用默认配置\n", path)
		return config.FromEnv()
	}
	return cfg, err
}

func seatKinds(cfg *config.Config) ([session.NumSeats]strategy.Kind, error) {
	var kinds [session.NumSeats]strategy.Kind
	assignments, err := cfg.Players.Assignments()
	if err != nil {
		return kinds, err
	}
	for _, a := range assignments {
		kinds[a.Seat] = a.Kind
	}
	return kinds, nil
}

// connectLeaderboard 未配置或连接失败时返回 nil，游戏照常进行
func connectLeaderboard(ctx context.Context, cfg *config.Config) *storage.LeaderboardManager {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client, err := storage.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.LogWarn("leaderboard disabled: %v", err)
		return nil
	}
	return storage.NewLeaderboardManager(client)
}

func printLeaderboard(ctx context.Context, lm *storage.LeaderboardManager) int {
	if lm == nil {
		fmt.Fprintln(os.Stderr, "排行榜不可用：请配置 redis.addr 或 REDIS_ADDR")
		return exitError
	}
	entries, err := lm.GetLeaderboard(ctx, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取排行榜失败: %v\n", err)
		return exitError
	}
	if len(entries) == 0 {
		fmt.Println("暂无数据")
		return exitOK
	}
	fmt.Printf("%-4s %-8s %6s %6s %6s %8s %8s\n", "#", "策略", "积分", "胜场", "场次", "赢墩", "胜率")
	for _, e := range entries {
		fmt.Printf("%-4d %-8s %6d %6d %6d %8d %7.1f%%\n", e.Rank, e.Strategy, e.Score, e.Wins, e.Games, e.TricksWon, e.WinRate)
	}
	return exitOK
}

func playHeadless(ctx context.Context, cfg *config.Config, kinds [session.NumSeats]strategy.Kind, opts []session.Option) (*session.Result, error) {
	presenter := ui.NewConsolePresenter(os.Stdout, kinds)
	opts = append(opts, session.WithInput(ui.NewLineInput(os.Stdin, os.Stdout)))

	gs, err := session.New(cfg, presenter, opts...)
	if err != nil {
		return nil, err
	}
	return gs.Run(ctx)
}

func playTUI(ctx context.Context, cfg *config.Config, kinds [session.NumSeats]strategy.Kind, opts []session.Option) (*session.Result, error) {
	var player ui.SoundPlayer
	if cfg.Sound.Enabled {
		sm := sound.NewSoundManager(cfg.Sound.Dir)
		if err := sm.Init(); err != nil {
			logger.LogWarn("sound disabled: %v", err)
		} else {
			defer sm.Close()
			player = sm
		}
	}

	tui := ui.NewTUI(kinds, player, tea.WithAltScreen())
	opts = append(opts, session.WithInput(tui))

	gs, err := session.New(cfg, tui, opts...)
	if err != nil {
		return nil, err
	}
	return tui.Run(ctx, gs.Run)
}

// report 打印结局并返回退出码
func report(result *session.Result, err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Println("游戏已退出")
		return exitOK
	case err != nil:
		logger.LogError("game aborted: %v", err)
		fmt.Fprintf(os.Stderr, "游戏中止: %v\n", err)
		return exitError
	case result == nil:
		return exitOK
	case result.Outcome == session.OutcomeSpoiled:
		fmt.Fprintln(os.Stderr, "A cheating player spoiled the game!")
		if result.Violation != nil {
			fmt.Fprintln(os.Stderr, result.Violation.Reason)
		}
		return exitViolation
	}
	fmt.Printf("Game over. Winner is player: %d, scores %v, rounds %d\n", result.Winner, result.Scores, result.Rounds)
	return exitOK
}
