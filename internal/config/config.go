package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/whist/internal/apperrors"
	"github.com/palemoky/whist/internal/game/strategy"
)

const (
	defaultSeed         = 30006
	defaultNbStartCards = 13
	defaultWinningScore = 11
	defaultThinkingTime = 2000 // 毫秒
	defaultRedisAddr    = ""
	defaultSoundDir     = "assets/sounds"

	maxStartCards = 13
)

// Config 游戏配置
type Config struct {
	Seed         int64       `yaml:"seed"`
	NbStartCards int         `yaml:"nb_start_cards"`
	WinningScore int         `yaml:"winning_score"`
	EnforceRules bool        `yaml:"enforce_rules"`
	LegalPlay    *bool       `yaml:"legal_play"`    // enforce_rules 的旧名称
	ThinkingTime int         `yaml:"thinking_time"` // 非人类玩家思考时间（毫秒）
	Players      PlayerList  `yaml:"players"`
	Smart        SmartConfig `yaml:"smart"`
	Redis        RedisConfig `yaml:"redis"`
	Sound        SoundConfig `yaml:"sound"`
	Log          LogConfig   `yaml:"log"`
}

// PlayerConfig 座位与策略
type PlayerConfig struct {
	Strategy string `yaml:"strategy"`
	Seat     int    `yaml:"seat"`
}

// SmartConfig 智能策略配置
type SmartConfig struct {
	FullTrickPurge bool `yaml:"full_trick_purge"`
}

// RedisConfig Redis 配置，Addr 为空时不记录排行榜
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SoundConfig 音效配置
type SoundConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	Dir     string `yaml:"dir"`
	Console bool   `yaml:"console"`
}

// ThinkingTimeDuration 返回思考时长
func (c *Config) ThinkingTimeDuration() time.Duration {
	return time.Duration(c.ThinkingTime) * time.Millisecond
}

// Load 加载配置文件。文件中没有出现的字段保留默认值，随后应用环境变量覆盖并校验。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	if cfg.LegalPlay != nil {
		cfg.EnforceRules = *cfg.LegalPlay
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv 默认配置加上环境变量覆盖，用于没有配置文件的情况
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Seed:         defaultSeed,
		NbStartCards: defaultNbStartCards,
		WinningScore: defaultWinningScore,
		ThinkingTime: defaultThinkingTime,
		Players: PlayerList{
			{Strategy: string(strategy.KindHuman), Seat: 0},
			{Strategy: string(strategy.KindSmart), Seat: 1},
			{Strategy: string(strategy.KindLegal), Seat: 2},
			{Strategy: string(strategy.KindLegal), Seat: 3},
		},
		Redis: RedisConfig{
			Addr: defaultRedisAddr,
		},
		Sound: SoundConfig{
			Dir: defaultSoundDir,
		},
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.NbStartCards < 1 || c.NbStartCards > maxStartCards {
		return fmt.Errorf("%w: nb_start_cards must be between 1 and %d, got %d", apperrors.ErrInvalidConfig, maxStartCards, c.NbStartCards)
	}
	if c.WinningScore < 1 {
		return fmt.Errorf("%w: winning_score must be positive, got %d", apperrors.ErrInvalidConfig, c.WinningScore)
	}
	if c.ThinkingTime < 0 {
		return fmt.Errorf("%w: thinking_time must not be negative", apperrors.ErrInvalidConfig)
	}
	_, err := c.Players.Assignments()
	return err
}

// applyEnvOverrides 环境变量覆盖配置文件
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		key    string
		target *int
	}{
		{"WHIST_NB_START_CARDS", &cfg.NbStartCards},
		{"WHIST_WINNING_SCORE", &cfg.WinningScore},
		{"WHIST_THINKING_TIME", &cfg.ThinkingTime},
	}
	for _, e := range ints {
		if v, ok := os.LookupEnv(e.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", apperrors.ErrInvalidConfig, e.key, v)
			}
			*e.target = n
		}
	}

	if v, ok := os.LookupEnv("WHIST_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: WHIST_SEED=%q", apperrors.ErrInvalidConfig, v)
		}
		cfg.Seed = n
	}
	if v, ok := os.LookupEnv("WHIST_ENFORCE_RULES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: WHIST_ENFORCE_RULES=%q", apperrors.ErrInvalidConfig, v)
		}
		cfg.EnforceRules = b
	}
	if v, ok := os.LookupEnv("WHIST_PLAYERS"); ok {
		players, err := parseLegacyPlayers(v)
		if err != nil {
			return err
		}
		cfg.Players = players
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		cfg.Redis.Addr = strings.TrimSpace(v)
	}
	return nil
}
