package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/whist/internal/apperrors"
	"github.com/palemoky/whist/internal/game/strategy"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "whist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
seed: 42
nb_start_cards: 5
winning_score: 3
enforce_rules: true
thinking_time: 0
players:
  - strategy: smart
    seat: 0
  - strategy: legal
    seat: 1
  - strategy: random
    seat: 2
  - strategy: human
    seat: 3
smart:
  full_trick_purge: true
redis:
  addr: "redis:6379"
  password: "secret"
  db: 1
sound:
  enabled: true
  dir: "/tmp/sounds"
log:
  console: true
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 5, cfg.NbStartCards)
	assert.Equal(t, 3, cfg.WinningScore)
	assert.True(t, cfg.EnforceRules)
	assert.Equal(t, time.Duration(0), cfg.ThinkingTimeDuration())
	assert.True(t, cfg.Smart.FullTrickPurge)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.True(t, cfg.Sound.Enabled)
	assert.Equal(t, "/tmp/sounds", cfg.Sound.Dir)
	assert.True(t, cfg.Log.Console)

	assignments, err := cfg.Players.Assignments()
	require.NoError(t, err)
	assert.Equal(t, []strategy.Assignment{
		{Kind: strategy.KindSmart, Seat: 0},
		{Kind: strategy.KindLegal, Seat: 1},
		{Kind: strategy.KindRandom, Seat: 2},
		{Kind: strategy.KindHuman, Seat: 3},
	}, assignments)
	assert.True(t, cfg.Players.HasHuman())
}

func TestLoad_LegacyPlayersAndLegalPlay(t *testing.T) {
	t.Parallel()

	content := `
legal_play: true
players: "human,0; smart,1 ;legal,2;random,3"
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	assert.True(t, cfg.EnforceRules, "legal_play is an alias of enforce_rules")
	assert.Equal(t, PlayerList{
		{Strategy: "human", Seat: 0},
		{Strategy: "smart", Seat: 1},
		{Strategy: "legal", Seat: 2},
		{Strategy: "random", Seat: 3},
	}, cfg.Players)
}

func TestLoad_ScalarListEntries(t *testing.T) {
	t.Parallel()

	content := `
players:
  - "legal,3"
  - "legal,2"
  - {strategy: smart, seat: 1}
  - "random,0"
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	assert.False(t, cfg.Players.HasHuman())
	assert.Len(t, cfg.Players, 4)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/whist.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "invalid: yaml: :::"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, int64(defaultSeed), cfg.Seed)
	assert.Equal(t, defaultNbStartCards, cfg.NbStartCards)
	assert.Equal(t, defaultWinningScore, cfg.WinningScore)
	assert.Equal(t, 2*time.Second, cfg.ThinkingTimeDuration())
	assert.False(t, cfg.EnforceRules)
	assert.Equal(t, defaultSoundDir, cfg.Sound.Dir)
	assert.Len(t, cfg.Players, 4)
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"too many cards", "nb_start_cards: 14"},
		{"zero cards", "nb_start_cards: -1"},
		{"zero winning score", "winning_score: -2"},
		{"negative thinking time", "thinking_time: -5"},
		{"three players", `players: "human,0;smart,1;legal,2"`},
		{"duplicate seat", `players: "human,0;smart,0;legal,2;legal,3"`},
		{"seat out of range", `players: "human,0;smart,1;legal,2;legal,4"`},
		{"unknown strategy", `players: "human,0;smart,1;legal,2;genius,3"`},
		{"bad legacy entry", `players: "human;smart,1;legal,2;legal,3"`},
		{"bad legacy seat", `players: "human,x;smart,1;legal,2;legal,3"`},
		{"players mapping", "players: {human: 0}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
			assert.Nil(t, cfg)
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Players.HasHuman())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFromEnv(t *testing.T) {
	// Not parallel because it modifies environment variables

	t.Setenv("WHIST_SEED", "7")
	t.Setenv("WHIST_NB_START_CARDS", "1")
	t.Setenv("WHIST_WINNING_SCORE", "1")
	t.Setenv("WHIST_ENFORCE_RULES", "true")
	t.Setenv("WHIST_THINKING_TIME", "10")
	t.Setenv("WHIST_PLAYERS", "random,0;random,1;random,2;smart,3")
	t.Setenv("REDIS_ADDR", "env-redis:6380")

	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 1, cfg.NbStartCards)
	assert.Equal(t, 1, cfg.WinningScore)
	assert.True(t, cfg.EnforceRules)
	assert.Equal(t, 10*time.Millisecond, cfg.ThinkingTimeDuration())
	assert.False(t, cfg.Players.HasHuman())
	assert.Equal(t, "env-redis:6380", cfg.Redis.Addr)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("WHIST_SEED", "not-a-number")

	cfg, err := Load(writeConfig(t, `{}`))
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("WHIST_WINNING_SCORE", "3")
	t.Setenv("WHIST_PLAYERS", "legal,0;legal,1;legal,2;legal,3")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.WinningScore)
	assert.Equal(t, defaultNbStartCards, cfg.NbStartCards)
	assert.False(t, cfg.Players.HasHuman())

	t.Setenv("WHIST_NB_START_CARDS", "20")
	_, err = FromEnv()
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}
