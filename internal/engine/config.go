package engine

import (
	"context"
	"time"

	"github.com/Seven-Network/GameServer/internal/config"
	"github.com/Seven-Network/GameServer/internal/infrastructure/accounts"
	"github.com/Seven-Network/GameServer/internal/systems"
)

// Verifier resolves an account hash to an identity.
type Verifier interface {
	Verify(ctx context.Context, hash string) (accounts.Account, error)
}

// StatsReporter receives one report per player at match end.
type StatsReporter interface {
	Report(ctx context.Context, r accounts.StatReport) error
}

// Config holds the settings every room is created with.
type Config struct {
	MatchDuration  time.Duration
	MaxPlayers     int
	DefaultMap     string
	Mode           string
	UpdateInterval time.Duration
	AccountTimeout time.Duration

	// Verifier nil admits guests only. Reporter nil skips stat reporting.
	Verifier Verifier
	Reporter StatsReporter
	Clock    Clock
	Seed     int64
}

// NewConfig derives room settings from process configuration.
func NewConfig(cfg config.Config) Config {
	c := Config{
		MatchDuration:  cfg.MatchDuration,
		MaxPlayers:     cfg.MaxPlayers,
		DefaultMap:     cfg.DefaultMap,
		Mode:           cfg.GameMode,
		UpdateInterval: cfg.UpdateInterval,
		AccountTimeout: cfg.AccountTimeout,
		Clock:          RealClock(),
		Seed:           time.Now().UnixNano(),
	}
	if cfg.AccountURL != "" {
		client := accounts.NewClient(cfg.AccountURL, cfg.StatsSecret, cfg.AccountTimeout)
		c.Verifier = client
		c.Reporter = client
	}
	return c.withDefaults()
}

func (c Config) withDefaults() Config {
	def := config.Default()
	if c.MatchDuration <= 0 {
		c.MatchDuration = def.MatchDuration
	}
	if c.MaxPlayers <= 0 {
		c.MaxPlayers = def.MaxPlayers
	}
	if !systems.IsMap(c.DefaultMap) {
		c.DefaultMap = systems.DefaultMap
	}
	if c.Mode == "" {
		c.Mode = def.GameMode
	}
	if c.UpdateInterval <= 0 {
		c.UpdateInterval = def.UpdateInterval
	}
	if c.AccountTimeout <= 0 {
		c.AccountTimeout = def.AccountTimeout
	}
	if c.Clock == nil {
		c.Clock = RealClock()
	}
	return c
}

// matchSeconds is the countdown start value.
func (c Config) matchSeconds() int {
	return int(c.MatchDuration / time.Second)
}
