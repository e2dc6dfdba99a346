package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-level settings read at startup.
type Config struct {
	Port           string
	ServerLinkPass string

	// Account service (verification + stat reporting). Empty URL runs guests only.
	AccountURL     string
	StatsSecret    string
	AccountTimeout time.Duration

	MatchDuration  time.Duration
	MaxPlayers     int
	DefaultMap     string
	GameMode       string
	UpdateInterval time.Duration
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:           "7779",
		AccountTimeout: 5 * time.Second,
		MatchDuration:  300 * time.Second,
		MaxPlayers:     7,
		DefaultMap:     "Sierra",
		GameMode:       "POINT",
		UpdateInterval: 100 * time.Millisecond,
	}
}

// Load reads an optional dotenv file and then the environment.
// A missing dotenv file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function (os.LookupEnv in production).
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("PORT"); ok && v != "" {
		cfg.Port = v
	}
	if v, ok := lookup("SERVER_LINK_PASS"); ok {
		cfg.ServerLinkPass = v
	}
	if v, ok := lookup("ACCOUNT_SERVICE_URL"); ok {
		cfg.AccountURL = v
	}
	if v, ok := lookup("STATS_SECRET"); ok {
		cfg.StatsSecret = v
	}
	if v, ok := lookup("DEFAULT_MAP"); ok && v != "" {
		cfg.DefaultMap = v
	}
	if v, ok := lookup("GAME_MODE"); ok && v != "" {
		cfg.GameMode = v
	}

	var err error
	if cfg.AccountTimeout, err = durationVar(lookup, "ACCOUNT_TIMEOUT", cfg.AccountTimeout); err != nil {
		return Config{}, err
	}
	if cfg.MatchDuration, err = durationVar(lookup, "MATCH_DURATION", cfg.MatchDuration); err != nil {
		return Config{}, err
	}
	if cfg.UpdateInterval, err = durationVar(lookup, "UPDATE_INTERVAL", cfg.UpdateInterval); err != nil {
		return Config{}, err
	}
	if v, ok := lookup("MAX_PLAYERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid MAX_PLAYERS=%q", v)
		}
		cfg.MaxPlayers = n
	}

	return cfg, nil
}

func durationVar(lookup func(string) (string, bool), key string, fallback time.Duration) (time.Duration, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s=%q: must be positive", key, v)
	}
	return d, nil
}
