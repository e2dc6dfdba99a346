package domain

import "time"

// Vitals
const (
	MaxHealth          = 100
	HeadshotMultiplier = 2
)

// Timings
const (
	RespawnDelay    = 4000 * time.Millisecond
	RespawnDebounce = 5000 * time.Millisecond
	StreakWindow    = 10 * time.Second
	RegenDelay      = 8000 * time.Millisecond
	IdleTimeout     = 60000 * time.Millisecond
	RestartDelay    = 20000 * time.Millisecond
)

// Scoring
const (
	SuicideScore = -10
	MaxStreak    = 10
)

// Splash falloff (world units)
const (
	SplashLethalRadius = 10.0
	SplashMaxRadius    = 20.0
)

// Roster
const (
	SentinelPlayerID = -1
	TeamNone         = "none"
	GuestName        = "none"
)
