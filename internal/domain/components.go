package domain

import "time"

// Identity is what a session presents to other players.
type Identity struct {
	Name     string
	Skin     string
	Weapon   string
	Hash     string
	Verified bool
}

// Vitals are health and liveness. Health stays within [0, MaxHealth].
type Vitals struct {
	Health       int
	Alive        bool
	LastDamageAt time.Time
}

// NewVitals returns full health, alive.
func NewVitals() Vitals {
	return Vitals{Health: MaxHealth, Alive: true}
}

// Stats are the per-match counters shown on the scoreboard.
type Stats struct {
	Kills     int
	Deaths    int
	Headshots int
	Score     int
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	*s = Stats{}
}
