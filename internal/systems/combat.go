package systems

import (
	"math"
	"strconv"

	"github.com/Seven-Network/GameServer/internal/domain"
)

// streakTable is the kill score by streak length, clamped at domain.MaxStreak.
var streakTable = [domain.MaxStreak]int{10, 15, 30, 35, 70, 125, 135, 155, 215, 265}

// Notification labels.
const (
	NotifHeadshot = "Headshot"
	NotifKill     = "Kill"
	NotifSuicide  = "Suicide"
	ReasonDrown   = "Drown"
)

// EffectiveDamage applies the headshot multiplier and rounds to whole health points.
func EffectiveDamage(amount float64, headshot bool) int {
	if amount <= 0 || math.IsNaN(amount) {
		return 0
	}
	if headshot {
		amount *= domain.HeadshotMultiplier
	}
	if amount > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(amount))
}

func clampStreak(streak int) int {
	if streak < 1 {
		return 1
	}
	if streak > domain.MaxStreak {
		return domain.MaxStreak
	}
	return streak
}

// StreakScore is the score for a kill made at the given streak length.
func StreakScore(streak int) int {
	return streakTable[clampStreak(streak)-1]
}

// StreakNotification is the label for a kill made at the given streak length.
func StreakNotification(streak int, headshot bool) string {
	s := clampStreak(streak)
	if s == 1 {
		if headshot {
			return NotifHeadshot
		}
		return NotifKill
	}
	return strconv.Itoa(s) + "x"
}

// KillOutcome is the score delta and label of one death.
type KillOutcome struct {
	Score        int
	Notification string
	Suicide      bool
}

// ResolveKill scores a death. streak is the killer's current streak count.
func ResolveKill(killerID, victimID, streak int, headshot bool) KillOutcome {
	if killerID == victimID {
		return KillOutcome{Score: domain.SuicideScore, Notification: NotifSuicide, Suicide: true}
	}
	return KillOutcome{
		Score:        StreakScore(streak),
		Notification: StreakNotification(streak, headshot),
	}
}

// SplashProfile is the falloff of one explosive.
type SplashProfile struct {
	Lethal float64
	Max    float64
}

var defaultSplash = SplashProfile{Lethal: domain.SplashLethalRadius, Max: domain.SplashMaxRadius}

var splashProfiles = map[string]SplashProfile{
	"grenade": defaultSplash,
	"rocket":  defaultSplash,
}

// SplashProfileFor returns the profile for a radius tag. Unknown tags use the default.
func SplashProfileFor(tag string) SplashProfile {
	if p, ok := splashProfiles[tag]; ok {
		return p
	}
	return defaultSplash
}

// SplashDamage is full damage inside the lethal radius, falling linearly to zero at Max.
func (p SplashProfile) SplashDamage(distance float64) int {
	switch {
	case distance <= p.Lethal:
		return domain.MaxHealth
	case distance >= p.Max:
		return 0
	}
	span := p.Max - p.Lethal
	frac := (span - (distance - p.Lethal)) / span
	return int(math.Round(frac * domain.MaxHealth))
}
