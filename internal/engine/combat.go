package engine

import (
	"github.com/Seven-Network/GameServer/internal/domain"
	"github.com/Seven-Network/GameServer/internal/protocol"
	"github.com/Seven-Network/GameServer/internal/systems"
	"github.com/Seven-Network/GameServer/pkg/api"

	"github.com/sirupsen/logrus"
)

const kindKill = "kill"

// applyDamage hurts target on behalf of sourceID. Dead targets are untouched.
func (r *Room) applyDamage(target *Session, amount float64, sourceID int, headshot bool) {
	if !target.Vitals.Alive {
		return
	}

	damage := systems.EffectiveDamage(amount, headshot)
	died := target.Vitals.TakeDamage(damage, r.clock.Now())

	r.send(target, protocol.OutDamaged, sourceID)
	r.broadcast(protocol.OutHealth, target.ID, target.Vitals.Health)

	if died {
		r.resolveDeath(target, sourceID, headshot)
	}
}

// resolveDeath runs once per life: the Kill transition guards re-entry.
func (r *Room) resolveDeath(target *Session, killerID int, headshot bool) {
	if !target.Vitals.Kill() {
		return
	}
	now := r.clock.Now()

	var reason any = false
	if killerID == target.ID {
		reason = systems.ReasonDrown
	}
	r.broadcast(protocol.OutDeath, target.ID)
	r.broadcast(protocol.OutKill, target.ID, killerID, reason)

	killer := r.player(killerID)
	streak := 1
	if killer != nil {
		streak = killer.Streak
	}
	outcome := systems.ResolveKill(killerID, target.ID, streak, headshot)

	killerName := ""
	if killer != nil {
		killerName = killer.Identity.Name
	}
	r.broadcast(protocol.OutNotification, kindKill, api.KillDetail{
		KillerID:     killerID,
		Killer:       killerName,
		VictimID:     target.ID,
		Victim:       target.Identity.Name,
		Score:        outcome.Score,
		Notification: outcome.Notification,
		Headshot:     headshot,
	})
	r.broadcast(protocol.OutAnnounce, kindKill, killerID, outcome.Score, outcome.Notification)

	target.Stats.Deaths++
	switch {
	case outcome.Suicide:
		target.Stats.Score += outcome.Score
	case killer != nil:
		killer.Stats.Kills++
		if headshot {
			killer.Stats.Headshots++
		}
		killer.Stats.Score += outcome.Score
		killer.Streak++

		killer.streakReset.Cancel()
		k := killer
		killer.streakReset = r.scheduler.After(now, domain.StreakWindow, "streak-reset", func() {
			k.Streak = 1
			k.streakReset = nil
		})
	}

	target.log.WithFields(logrus.Fields{
		"killer_id":    killerID,
		"headshot":     headshot,
		"score":        outcome.Score,
		"notification": outcome.Notification,
	}).Debug("Player died")

	r.broadcastBoard()

	target.respawn.Cancel()
	t := target
	target.respawn = r.scheduler.After(now, domain.RespawnDelay, "respawn", func() {
		t.respawn = nil
		r.reviveAfterDeath(t)
	})
}

// reviveAfterDeath restores health and places the player on a spawn.
func (r *Room) reviveAfterDeath(s *Session) {
	if !s.authenticated() {
		return
	}
	s.Vitals.Restore()
	r.broadcast(protocol.OutHealth, s.ID, s.Vitals.Health)
	r.respawn(s)
}

// respawn moves s to the next spawn unless it respawned within the debounce window.
func (r *Room) respawn(s *Session) bool {
	now := r.clock.Now()
	if now.Sub(s.LastRespawnAt) < domain.RespawnDebounce {
		return false
	}

	sp := r.spawns.Next()
	s.Transform = domain.Transform{Position: sp.Position, RotA: sp.Rotation.X, RotB: sp.Rotation.Y}
	s.LastRespawnAt = now

	r.broadcast(protocol.OutRespawn, s.ID, api.RespawnTransform{
		Position: api.WireVec{X: sp.Position.X, Y: sp.Position.Y, Z: sp.Position.Z},
		Rotation: api.WireVec{X: sp.Rotation.X, Y: sp.Rotation.Y, Z: sp.Rotation.Z},
	})
	return true
}

// resolveSplash damages every player in range of center, the thrower included.
func (r *Room) resolveSplash(originID int, center domain.Vec3, profile systems.SplashProfile) {
	for _, s := range r.players() {
		damage := profile.SplashDamage(s.Transform.Position.DistanceTo(center))
		if damage > 0 {
			r.applyDamage(s, float64(damage), originID, false)
		}
	}
}
