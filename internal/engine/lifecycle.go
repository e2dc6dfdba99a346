package engine

import (
	"context"
	"time"

	"github.com/Seven-Network/GameServer/internal/domain"
	"github.com/Seven-Network/GameServer/internal/infrastructure/accounts"
	"github.com/Seven-Network/GameServer/internal/protocol"
	"github.com/Seven-Network/GameServer/internal/systems"
	"github.com/Seven-Network/GameServer/pkg/utils"

	"github.com/sirupsen/logrus"
)

// clockTick is the 1-second match countdown.
func (r *Room) clockTick() {
	if r.phase != domain.PhaseActive {
		return
	}
	if r.matchClock > 0 {
		r.matchClock--
		r.broadcast(protocol.OutTime, r.matchClock)
	}
	if r.matchClock == 0 {
		r.endMatch()
	}
}

// update is the cooperative cycle: regen, due timers, idle tracking.
func (r *Room) update(now time.Time) {
	r.lastUpdate = now
	if r.phase == domain.PhaseDestroyed {
		return
	}

	for _, s := range r.players() {
		if s.Vitals.NeedsRegen(now) {
			s.Vitals.Restore()
			r.broadcast(protocol.OutHealth, s.ID, s.Vitals.Health)
		}
	}

	r.scheduler.RunDue(now)

	if len(r.sessions) > 0 {
		r.idleSince = time.Time{}
		return
	}
	if r.idleSince.IsZero() {
		r.idleSince = now
	}
	if now.Sub(r.idleSince) >= domain.IdleTimeout {
		r.destroy("idle")
	}
}

// endMatch runs once per cycle when the countdown reaches zero.
func (r *Room) endMatch() {
	if r.phase != domain.PhaseActive {
		return
	}
	r.phase = domain.PhaseEnding

	results := systems.FinishBoard(r.boardEntries())
	r.broadcast(protocol.OutFinish, results)

	won := make(map[int]bool, len(results))
	for _, e := range results {
		won[e.PlayerID] = e.Won == 1
	}
	for _, s := range r.players() {
		r.reportStats(s, won[s.ID])
	}

	r.log.WithFields(logrus.Fields{
		"match_id": r.matchID,
		"map":      r.mapName,
		"players":  len(results),
	}).Info("Match finished")

	if len(r.sessions) == 0 {
		r.destroy("match ended with no players")
		return
	}
	r.restart = r.scheduler.After(r.clock.Now(), domain.RestartDelay, "restart", r.restartMatch)
}

// reportStats sends one player's result without blocking the room.
func (r *Room) reportStats(s *Session, won bool) {
	if r.cfg.Reporter == nil || s.Identity.Hash == "" {
		return
	}
	report := accounts.StatReport{
		Hash:      s.Identity.Hash,
		Kills:     s.Stats.Kills,
		Deaths:    s.Stats.Deaths,
		Headshots: s.Stats.Headshots,
		Score:     s.Stats.Score,
		Won:       won,
		MatchID:   r.matchID,
	}
	reporter := r.cfg.Reporter
	timeout := r.cfg.AccountTimeout
	log := s.log

	go func() {
		// Bounded by the timeout only, not by the room lifetime.
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := reporter.Report(ctx, report); err != nil {
			log.WithError(err).Warn("Stat report failed")
		}
	}()
}

// restartMatch starts the next cycle on a different map.
func (r *Room) restartMatch() {
	r.restart = nil
	if r.phase != domain.PhaseEnding {
		return
	}

	now := r.clock.Now()
	r.setMap(systems.NextMap(r.rng, r.mapName))
	r.matchClock = r.cfg.matchSeconds()
	r.matchID = utils.NewMatchID(now)
	r.phase = domain.PhaseActive

	for _, s := range r.players() {
		s.Stats.Reset()
		s.streakReset.Cancel()
		s.streakReset = nil
		s.Streak = 1
		r.send(s, protocol.OutMode, r.mode, r.mapName, false)
	}
	r.broadcastBoard()

	r.log.WithFields(logrus.Fields{
		"match_id": r.matchID,
		"map":      r.mapName,
	}).Info("Match restarted")
}

func (r *Room) setMap(name string) {
	r.mapName = name
	r.spawns.SetMap(name)
}

// destroy tears the room down and tells the registry. Safe to call twice.
func (r *Room) destroy(reason string) {
	if r.phase == domain.PhaseDestroyed {
		return
	}
	r.phase = domain.PhaseDestroyed
	r.cancel()
	r.scheduler.Clear()

	for _, s := range r.sessions {
		s.State = domain.Closed
	}
	r.sessions = nil
	r.byID = make(map[int]*Session)
	r.hub.CloseAll()

	r.log.WithField("reason", reason).Info("Room destroyed")
	if r.onDestroy != nil {
		r.onDestroy(r)
	}
}
