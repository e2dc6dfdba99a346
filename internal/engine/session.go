package engine

import (
	"fmt"
	"time"

	"github.com/Seven-Network/GameServer/internal/domain"
	"github.com/Seven-Network/GameServer/internal/protocol"
	"github.com/Seven-Network/GameServer/pkg/api"

	"github.com/sirupsen/logrus"
)

// Session is one connected player. It is owned by its room goroutine.
type Session struct {
	ID     int
	ConnID string

	State     domain.AuthState
	Identity  domain.Identity
	Vitals    domain.Vitals
	Transform domain.Transform
	Stats     domain.Stats

	Streak        int
	LastRespawnAt time.Time
	Freeform      map[string]any
	JoinedAt      time.Time

	streakReset *TimerHandle
	respawn     *TimerHandle
	authPending bool

	log *logrus.Entry
}

func newSession(id int, connID string, now time.Time, roomLog *logrus.Entry) *Session {
	return &Session{
		ID:     id,
		ConnID: connID,
		State:  domain.Unauthenticated,
		Vitals: domain.NewVitals(),
		Streak: 1,
		// The first respawn request is always honoured.
		LastRespawnAt: now.Add(-domain.RespawnDebounce - time.Second),
		Freeform:      make(map[string]any),
		JoinedAt:      now,
		log: roomLog.WithFields(logrus.Fields{
			"session_id": id,
			"conn_id":    connID,
		}),
	}
}

func (s *Session) authenticated() bool {
	return s.State == domain.Authenticated
}

// cancelTimers stops every timer that would touch this session.
func (s *Session) cancelTimers() {
	s.streakReset.Cancel()
	s.respawn.Cancel()
	s.streakReset = nil
	s.respawn = nil
}

func (s *Session) profile() api.Profile {
	return api.Profile{
		Dance:       "Techno",
		Group:       1,
		PlayerID:    s.ID,
		Skin:        s.Identity.Skin,
		Team:        domain.TeamNone,
		Username:    s.Identity.Name,
		Weapon:      s.Identity.Weapon,
		WeaponSkins: api.DefaultWeaponSkins(),
		Verified:    s.Identity.Verified,
	}
}

// sentinelProfile is the "no team" roster entry that ends every lobby roster.
func sentinelProfile() api.Profile {
	return api.Profile{
		Dance:       "Techno",
		Group:       1,
		PlayerID:    domain.SentinelPlayerID,
		Team:        domain.TeamNone,
		WeaponSkins: api.DefaultWeaponSkins(),
	}
}

func (s *Session) boardEntry() api.BoardEntry {
	return api.BoardEntry{
		PlayerID:  s.ID,
		Username:  s.Identity.Name,
		Skin:      s.Identity.Skin,
		Kills:     s.Stats.Kills,
		Deaths:    s.Stats.Deaths,
		Headshots: s.Stats.Headshots,
		Score:     s.Stats.Score,
		Verified:  s.Identity.Verified,
	}
}

// quantizedTransform is the `p` payload after the session id.
func (s *Session) quantizedTransform() []any {
	t := s.Transform
	return []any{
		protocol.Quantize(t.Position.X),
		protocol.Quantize(t.Position.Y),
		protocol.Quantize(t.Position.Z),
		protocol.Quantize(t.RotA),
		protocol.Quantize(t.RotB),
	}
}

func guestName(id int) string {
	return fmt.Sprintf("Guest %d", id)
}
