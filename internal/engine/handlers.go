package engine

import (
	"context"

	"github.com/Seven-Network/GameServer/internal/domain"
	"github.com/Seven-Network/GameServer/internal/infrastructure/accounts"
	"github.com/Seven-Network/GameServer/internal/protocol"
	"github.com/Seven-Network/GameServer/internal/systems"
	"github.com/Seven-Network/GameServer/pkg/api"

	"github.com/sirupsen/logrus"
)

const (
	kickGameFull   = "Game is full"
	kickAuthFailed = "Authentication failure"

	kickServerClosed = "Server closed"
)

// --- auth ---

func (r *Room) handleAuth(s *Session, p api.AuthPayload) error {
	if s.authPending {
		return nil
	}
	if r.playerCountExcept(s) >= r.cfg.MaxPlayers {
		r.kick(s, kickGameFull)
		return nil
	}

	if isGuestHash(p.Hash) || r.cfg.Verifier == nil {
		r.completeAuth(s, p, accounts.Account{}, false)
		return nil
	}

	s.authPending = true
	r.verifyAsync(s, p)
	return nil
}

func isGuestHash(hash string) bool {
	return hash == "" || hash == domain.GuestName
}

// verifyAsync runs verification off the room goroutine and posts the result back.
func (r *Room) verifyAsync(s *Session, p api.AuthPayload) {
	verifier := r.cfg.Verifier
	timeout := r.cfg.AccountTimeout
	id, connID := s.ID, s.ConnID

	go func() {
		ctx, cancel := context.WithTimeout(r.ctx, timeout)
		defer cancel()

		acc, err := verifier.Verify(ctx, p.Hash)
		_ = r.post(authResult{
			SessionID: id,
			ConnID:    connID,
			Payload:   p,
			Account:   acc,
			Err:       err,
		})
	}()
}

// finishAuth applies a verification result if its session is still waiting for it.
func (r *Room) finishAuth(res authResult) {
	s, ok := r.byID[res.SessionID]
	if !ok || s.ConnID != res.ConnID || s.State != domain.Unauthenticated {
		r.log.WithField("session_id", res.SessionID).Debug("Discarding late auth result")
		return
	}
	s.authPending = false

	if res.Err != nil {
		s.log.WithError(res.Err).Warn("Authentication failed")
		r.kick(s, kickAuthFailed)
		return
	}
	// Seats may have filled while verification was in flight.
	if r.playerCountExcept(s) >= r.cfg.MaxPlayers {
		r.kick(s, kickGameFull)
		return
	}
	r.completeAuth(s, res.Payload, res.Account, true)
}

func (r *Room) completeAuth(s *Session, p api.AuthPayload, acc accounts.Account, verified bool) {
	name := p.Name
	switch {
	case acc.Username != "":
		name = acc.Username
	case name == domain.GuestName:
		name = guestName(s.ID)
	}

	s.Identity = domain.Identity{
		Name:     name,
		Skin:     p.Skin,
		Weapon:   p.Weapon,
		Verified: acc.Verified,
	}
	if verified {
		s.Identity.Hash = p.Hash
	}
	s.State = domain.Authenticated
	s.Vitals = domain.NewVitals()

	if r.Private && !r.mapLocked {
		r.mapLocked = true
		if m := p.RequestedMap(); m != "" && m != r.mapName && systems.IsMap(m) {
			r.setMap(m)
		}
	}
	r.clockOn = true

	s.log.WithFields(logrus.Fields{
		"name":     name,
		"verified": s.Identity.Verified,
	}).Info("Player joined")

	r.joinSequence(s)
}

// joinSequence sends the newcomer its view of the room, then announces it.
func (r *Room) joinSequence(s *Session) {
	r.send(s, protocol.OutMe, s.profile())
	r.send(s, protocol.OutMode, r.mode, r.mapName, false)

	for _, other := range r.players() {
		if other != s {
			r.send(s, protocol.OutPlayer, other.profile())
		}
	}
	r.send(s, protocol.OutPlayer, sentinelProfile())

	r.broadcastExcept(s, protocol.OutPlayer, s.profile())
	r.broadcastBoard()
	r.send(s, protocol.OutPing, true)
}

// --- movement and state ---

// handlePosition rebroadcasts every update, changed or not.
func (r *Room) handlePosition(s *Session, p api.PositionPayload) error {
	s.Transform = domain.Transform{
		Position: domain.Vec3{
			X: protocol.Dequantize(p.X),
			Y: protocol.Dequantize(p.Y),
			Z: protocol.Dequantize(p.Z),
		},
		RotA: protocol.Dequantize(p.RotA),
		RotB: protocol.Dequantize(p.RotB),
	}
	r.broadcast(protocol.OutPosition, append([]any{s.ID}, s.quantizedTransform()...)...)
	return nil
}

func (r *Room) handleState(s *Session, p api.StatePayload) error {
	s.Freeform[p.Key] = p.Value
	r.broadcastExcept(s, protocol.OutState, s.ID, p.Key, p.Value)
	return nil
}

func (r *Room) handleEvent(s *Session, args protocol.Args) error {
	payload, err := args.Raw(0)
	if err != nil {
		return err
	}
	r.broadcastExcept(s, protocol.OutEvent, s.ID, payload)
	return nil
}

// handleThrow relays a projectile to the other players as-is.
func (r *Room) handleThrow(s *Session, args protocol.Args) error {
	out := make([]any, 0, args.Len()+1)
	out = append(out, s.ID)
	out = append(out, args...)
	r.broadcastExcept(s, protocol.OutThrow, out...)
	return nil
}

func (r *Room) handleWeapon(s *Session, p api.WeaponPayload) error {
	s.Identity.Weapon = p.Weapon
	r.broadcastExcept(s, protocol.OutWeapon, s.ID, p.Weapon)
	return nil
}

func (r *Room) handleChat(s *Session, p api.ChatPayload) error {
	r.broadcast(protocol.OutChat, s.ID, p.Text)
	return nil
}

func (r *Room) handlePing(s *Session) error {
	r.send(s, protocol.OutPing, true)
	return nil
}

// --- combat ---

func (r *Room) handleDamage(s *Session, p api.DamagePayload) error {
	if !s.Vitals.Alive {
		return nil
	}
	target := r.player(p.TargetID)
	if target == nil {
		return nil
	}
	r.applyDamage(target, p.Amount, s.ID, p.Headshot)
	return nil
}

func (r *Room) handleRadius(s *Session, p api.RadiusPayload) error {
	center := domain.Vec3{
		X: protocol.Dequantize(p.X),
		Y: protocol.Dequantize(p.Y),
		Z: protocol.Dequantize(p.Z),
	}
	r.resolveSplash(s.ID, center, systems.SplashProfileFor(p.Tag))
	return nil
}

func (r *Room) handleRespawn(s *Session) error {
	r.respawn(s)
	return nil
}

func (r *Room) handleDrown(s *Session) error {
	r.applyDamage(s, domain.MaxHealth, s.ID, false)
	return nil
}
