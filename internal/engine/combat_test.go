package engine

import (
	"testing"
	"time"

	"github.com/Seven-Network/GameServer/internal/domain"
	"github.com/Seven-Network/GameServer/internal/protocol"
)

func TestHeadshotKill(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")
	b := h.join("bravo")

	h.send(a, protocol.TagDamage, b, 100, true)

	victim := h.session(b)
	if victim.Vitals.Health != 0 || victim.Vitals.Alive {
		t.Fatalf("victim vitals = %+v", victim.Vitals)
	}
	killer := h.session(a).Stats
	if killer.Kills != 1 || killer.Headshots != 1 || killer.Score != 10 {
		t.Errorf("killer stats = %+v", killer)
	}
	if victim.Stats.Deaths != 1 {
		t.Errorf("victim deaths = %d", victim.Stats.Deaths)
	}

	toVictim := h.drain(b)
	if damaged := only(toVictim, protocol.OutDamaged); len(damaged) != 1 || argInt(t, damaged[0], 0) != a {
		t.Errorf("victim damage notices = %v", damaged)
	}

	frames := h.drain(a)
	if got := len(only(frames, protocol.OutDeath)); got != 1 {
		t.Errorf("death broadcasts = %d, want 1", got)
	}
	kills := only(frames, protocol.OutKill)
	if len(kills) != 1 || argInt(t, kills[0], 1) != a {
		t.Fatalf("kill frames = %v", kills)
	}
	if reason, _ := kills[0].args.Bool(2); reason {
		t.Error("kill reason should be false for a normal kill")
	}
	ann := only(frames, protocol.OutAnnounce)
	if len(ann) != 1 {
		t.Fatalf("announce frames = %d", len(ann))
	}
	if score := argInt(t, ann[0], 2); score != 10 {
		t.Errorf("announced score = %d, want 10", score)
	}
	if notif, _ := ann[0].args.String(3); notif != "Headshot" {
		t.Errorf("notification = %q, want Headshot", notif)
	}
	notes := only(frames, protocol.OutNotification)
	if len(notes) != 1 {
		t.Fatalf("notification frames = %d", len(notes))
	}
	if detail := argMap(t, notes[0], 1); detail["notification"] != "Headshot" || detail["victim"] != "bravo" {
		t.Errorf("kill detail = %v", detail)
	}
}

func TestDeathFiresOncePerLife(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")
	b := h.join("bravo")

	h.send(a, protocol.TagDamage, b, 60, false)
	h.send(a, protocol.TagDamage, b, 60, false)
	h.send(a, protocol.TagDamage, b, 60, false)
	h.room.handle(Inbound{SessionID: a, Msg: protocol.Message{Tag: protocol.TagRadius, Args: protocol.Args{"grenade", 0, 0, 0}}})

	deaths := 0
	for _, f := range only(h.drain(a), protocol.OutDeath) {
		if argInt(t, f, 0) == b {
			deaths++
		}
	}
	if deaths != 1 {
		t.Errorf("death broadcasts for victim = %d, want 1", deaths)
	}
	if got := h.session(b).Stats.Deaths; got != 1 {
		t.Errorf("deaths = %d, want 1", got)
	}
	if got := h.session(a).Stats.Kills; got != 1 {
		t.Errorf("kills = %d, want 1", got)
	}
}

func TestHealthOnlyDecreases(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")
	b := h.join("bravo")

	prev := h.session(b).Vitals.Health
	for _, amount := range []float64{10, 0, 25.4, 3} {
		h.send(a, protocol.TagDamage, b, amount, false)
		cur := h.session(b).Vitals.Health
		if cur > prev || cur < 0 {
			t.Fatalf("health went %d -> %d after %v damage", prev, cur, amount)
		}
		prev = cur
	}
	if prev != 62 {
		t.Errorf("health = %d, want 62", prev)
	}
}

func TestDeadPlayersCannotDealDamage(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")
	b := h.join("bravo")

	h.send(a, protocol.TagDamage, b, 100, false)
	h.send(b, protocol.TagDamage, a, 50, false)

	if got := h.session(a).Vitals.Health; got != 100 {
		t.Errorf("dead player dealt damage: health = %d", got)
	}

	// Unknown targets are ignored.
	h.send(a, protocol.TagDamage, 99, 50, false)
}

func TestRespawnAfterDeath(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")
	b := h.join("bravo")

	h.send(a, protocol.TagDamage, b, 100, false)
	h.drainAll()

	h.room.update(h.clock.Advance(domain.RespawnDelay - time.Millisecond))
	if h.session(b).Vitals.Alive {
		t.Fatal("revived before the respawn delay")
	}

	h.room.update(h.clock.Advance(time.Millisecond))
	victim := h.session(b)
	if !victim.Vitals.Alive || victim.Vitals.Health != 100 {
		t.Fatalf("not revived: %+v", victim.Vitals)
	}

	frames := h.drain(a)
	if got := tagsOf(frames); !equalTags(got, []string{protocol.OutHealth, protocol.OutRespawn}) {
		t.Fatalf("revive frames = %v", got)
	}
	spawn := argMap(t, frames[1], 1)
	if _, ok := spawn["position"]; !ok {
		t.Errorf("respawn transform = %v", spawn)
	}
}

func TestRespawnDebounce(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")

	h.send(a, protocol.TagRespawn)
	h.clock.Advance(4999 * time.Millisecond)
	h.send(a, protocol.TagRespawn)

	if got := len(only(h.drain(a), protocol.OutRespawn)); got != 1 {
		t.Fatalf("respawns within 4999ms = %d, want 1", got)
	}

	h.clock.Advance(time.Millisecond)
	h.send(a, protocol.TagRespawn)
	if got := len(only(h.drain(a), protocol.OutRespawn)); got != 1 {
		t.Errorf("respawn after 5000ms = %d, want 1", got)
	}
}

func TestRespawnCyclesSpawns(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")

	var xs []float64
	for i := 0; i < 2; i++ {
		h.send(a, protocol.TagRespawn)
		xs = append(xs, h.session(a).Transform.Position.X)
		h.clock.Advance(domain.RespawnDebounce)
	}
	if xs[0] == xs[1] {
		t.Errorf("consecutive respawns used the same spawn: %v", xs)
	}
	if h.room.spawns.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", h.room.spawns.Cursor())
	}
}

func TestKillStreak(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")
	b := h.join("bravo")
	c := h.join("charlie")

	h.send(a, protocol.TagDamage, b, 100, false)
	h.send(a, protocol.TagDamage, c, 100, false)

	ann := only(h.drain(a), protocol.OutAnnounce)
	if len(ann) != 2 {
		t.Fatalf("announce frames = %d", len(ann))
	}
	if n, _ := ann[0].args.String(3); n != "Kill" {
		t.Errorf("first kill = %q", n)
	}
	if n, _ := ann[1].args.String(3); n != "2x" {
		t.Errorf("second kill = %q", n)
	}
	if got := h.session(a).Stats.Score; got != 25 {
		t.Errorf("score = %d, want 25", got)
	}
	if got := h.session(a).Streak; got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}

	// Victims revive at +4s, the streak lapses at +10s.
	h.room.update(h.clock.Advance(domain.StreakWindow))
	if got := h.session(a).Streak; got != 1 {
		t.Fatalf("streak after window = %d, want 1", got)
	}

	h.drainAll()
	h.send(a, protocol.TagDamage, b, 100, false)
	ann = only(h.drain(a), protocol.OutAnnounce)
	if n, _ := ann[0].args.String(3); n != "Kill" {
		t.Errorf("kill after reset = %q", n)
	}
	if got := h.session(a).Stats.Score; got != 35 {
		t.Errorf("score = %d, want 35", got)
	}
}

func TestStreakTimerRearmed(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")
	b := h.join("bravo")
	c := h.join("charlie")

	h.send(a, protocol.TagDamage, b, 100, false)
	h.room.update(h.clock.Advance(6 * time.Second))
	h.send(a, protocol.TagDamage, c, 100, false)

	// 11s after the first kill, 5s after the second: still on a streak.
	h.room.update(h.clock.Advance(5 * time.Second))
	if got := h.session(a).Streak; got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
	h.room.update(h.clock.Advance(5 * time.Second))
	if got := h.session(a).Streak; got != 1 {
		t.Errorf("streak = %d, want reset to 1", got)
	}
}

func TestDrownIsSuicide(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")
	b := h.join("bravo")

	h.send(a, protocol.TagDrown)

	s := h.session(a)
	if s.Vitals.Alive || s.Stats.Deaths != 1 || s.Stats.Score != -10 || s.Stats.Kills != 0 {
		t.Fatalf("after drown: vitals=%+v stats=%+v", s.Vitals, s.Stats)
	}

	frames := h.drain(b)
	kills := only(frames, protocol.OutKill)
	if len(kills) != 1 || argInt(t, kills[0], 0) != a || argInt(t, kills[0], 1) != a {
		t.Fatalf("kill frames = %v", kills)
	}
	if reason, _ := kills[0].args.String(2); reason != "Drown" {
		t.Errorf("reason = %q, want Drown", reason)
	}
	ann := only(frames, protocol.OutAnnounce)
	if n, _ := ann[0].args.String(3); n != "Suicide" {
		t.Errorf("notification = %q", n)
	}
}

func TestSplashFalloff(t *testing.T) {
	h := newHarness(t)
	thrower := h.join("alpha")
	near := h.join("bravo")
	mid := h.join("charlie")

	// Wire units are world units times 5.
	h.send(thrower, protocol.TagPosition, 500, 0, 0, 0, 0)
	h.send(near, protocol.TagPosition, 25, 0, 0, 0, 0)
	h.send(mid, protocol.TagPosition, 75, 0, 0, 0, 0)
	h.drainAll()

	h.send(thrower, protocol.TagRadius, "grenade", 0, 0, 0)

	if got := h.session(near).Vitals.Health; got != 0 {
		t.Errorf("5 units away: health = %d, want 0", got)
	}
	if got := h.session(mid).Vitals.Health; got != 50 {
		t.Errorf("15 units away: health = %d, want 50", got)
	}
	if got := h.session(thrower).Vitals.Health; got != 100 {
		t.Errorf("out of range thrower: health = %d", got)
	}
	if got := h.session(thrower).Stats.Kills; got != 1 {
		t.Errorf("splash kill not credited: kills = %d", got)
	}

	damaged := only(h.drain(mid), protocol.OutDamaged)
	if len(damaged) != 1 || argInt(t, damaged[0], 0) != thrower {
		t.Errorf("damage source notices = %v", damaged)
	}
}

func TestSplashHitsThrower(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")

	h.send(a, protocol.TagRadius, "rocket", 0, 0, 0)

	s := h.session(a)
	if s.Vitals.Alive || s.Stats.Score != -10 {
		t.Errorf("thrower at ground zero: vitals=%+v stats=%+v", s.Vitals, s.Stats)
	}
}

func TestPassiveRegen(t *testing.T) {
	h := newHarness(t)
	a := h.join("alpha")
	b := h.join("bravo")

	h.send(a, protocol.TagDamage, b, 30, false)
	h.drainAll()

	h.room.update(h.clock.Advance(domain.RegenDelay - time.Millisecond))
	if got := h.session(b).Vitals.Health; got != 70 {
		t.Fatalf("regen too early: health = %d", got)
	}

	h.room.update(h.clock.Advance(time.Millisecond))
	if got := h.session(b).Vitals.Health; got != 100 {
		t.Fatalf("no regen after delay: health = %d", got)
	}
	health := only(h.drain(a), protocol.OutHealth)
	if len(health) != 1 || argInt(t, health[0], 0) != b || argInt(t, health[0], 1) != 100 {
		t.Errorf("regen broadcast = %v", health)
	}
}
