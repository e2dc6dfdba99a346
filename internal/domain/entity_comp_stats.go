package domain

import "time"

// TakeDamage subtracts amount and clamps at zero. Returns true when this hit
// brought health to zero. A dead target takes no damage.
func (v *Vitals) TakeDamage(amount int, at time.Time) bool {
	if !v.Alive {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	v.Health -= amount
	v.LastDamageAt = at

	if v.Health <= 0 {
		v.Health = 0
		return true
	}
	return false
}

// Kill marks the owner dead. Returns false if already dead.
func (v *Vitals) Kill() bool {
	if !v.Alive {
		return false
	}
	v.Alive = false
	return true
}

// Restore brings the owner back to full health and alive.
func (v *Vitals) Restore() {
	v.Health = MaxHealth
	v.Alive = true
}

// NeedsRegen reports whether passive regen applies at now.
func (v *Vitals) NeedsRegen(now time.Time) bool {
	return v.Alive && v.Health < MaxHealth && now.Sub(v.LastDamageAt) >= RegenDelay
}
