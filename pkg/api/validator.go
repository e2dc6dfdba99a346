package api

import (
	"errors"
	"math"
)

// Validator is implemented by payloads that check themselves after decoding.
type Validator interface {
	Validate() error
}

func (p AuthPayload) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func (p PositionPayload) Validate() error {
	for _, v := range []float64{p.X, p.Y, p.Z, p.RotA, p.RotB} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("transform must be finite")
		}
	}
	return nil
}

func (p StatePayload) Validate() error {
	if p.Key == "" {
		return errors.New("state key is required")
	}
	return nil
}

func (p DamagePayload) Validate() error {
	if p.Amount < 0 {
		return errors.New("damage cannot be negative")
	}
	return nil
}

func (p WeaponPayload) Validate() error {
	if p.Weapon == "" {
		return errors.New("weapon is required")
	}
	return nil
}
