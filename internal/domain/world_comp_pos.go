package domain

import "math"

// Vec3 is a point in world units.
type Vec3 struct {
	X, Y, Z float64
}

// DistanceTo returns the Euclidean distance to other.
func (p Vec3) DistanceTo(other Vec3) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Transform is a player's position plus its two rotation angles.
type Transform struct {
	Position Vec3
	RotA     float64
	RotB     float64
}

// SpawnPoint is a spawn position and facing.
type SpawnPoint struct {
	Position Vec3
	Rotation Vec3
}
