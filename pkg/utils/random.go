package utils

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewConnID returns a random id for one websocket connection (log correlation only).
func NewConnID() string {
	return uuid.NewString()
}

// NewMatchID returns a time-ordered id for one match cycle.
func NewMatchID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
}

// PickExcept returns a uniformly random element of options different from exclude.
// If every option equals exclude (or there is only one), exclude itself is returned.
func PickExcept(rng *rand.Rand, options []string, exclude string) string {
	candidates := make([]string, 0, len(options))
	for _, o := range options {
		if o != exclude {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return exclude
	}
	return candidates[rng.Intn(len(candidates))]
}
