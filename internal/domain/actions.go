package domain

// AuthState is the session state machine.
type AuthState uint8

const (
	Unauthenticated AuthState = iota
	Authenticated
	Closed
)

var authStateToString = map[AuthState]string{
	Unauthenticated: "UNAUTHENTICATED",
	Authenticated:   "AUTHENTICATED",
	Closed:          "CLOSED",
}

// String implements fmt.Stringer.
func (a AuthState) String() string {
	if val, ok := authStateToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Phase is where a room is in its match cycle.
type Phase uint8

const (
	PhaseActive Phase = iota
	PhaseEnding
	PhaseDestroyed
)

var phaseToString = map[Phase]string{
	PhaseActive:    "ACTIVE",
	PhaseEnding:    "ENDING",
	PhaseDestroyed: "DESTROYED",
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	if val, ok := phaseToString[p]; ok {
		return val
	}
	return "UNKNOWN"
}
