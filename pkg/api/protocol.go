package api

// --- SERVER -> CLIENT ---

// Profile describes one player. Sent as `me` to its owner and as `player`
// to everyone else in the room.
type Profile struct {
	Dance       string          `msgpack:"dance"`
	Group       int             `msgpack:"group"`
	HeroSkin    bool            `msgpack:"heroSkin"`
	PlayerID    int             `msgpack:"playerId"`
	Skin        string          `msgpack:"skin"`
	Team        string          `msgpack:"team"`
	Username    string          `msgpack:"username"`
	Weapon      string          `msgpack:"weapon"`
	WeaponSkins map[string]bool `msgpack:"weaponSkins"`
	Verified    bool            `msgpack:"verified"`
}

// DefaultWeaponSkins is the locked skin set every profile carries.
func DefaultWeaponSkins() map[string]bool {
	return map[string]bool{
		"Scar":    false,
		"Shotgun": false,
		"Sniper":  false,
		"Tec-9":   false,
	}
}

// BoardEntry is one scoreboard row.
type BoardEntry struct {
	PlayerID  int    `msgpack:"playerId" json:"playerId"`
	Username  string `msgpack:"username" json:"username"`
	Skin      string `msgpack:"skin" json:"skin"`
	Kills     int    `msgpack:"kills" json:"kills"`
	Deaths    int    `msgpack:"deaths" json:"deaths"`
	Headshots int    `msgpack:"headshots" json:"headshots"`
	Score     int    `msgpack:"score" json:"score"`
	Verified  bool   `msgpack:"verified" json:"verified"`
}

// FinishEntry is a scoreboard row at match end. Won is 1 for the winner.
type FinishEntry struct {
	BoardEntry `msgpack:",inline"`
	Won        int `msgpack:"won"`
}

// WireVec is a vector in the respawn payload.
type WireVec struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
	Z float64 `msgpack:"z"`
}

// RespawnTransform is the `respawn` payload.
type RespawnTransform struct {
	Position WireVec `msgpack:"position"`
	Rotation WireVec `msgpack:"rotation"`
}

// KillDetail is the structured payload of `notification("kill", ...)`.
type KillDetail struct {
	KillerID     int    `msgpack:"killerId"`
	Killer       string `msgpack:"killer"`
	VictimID     int    `msgpack:"victimId"`
	Victim       string `msgpack:"victim"`
	Score        int    `msgpack:"score"`
	Notification string `msgpack:"notification"`
	Headshot     bool   `msgpack:"headshot"`
}

// --- HTTP ---

// RoomDescriptor is the `result` of POST /get-room/{id}.
type RoomDescriptor struct {
	ConnectedPlayers  int    `json:"connected_players"`
	Country           string `json:"country"`
	CreatedAt         int64  `json:"created_at"`
	ForInvite         int    `json:"for_invite"`
	Hash              string `json:"hash"`
	IP                string `json:"ip"`
	IsMobile          int    `json:"is_mobile"`
	IsPrivate         int    `json:"is_private"`
	Level             int    `json:"level"`
	LookingForPlayers int    `json:"looking_for_players"`
	Map               string `json:"map"`
	MaxPlayer         int    `json:"max_player"`
	Server            string `json:"server"`
	ServerCode        string `json:"server_code"`
	UpdatedAt         int64  `json:"updated_at"`
}

// RoomResponse wraps a RoomDescriptor or a not-found message.
type RoomResponse struct {
	Success bool            `json:"success"`
	IsOwner bool            `json:"is_owner"`
	Options []string        `json:"options"`
	Result  *RoomDescriptor `json:"result,omitempty"`
	Message string          `json:"message,omitempty"`
}

// RoomSummary is one row of /debug/rooms.
type RoomSummary struct {
	ID        string       `json:"id"`
	Map       string       `json:"map"`
	Mode      string       `json:"mode"`
	Phase     string       `json:"phase"`
	MatchID   string       `json:"match_id"`
	Private   bool         `json:"private"`
	Players   int          `json:"players"`
	Sessions  int          `json:"sessions"`
	Remaining int          `json:"seconds_remaining"`
	Board     []BoardEntry `json:"board"`

	Timers []map[string]interface{} `json:"timers,omitempty"`
}

// --- CLIENT -> SERVER payloads ---

// AuthPayload is `auth(true, name, skin, weapon, options, hash)`.
type AuthPayload struct {
	Name    string
	Skin    string
	Weapon  string
	Options map[string]any
	Hash    string
}

// RequestedMap returns options["map"] if it is a string.
func (p AuthPayload) RequestedMap() string {
	if m, ok := p.Options["map"].(string); ok {
		return m
	}
	return ""
}

// PositionPayload is `p(x, y, z, a, b)` in wire (quantized) units.
type PositionPayload struct {
	X, Y, Z float64
	RotA    float64
	RotB    float64
}

// StatePayload is `s(key, value)`.
type StatePayload struct {
	Key   string
	Value any
}

// DamagePayload is `da(targetId, amount, headshot)`.
type DamagePayload struct {
	TargetID int
	Amount   float64
	Headshot bool
}

// RadiusPayload is `radius(tag, x, y, z)` in wire units.
type RadiusPayload struct {
	Tag     string
	X, Y, Z float64
}

// WeaponPayload is `weapon(weaponId)`.
type WeaponPayload struct {
	Weapon string
}

// ChatPayload is `chat(text)`.
type ChatPayload struct {
	Text string
}
