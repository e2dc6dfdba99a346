package protocol

// Tag is the closed set of client->server message kinds.
type Tag uint8

const (
	TagUnknown Tag = iota
	TagAuth
	TagPosition
	TagState
	TagEvent
	TagDamage
	TagThrow
	TagRadius
	TagWeapon
	TagRespawn
	TagDrown
	TagChat
	TagPing

	tagCount
)

// NumTags is the size of a routing table indexed by Tag.
const NumTags = int(tagCount)

// Wire names for client->server tags.
var tagNames = map[string]Tag{
	"auth":    TagAuth,
	"p":       TagPosition,
	"s":       TagState,
	"e":       TagEvent,
	"da":      TagDamage,
	"throw":   TagThrow,
	"radius":  TagRadius,
	"weapon":  TagWeapon,
	"respawn": TagRespawn,
	"drown":   TagDrown,
	"chat":    TagChat,
	"ping":    TagPing,
}

var tagStrings = func() map[Tag]string {
	m := make(map[Tag]string, len(tagNames))
	for name, tag := range tagNames {
		m[tag] = name
	}
	return m
}()

// ParseTag maps a wire name to its Tag. Matching is exact.
func ParseTag(s string) Tag {
	if t, ok := tagNames[s]; ok {
		return t
	}
	return TagUnknown
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	if s, ok := tagStrings[t]; ok {
		return s
	}
	return "unknown"
}

// AllTags lists every known client tag in declaration order.
func AllTags() []Tag {
	out := make([]Tag, 0, NumTags-1)
	for t := TagAuth; t < tagCount; t++ {
		out = append(out, t)
	}
	return out
}

// Server->client tags.
const (
	OutAuth         = "auth"
	OutMe           = "me"
	OutMode         = "mode"
	OutPlayer       = "player"
	OutLeft         = "left"
	OutBoard        = "board"
	OutTime         = "t"
	OutHealth       = "h"
	OutDamaged      = "da"
	OutDeath        = "d"
	OutKill         = "k"
	OutNotification = "notification"
	OutAnnounce     = "announce"
	OutFinish       = "finish"
	OutRespawn      = "respawn"
	OutPosition     = "p"
	OutState        = "s"
	OutEvent        = "e"
	OutThrow        = "throw"
	OutWeapon       = "weapon"
	OutChat         = "chat"
	OutKick         = "kick"
	OutPing         = "ping"
)
