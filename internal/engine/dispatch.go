package engine

import (
	"fmt"

	"github.com/Seven-Network/GameServer/internal/protocol"
	"github.com/Seven-Network/GameServer/pkg/api"

	"github.com/sirupsen/logrus"
)

// handlerFunc is the contract for every client tag.
type handlerFunc func(r *Room, s *Session, args protocol.Args) error

// typedHandlerFunc works on an already decoded and validated payload.
type typedHandlerFunc[T any] func(r *Room, s *Session, payload T) error

// emptyHandlerFunc is for tags that carry no data.
type emptyHandlerFunc func(r *Room, s *Session) error

// payloadDecoder turns positional args into a payload.
type payloadDecoder[T any] func(args protocol.Args) (T, error)

// withPayload decodes and validates before calling the typed handler.
func withPayload[T any](decode payloadDecoder[T], handler typedHandlerFunc[T]) handlerFunc {
	return func(r *Room, s *Session, args protocol.Args) error {
		payload, err := decode(args)
		if err != nil {
			return fmt.Errorf("invalid payload format: %w", err)
		}

		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}

		return handler(r, s, payload)
	}
}

// withEmptyPayload ignores whatever args arrived.
func withEmptyPayload(handler emptyHandlerFunc) handlerFunc {
	return func(r *Room, s *Session, _ protocol.Args) error {
		return handler(r, s)
	}
}

// unauthenticatedRoutes only admits auth. Every other slot is nil, so other
// tags from an unauthenticated session are dropped before reaching a handler.
var unauthenticatedRoutes = [protocol.NumTags]handlerFunc{
	protocol.TagAuth: withPayload(decodeAuth, (*Room).handleAuth),
}

// authenticatedRoutes serves every tag except auth.
var authenticatedRoutes = [protocol.NumTags]handlerFunc{
	protocol.TagPosition: withPayload(decodePosition, (*Room).handlePosition),
	protocol.TagState:    withPayload(decodeState, (*Room).handleState),
	protocol.TagEvent:    (*Room).handleEvent,
	protocol.TagDamage:   withPayload(decodeDamage, (*Room).handleDamage),
	protocol.TagThrow:    (*Room).handleThrow,
	protocol.TagRadius:   withPayload(decodeRadius, (*Room).handleRadius),
	protocol.TagWeapon:   withPayload(decodeWeapon, (*Room).handleWeapon),
	protocol.TagRespawn:  withEmptyPayload((*Room).handleRespawn),
	protocol.TagDrown:    withEmptyPayload((*Room).handleDrown),
	protocol.TagChat:     withPayload(decodeChat, (*Room).handleChat),
	protocol.TagPing:     withEmptyPayload((*Room).handlePing),
}

func routesFor(s *Session) *[protocol.NumTags]handlerFunc {
	if s.authenticated() {
		return &authenticatedRoutes
	}
	return &unauthenticatedRoutes
}

// dispatch runs the handler for one frame. Errors never leave the room.
func (r *Room) dispatch(sessionID int, msg protocol.Message) {
	s, ok := r.byID[sessionID]
	if !ok {
		return
	}
	if int(msg.Tag) >= protocol.NumTags {
		return
	}

	handler := routesFor(s)[msg.Tag]
	if handler == nil {
		s.log.WithFields(logrus.Fields{
			"tag":   msg.Tag.String(),
			"state": s.State.String(),
		}).Debug("Frame ignored in current state")
		return
	}

	if err := handler(r, s, msg.Args); err != nil {
		s.log.WithError(err).WithField("tag", msg.Tag.String()).Debug("Dropping frame")
	}
}

// --- decoders ---

func optString(args protocol.Args, i int) string {
	if i >= args.Len() {
		return ""
	}
	v, _ := args.String(i)
	return v
}

func decodeAuth(args protocol.Args) (api.AuthPayload, error) {
	var p api.AuthPayload
	var err error

	if p.Name, err = args.String(1); err != nil {
		return p, err
	}
	if p.Skin, err = args.String(2); err != nil {
		return p, err
	}
	if p.Weapon, err = args.String(3); err != nil {
		return p, err
	}
	p.Options = map[string]any{}
	if args.Len() > 4 {
		if p.Options, err = args.Map(4); err != nil {
			return p, err
		}
	}
	p.Hash = optString(args, 5)
	return p, nil
}

func decodePosition(args protocol.Args) (api.PositionPayload, error) {
	v, err := args.Floats(0, 5)
	if err != nil {
		return api.PositionPayload{}, err
	}
	return api.PositionPayload{X: v[0], Y: v[1], Z: v[2], RotA: v[3], RotB: v[4]}, nil
}

func decodeState(args protocol.Args) (api.StatePayload, error) {
	key, err := args.String(0)
	if err != nil {
		return api.StatePayload{}, err
	}
	value, err := args.Raw(1)
	if err != nil {
		return api.StatePayload{}, err
	}
	return api.StatePayload{Key: key, Value: value}, nil
}

func decodeDamage(args protocol.Args) (api.DamagePayload, error) {
	var p api.DamagePayload
	var err error

	if p.TargetID, err = args.Int(0); err != nil {
		return p, err
	}
	if p.Amount, err = args.Float(1); err != nil {
		return p, err
	}
	if args.Len() > 2 {
		if p.Headshot, err = args.Bool(2); err != nil {
			return p, err
		}
	}
	return p, nil
}

func decodeRadius(args protocol.Args) (api.RadiusPayload, error) {
	tag := optString(args, 0)
	v, err := args.Floats(1, 3)
	if err != nil {
		return api.RadiusPayload{}, err
	}
	return api.RadiusPayload{Tag: tag, X: v[0], Y: v[1], Z: v[2]}, nil
}

func decodeWeapon(args protocol.Args) (api.WeaponPayload, error) {
	w, err := args.String(0)
	return api.WeaponPayload{Weapon: w}, err
}

func decodeChat(args protocol.Args) (api.ChatPayload, error) {
	text, err := args.String(0)
	return api.ChatPayload{Text: text}, err
}
