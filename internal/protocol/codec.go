package protocol

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrEmptyFrame     = errors.New("protocol: empty frame")
	ErrMalformedFrame = errors.New("protocol: malformed frame")
	ErrUnknownTag     = errors.New("protocol: unknown tag")
	ErrArity          = errors.New("protocol: wrong arity")
	ErrArgType        = errors.New("protocol: wrong argument type")
)

// Message is one decoded client frame: a tag plus positional arguments.
type Message struct {
	Tag  Tag
	Args Args
}

// Decode parses a msgpack `[tag, ...args]` array.
// Errors are values; callers drop the frame and keep the connection.
func Decode(b []byte) (Message, error) {
	if len(b) == 0 {
		return Message{}, ErrEmptyFrame
	}

	var raw []any
	if err := msgpack.Unmarshal(b, &raw); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if len(raw) == 0 {
		return Message{}, fmt.Errorf("%w: no tag", ErrMalformedFrame)
	}

	name, ok := raw[0].(string)
	if !ok {
		return Message{}, fmt.Errorf("%w: tag is %T", ErrMalformedFrame, raw[0])
	}
	tag := ParseTag(name)
	if tag == TagUnknown {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownTag, name)
	}

	return Message{Tag: tag, Args: Args(raw[1:])}, nil
}

// Encode builds a msgpack `[tag, ...args]` frame.
func Encode(tag string, args ...any) ([]byte, error) {
	if tag == "" {
		return nil, errors.New("protocol: encode with empty tag")
	}
	frame := make([]any, 0, len(args)+1)
	frame = append(frame, tag)
	frame = append(frame, args...)
	return msgpack.Marshal(frame)
}

// EncodeClient builds a client->server frame. Used by tests and tooling.
func EncodeClient(tag Tag, args ...any) ([]byte, error) {
	if tag == TagUnknown || tag >= tagCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, tag)
	}
	return Encode(tag.String(), args...)
}

// DecodeServer parses a server->client frame into its tag and raw arguments.
func DecodeServer(b []byte) (string, []any, error) {
	var raw []any
	if err := msgpack.Unmarshal(b, &raw); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if len(raw) == 0 {
		return "", nil, fmt.Errorf("%w: no tag", ErrMalformedFrame)
	}
	name, ok := raw[0].(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: tag is %T", ErrMalformedFrame, raw[0])
	}
	return name, raw[1:], nil
}
