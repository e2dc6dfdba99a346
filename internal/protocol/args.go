package protocol

import (
	"fmt"
	"math"
)

// Args are the positional, loosely typed arguments of a frame.
type Args []any

// Len returns the argument count.
func (a Args) Len() int { return len(a) }

// Raw returns argument i untouched.
func (a Args) Raw(i int) (any, error) {
	if i < 0 || i >= len(a) {
		return nil, fmt.Errorf("%w: want index %d, have %d args", ErrArity, i, len(a))
	}
	return a[i], nil
}

// Float returns argument i as float64, accepting any msgpack numeric width.
func (a Args) Float(i int) (float64, error) {
	v, err := a.Raw(i)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: arg %d is %T, want number", ErrArgType, i, v)
	}
	return f, nil
}

// Int returns argument i as int. Floats are truncated toward zero.
func (a Args) Int(i int) (int, error) {
	f, err := a.Float(i)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// String returns argument i as a string.
func (a Args) String(i int) (string, error) {
	v, err := a.Raw(i)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: arg %d is %T, want string", ErrArgType, i, v)
	}
	return s, nil
}

// Bool returns argument i as a bool. Numbers are truthy when non-zero.
func (a Args) Bool(i int) (bool, error) {
	v, err := a.Raw(i)
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case nil:
		return false, nil
	}
	if f, ok := toFloat(v); ok {
		return f != 0, nil
	}
	return false, fmt.Errorf("%w: arg %d is %T, want bool", ErrArgType, i, v)
}

// Map returns argument i as a string-keyed map. A nil argument yields an empty map.
func (a Args) Map(i int) (map[string]any, error) {
	v, err := a.Raw(i)
	if err != nil {
		return nil, err
	}
	switch m := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: arg %d has %T key", ErrArgType, i, k)
			}
			out[ks] = val
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: arg %d is %T, want map", ErrArgType, i, v)
}

// Floats reads n consecutive numbers starting at index from.
func (a Args) Floats(from, n int) ([]float64, error) {
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		f, err := a.Float(from + k)
		if err != nil {
			return nil, err
		}
		out[k] = f
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
