package boxes

import (
	"math"

	apgerrors "github.com/matzehuels/apg/pkg/errors"
)

// Params are construction parameters for catalogue boxes. Values come from
// TOML or JSON documents, so numbers may arrive as int, int64 or float64.
type Params map[string]any

// Int returns an integer parameter, or def if it is absent.
func (p Params) Int(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, paramError(key, "an integer", v)
		}
		return int(n), nil
	}
	return 0, paramError(key, "an integer", v)
}

// Float returns a numeric parameter, or def if it is absent.
func (p Params) Float(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, paramError(key, "a number", v)
}

// String returns a string parameter, or def if it is absent.
func (p Params) String(key, def string) (string, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", paramError(key, "a string", v)
	}
	return s, nil
}

// Bool returns a boolean parameter, or def if it is absent.
func (p Params) Bool(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, paramError(key, "a boolean", v)
	}
	return b, nil
}

func paramError(key, want string, got any) error {
	return apgerrors.New(apgerrors.ErrCodeInvalidInput, "param %q: want %s, got %T", key, want, got)
}
