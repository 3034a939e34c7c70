package modules

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadArgs marks a missing or mistyped argument. The dispatcher maps it to
// a dedicated user-facing message.
var ErrBadArgs = errors.New("missing or invalid arguments")

// Args is the loosely typed argument map parsed from an intent. Values come
// straight from JSON, so numbers are float64 underneath.
type Args map[string]any

// String returns a required string argument.
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrBadArgs, key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %q must be a non-empty string", ErrBadArgs, key)
	}
	return s, nil
}

// StringOr returns an optional string argument with a fallback.
func (a Args) StringOr(key, fallback string) string {
	if s, ok := a[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// Int returns a required integer argument.
func (a Args) Int(key string) (int, error) {
	v, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadArgs, key)
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %q must be an integer", ErrBadArgs, key)
		}
		return int(n), nil
	case int:
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q must be a number", ErrBadArgs, key)
}

// IntOr returns an optional integer argument with a fallback.
func (a Args) IntOr(key string, fallback int) int {
	n, err := a.Int(key)
	if err != nil {
		return fallback
	}
	return n
}

// Float returns a required float argument.
func (a Args) Float(key string) (float64, error) {
	v, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadArgs, key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: %q must be a number", ErrBadArgs, key)
}

// Bool returns an optional boolean argument, false when absent.
func (a Args) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// Strings returns an optional list-of-strings argument, nil when absent.
func (a Args) Strings(key string) []string {
	raw, ok := a[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Has reports plain key presence.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}
