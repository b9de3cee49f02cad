package tables

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory is the sentinel for any key that is not present in the
// reference tables.
var ErrInvalidCategory = errors.New("invalid category")

// CategoryError names the table and the offending key.
type CategoryError struct {
	Kind  string
	Value string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("%s: unknown %s %q", ErrInvalidCategory, e.Kind, e.Value)
}

func (e *CategoryError) Unwrap() error { return ErrInvalidCategory }

func invalid(kind, value string) error {
	return &CategoryError{Kind: kind, Value: value}
}

// parseName resolves s against a names slice whose index 0 is the unset value.
func parseName[T ~int](kind string, names []string, s string) (T, error) {
	for i := 1; i < len(names); i++ {
		if names[i] == s {
			return T(i), nil
		}
	}
	return 0, invalid(kind, s)
}

func nameOf[T ~int](names []string, v T) string {
	if v < 0 || int(v) >= len(names) {
		return fmt.Sprintf("invalid(%d)", int(v))
	}
	return names[v]
}
