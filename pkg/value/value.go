package value

import (
	apgerrors "github.com/matzehuels/apg/pkg/errors"
)

// ErrFrozen is returned by mutating operations on a frozen value.
var ErrFrozen = apgerrors.New(apgerrors.ErrCodeFrozen, "value is frozen")

// Value is the capability set every publishable type implements.
type Value interface {
	// Equal reports structural equality with other.
	Equal(other Value) bool
	// Clone returns an independent, unfrozen deep copy.
	Clone() Value
	// Freeze makes the value and everything reachable through it immutable.
	Freeze()
}

// Copy returns a deep copy of v, or nil if v is nil.
func Copy(v Value) Value {
	if v == nil {
		return nil
	}
	return v.Clone()
}

// Freeze freezes v in place and returns it. A nil v is returned unchanged.
func Freeze(v Value) Value {
	if v != nil {
		v.Freeze()
	}
	return v
}

// Snapshot returns a frozen deep copy of v. The caller's v stays mutable.
func Snapshot(v Value) Value {
	return Freeze(Copy(v))
}

// Equal reports whether a and b are structurally equal. Two nil values are
// equal; a nil and a non-nil value are not.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
