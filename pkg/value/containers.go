package value

import (
	"maps"
	"slices"
)

// =============================================================================
// Scalar
// =============================================================================

// Scalar wraps a comparable Go value so it can travel through plugs.
// Scalars are copied by value, so Clone returns the receiver and Freeze does nothing.
type Scalar[T comparable] struct {
	v T
}

// Of wraps v as a Scalar.
func Of[T comparable](v T) Scalar[T] { return Scalar[T]{v: v} }

// Get returns the wrapped value.
func (s Scalar[T]) Get() T { return s.v }

// Equal reports whether other is a Scalar of the same type holding an equal value.
func (s Scalar[T]) Equal(other Value) bool {
	o, ok := other.(Scalar[T])
	return ok && o.v == s.v
}

// Clone returns s.
func (s Scalar[T]) Clone() Value { return s }

// Freeze is a no-op.
func (s Scalar[T]) Freeze() {}

// =============================================================================
// List
// =============================================================================

// List is an ordered sequence of values.
type List struct {
	items  []Value
	frozen bool
}

// NewList returns a list holding items. The slice is copied; the items are not.
func NewList(items ...Value) *List {
	return &List{items: slices.Clone(items)}
}

// Append adds v to the end of the list.
// Returns ErrFrozen if the list has been frozen.
func (l *List) Append(v Value) error {
	if l.frozen {
		return ErrFrozen
	}
	l.items = append(l.items, v)
	return nil
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// At returns the i-th item. It panics if i is out of range.
func (l *List) At(i int) Value { return l.items[i] }

// Items returns a copy of the item slice. The items themselves are shared.
func (l *List) Items() []Value { return slices.Clone(l.items) }

// Frozen reports whether Freeze has been called.
func (l *List) Frozen() bool { return l.frozen }

// Equal reports whether other is a List with pairwise equal items.
func (l *List) Equal(other Value) bool {
	o, ok := other.(*List)
	if !ok || len(o.items) != len(l.items) {
		return false
	}
	for i := range l.items {
		if !Equal(l.items[i], o.items[i]) {
			return false
		}
	}
	return true
}

// Clone deep-copies every item into a new, unfrozen list.
func (l *List) Clone() Value {
	out := &List{items: make([]Value, len(l.items))}
	for i, v := range l.items {
		out.items[i] = Copy(v)
	}
	return out
}

// Freeze freezes every item, then the list.
func (l *List) Freeze() {
	for _, v := range l.items {
		Freeze(v)
	}
	l.frozen = true
}

// =============================================================================
// Record
// =============================================================================

// Record is a string-keyed collection of values.
type Record struct {
	fields map[string]Value
	frozen bool
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Set stores v under key.
// Returns ErrFrozen if the record has been frozen.
func (r *Record) Set(key string, v Value) error {
	if r.frozen {
		return ErrFrozen
	}
	r.fields[key] = v
	return nil
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Keys returns the field names in sorted order.
func (r *Record) Keys() []string { return slices.Sorted(maps.Keys(r.fields)) }

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }

// Frozen reports whether Freeze has been called.
func (r *Record) Frozen() bool { return r.frozen }

// Equal reports whether other is a Record with the same keys and equal values.
func (r *Record) Equal(other Value) bool {
	o, ok := other.(*Record)
	if !ok || len(o.fields) != len(r.fields) {
		return false
	}
	for k, v := range r.fields {
		ov, ok := o.fields[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// Clone deep-copies every field into a new, unfrozen record.
func (r *Record) Clone() Value {
	out := &Record{fields: make(map[string]Value, len(r.fields))}
	for k, v := range r.fields {
		out.fields[k] = Copy(v)
	}
	return out
}

// Freeze freezes every field, then the record.
func (r *Record) Freeze() {
	for _, v := range r.fields {
		Freeze(v)
	}
	r.frozen = true
}
