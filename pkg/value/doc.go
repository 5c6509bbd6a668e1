// Package value defines the contract every value published through a plug
// must satisfy, and the deep copy / deep freeze helpers built on it.
//
// # The Contract
//
// A [Value] can compare itself structurally ([Value.Equal]), produce an
// independent deep copy ([Value.Clone]), and make itself and everything
// reachable through it immutable in place ([Value.Freeze]).
//
// Output plugs publish [Snapshot] of the producer's value: a deep copy that
// is frozen before it leaves the box. Producers keep mutating their private
// working copy; consumers read the snapshot without synchronization or take
// their own unfrozen [Copy].
//
// # Containers and Scalars
//
// [List] and [Record] recurse through their elements using the contract
// itself, never reflection. [Scalar] wraps any comparable Go value; scalars
// are immutable by construction so Freeze is a no-op.
//
//	l := value.NewList(value.Of(1), value.Of("two"))
//	snap := value.Snapshot(l)  // frozen deep copy
//	_ = snap.(*value.List).Append(value.Of(3)) // returns ErrFrozen
//
// # Concurrency
//
// Frozen values are safe for concurrent reads. Unfrozen values are not safe
// for concurrent use.
package value
