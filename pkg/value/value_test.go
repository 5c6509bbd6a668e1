package value

import (
	"errors"
	"testing"
)

func TestScalar(t *testing.T) {
	a := Of(42)
	if a.Get() != 42 {
		t.Errorf("Get() = %d, want 42", a.Get())
	}
	if !a.Equal(Of(42)) {
		t.Error("equal scalars should compare equal")
	}
	if a.Equal(Of(43)) {
		t.Error("different scalars should not compare equal")
	}
	if a.Equal(Of("42")) {
		t.Error("scalars of different types should not compare equal")
	}
	if !a.Clone().Equal(a) {
		t.Error("Clone should be equal")
	}
}

func TestEqualNil(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"both nil", nil, nil, true},
		{"left nil", nil, Of(1), false},
		{"right nil", Of(1), nil, false},
		{"equal", Of(1), Of(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCopyAndFreezeNil(t *testing.T) {
	if Copy(nil) != nil {
		t.Error("Copy(nil) should be nil")
	}
	if Freeze(nil) != nil {
		t.Error("Freeze(nil) should be nil")
	}
	if Snapshot(nil) != nil {
		t.Error("Snapshot(nil) should be nil")
	}
}

func TestListDeepClone(t *testing.T) {
	inner := NewList(Of(1))
	outer := NewList(inner, Of("x"))

	clone := outer.Clone().(*List)
	if !clone.Equal(outer) {
		t.Fatal("clone should equal original")
	}

	if err := clone.At(0).(*List).Append(Of(2)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if inner.Len() != 1 {
		t.Errorf("mutating the clone's inner list changed the original: len = %d", inner.Len())
	}
	if clone.Equal(outer) {
		t.Error("clone should differ after mutation")
	}
}

func TestListFreezeIsDeep(t *testing.T) {
	inner := NewList()
	outer := NewList(inner)

	outer.Freeze()

	if !outer.Frozen() || !inner.Frozen() {
		t.Fatal("Freeze should reach nested lists")
	}
	if err := outer.Append(Of(1)); !errors.Is(err, ErrFrozen) {
		t.Errorf("Append on frozen list = %v, want ErrFrozen", err)
	}
	if err := inner.Append(Of(1)); !errors.Is(err, ErrFrozen) {
		t.Errorf("Append on frozen inner list = %v, want ErrFrozen", err)
	}
	if outer.Len() != 1 {
		t.Errorf("reads should still work, Len() = %d", outer.Len())
	}
}

func TestSnapshotLeavesSourceMutable(t *testing.T) {
	src := NewList(Of(1))
	snap := Snapshot(src).(*List)

	if !snap.Frozen() {
		t.Error("snapshot should be frozen")
	}
	if src.Frozen() {
		t.Error("source should stay mutable")
	}
	if err := src.Append(Of(2)); err != nil {
		t.Errorf("Append on source: %v", err)
	}
	if snap.Len() != 1 {
		t.Errorf("snapshot changed with source: len = %d", snap.Len())
	}
}

func TestItemsIsACopy(t *testing.T) {
	l := NewList(Of(1), Of(2))
	items := l.Items()
	items[0] = Of(99)
	if !l.At(0).Equal(Of(1)) {
		t.Error("modifying Items() result should not affect the list")
	}
}

func TestRecord(t *testing.T) {
	r := NewRecord()
	if err := r.Set("b", Of(2)); err != nil {
		t.Fatal(err)
	}
	if err := r.Set("a", NewList(Of(1))); err != nil {
		t.Fatal(err)
	}

	if got := r.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Keys() = %v, want [a b]", got)
	}

	clone := r.Clone().(*Record)
	if !clone.Equal(r) {
		t.Fatal("clone should equal original")
	}

	v, _ := clone.Get("a")
	_ = v.(*List).Append(Of(2))
	if orig, _ := r.Get("a"); orig.(*List).Len() != 1 {
		t.Error("mutating a cloned field changed the original")
	}

	r.Freeze()
	if err := r.Set("c", Of(3)); !errors.Is(err, ErrFrozen) {
		t.Errorf("Set on frozen record = %v, want ErrFrozen", err)
	}
	if v, _ := r.Get("a"); !v.(*List).Frozen() {
		t.Error("Freeze should reach record fields")
	}
}

func TestRecordEqualDifferentKeys(t *testing.T) {
	a := NewRecord()
	_ = a.Set("x", Of(1))
	b := NewRecord()
	_ = b.Set("y", Of(1))
	if a.Equal(b) {
		t.Error("records with different keys should not be equal")
	}
	if a.Equal(NewList()) {
		t.Error("record should not equal a list")
	}
}
