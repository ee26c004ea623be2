package mython

import "fmt"

// ownership tags the three ways an ObjectHandle can relate to its payload.
type ownership byte

const (
	ownedHandle ownership = iota
	sharedHandle
	emptyHandle
)

// ObjectHandle is the uniform reference-to-a-value type used everywhere a
// Mython expression or closure slot needs to hold a Value. It distinguishes
// three cases the evaluator cares about:
//
//   - Owned: this handle is the one responsible for the value's lifetime in
//     the original ownership model (a freshly computed expression result).
//   - Shared: a borrowed alias, e.g. the "self" binding passed into a method
//     call. The callee must never assume it owns the payload.
//   - Empty: carries no value at all. An empty handle is distinct from a
//     handle holding NoneValue{}, even though both print as "None".
//
// Go's garbage collector reclaims the underlying Value once no handle
// references it, so ObjectHandle does not refcount; it exists to preserve
// the owned/shared/empty distinction the evaluator's semantics depend on
// (self-binding must never look owning, NewInstance's result must be
// distinguishable from a bare field lookup that happened to come back
// empty).
type ObjectHandle struct {
	value Value
	kind  ownership
}

// NewHandle wraps v as an owned handle.
func NewHandle(v Value) ObjectHandle {
	return ObjectHandle{value: v, kind: ownedHandle}
}

// Share wraps v as a non-owning alias.
func Share(v Value) ObjectHandle {
	return ObjectHandle{value: v, kind: sharedHandle}
}

// EmptyHandle returns a handle carrying no value.
func EmptyHandle() ObjectHandle {
	return ObjectHandle{kind: emptyHandle}
}

// IsEmpty reports whether h carries no value.
func (h ObjectHandle) IsEmpty() bool {
	return h.kind == emptyHandle
}

// Value returns the wrapped Value, or nil if h is empty.
func (h ObjectHandle) Value() Value {
	if h.kind == emptyHandle {
		return nil
	}
	return h.value
}

// As attempts to view h's payload as T, mirroring the original's TryAs<T>.
func As[T Value](h ObjectHandle) (T, bool) {
	var zero T
	if h.kind == emptyHandle {
		return zero, false
	}
	v, ok := h.value.(T)
	return v, ok
}

func (h ObjectHandle) String() string {
	if h.kind == emptyHandle {
		return "None"
	}
	return fmt.Sprintf("%v", h.value)
}
