package mython

// Equal implements spec.md §4.1's equality rule: same-typed Number/String/
// Bool compare by payload, a ClassInstance with a unary __eq__ dispatches
// to it, two empty/None handles are equal, anything else is a TypeError.
func Equal(lhs, rhs ObjectHandle, ctx *Context) (bool, error) {
	if l, ok := As[Number](lhs); ok {
		if r, ok := As[Number](rhs); ok {
			return l == r, nil
		}
	}
	if l, ok := As[String](lhs); ok {
		if r, ok := As[String](rhs); ok {
			return l == r, nil
		}
	}
	if l, ok := As[Bool](lhs); ok {
		if r, ok := As[Bool](rhs); ok {
			return l == r, nil
		}
	}
	if inst, ok := As[*Instance](lhs); ok && inst.HasMethod("__eq__", 1) {
		result, err := inst.Call("__eq__", []ObjectHandle{rhs}, ctx)
		if err != nil {
			return false, err
		}
		return IsTrue(result), nil
	}
	if lhs.IsEmpty() && rhs.IsEmpty() {
		return true, nil
	}
	if isNone(lhs) && isNone(rhs) {
		return true, nil
	}
	return false, &TypeError{Msg: "cannot compare objects for equality"}
}

// Less implements spec.md §4.1's ordering rule. There is no None fallback
// here: mismatched or unsupported types always fail.
func Less(lhs, rhs ObjectHandle, ctx *Context) (bool, error) {
	if l, ok := As[Number](lhs); ok {
		if r, ok := As[Number](rhs); ok {
			return l < r, nil
		}
	}
	if l, ok := As[String](lhs); ok {
		if r, ok := As[String](rhs); ok {
			return l < r, nil
		}
	}
	if l, ok := As[Bool](lhs); ok {
		if r, ok := As[Bool](rhs); ok {
			return !bool(l) && bool(r), nil
		}
	}
	if inst, ok := As[*Instance](lhs); ok && inst.HasMethod("__lt__", 1) {
		result, err := inst.Call("__lt__", []ObjectHandle{rhs}, ctx)
		if err != nil {
			return false, err
		}
		return IsTrue(result), nil
	}
	return false, &TypeError{Msg: "cannot compare objects for order"}
}

// NotEqual, Greater, LessOrEqual, and GreaterOrEqual are derived from
// Equal and Less per spec.md §4.1 — they are never re-dispatched into
// user code, even when the operands are class instances.
func NotEqual(lhs, rhs ObjectHandle, ctx *Context) (bool, error) {
	eq, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

func Greater(lhs, rhs ObjectHandle, ctx *Context) (bool, error) {
	lt, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	eq, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !lt && !eq, nil
}

func LessOrEqual(lhs, rhs ObjectHandle, ctx *Context) (bool, error) {
	gt, err := Greater(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !gt, nil
}

func GreaterOrEqual(lhs, rhs ObjectHandle, ctx *Context) (bool, error) {
	lt, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !lt, nil
}

func isNone(h ObjectHandle) bool {
	_, ok := As[NoneValue](h)
	return ok
}
