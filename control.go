package mython

// returnSignal is the non-local-exit sentinel for the Return node
// (spec.md §4.4). It implements error purely so it can travel up through
// the same (ObjectHandle, error) return path every Execute method already
// uses — it is not an error and must never reach anything but the
// nearest enclosing MethodBody, which intercepts it with errors.As and
// unwraps the carried value.
type returnSignal struct {
	value ObjectHandle
}

func (returnSignal) Error() string {
	return "return used outside of a method body"
}
