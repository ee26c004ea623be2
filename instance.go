package mython

import (
	"fmt"
	"io"
)

// Instance is the ClassInstance value variant: a reference to its Class
// plus a Closure of its own fields. Instances are ordinarily reached
// through Shared handles (spec.md §5); Go's GC, not a refcount, reclaims
// one once it becomes unreachable, which tolerates the reference cycles
// spec.md §9 calls out without any extra bookkeeping.
type Instance struct {
	Class  *Class
	Fields Closure
}

// NewInstance allocates a fresh instance of cls with an empty field
// closure. It does not run __init__; callers that want constructor
// semantics use the NewInstanceNode AST node, which calls Call itself.
func NewInstance(cls *Class) *Instance {
	return &Instance{Class: cls, Fields: make(Closure)}
}

// HasMethod reports whether name resolves on this instance's class chain
// with exactly argc formal parameters.
func (inst *Instance) HasMethod(name string, argc int) bool {
	return inst.Class.HasMethod(name, argc)
}

// Call resolves name on inst's class (failing with MethodError on a miss
// or arity mismatch), builds a fresh Closure binding "self" to a Shared,
// non-owning handle on inst and each formal parameter to the
// corresponding argument, and executes the method body against it.
func (inst *Instance) Call(name string, args []ObjectHandle, ctx *Context) (ObjectHandle, error) {
	method, ok := inst.Class.GetMethod(name)
	if !ok || len(method.FormalParams) != len(args) {
		return EmptyHandle(), &MethodError{
			Class:  inst.Class.Name,
			Method: name,
			Msg:    fmt.Sprintf("no method %q with %d argument(s)", name, len(args)),
		}
	}

	frame := make(Closure, len(args)+1)
	frame["self"] = Share(inst)
	for i, param := range method.FormalParams {
		frame[param] = args[i]
	}

	return method.Body.Execute(frame, ctx)
}

// Get looks up name in inst's own field closure. Missing fields are a
// NameError, matching field-access semantics in spec.md §4.2.
func (inst *Instance) Get(name string) (ObjectHandle, bool) {
	h, ok := inst.Fields[name]
	return h, ok
}

// Set stores value under name in inst's field closure, creating the field
// if it was previously absent (spec.md §4.2 permits this).
func (inst *Instance) Set(name string, value ObjectHandle) {
	inst.Fields[name] = value
}

// Print implements Value: __str__/0 if defined, else a stable identity
// string built from the instance's address (spec.md §4.1's "implementation
// defined identity").
func (inst *Instance) Print(w io.Writer, ctx *Context) error {
	if inst.HasMethod("__str__", 0) {
		result, err := inst.Call("__str__", nil, ctx)
		if err != nil {
			return err
		}
		if v := result.Value(); v != nil {
			return v.Print(w, ctx)
		}
		_, err = io.WriteString(w, "None")
		return err
	}
	_, err := fmt.Fprintf(w, "<%s instance at %p>", inst.Class.Name, inst)
	return err
}
