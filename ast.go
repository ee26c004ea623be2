package mython

import "errors"

// Node is the interface every AST node implements (spec.md §4.4): execute
// it against a Closure and a Context, getting back the handle it
// produces. Statement-like nodes that have no value return EmptyHandle().
type Node interface {
	Execute(closure Closure, ctx *Context) (ObjectHandle, error)
}

// CompareFunc is one of the six comparison primitives Comparison dispatches
// to (spec.md §4.4's "Comparison(cmp, l, r)").
type CompareFunc func(lhs, rhs ObjectHandle, ctx *Context) (bool, error)

// --- literals --------------------------------------------------------

type NumberLiteral struct{ Value int64 }

func (n NumberLiteral) Execute(Closure, *Context) (ObjectHandle, error) {
	return NewHandle(Number(n.Value)), nil
}

type StringLiteral struct{ Value string }

func (s StringLiteral) Execute(Closure, *Context) (ObjectHandle, error) {
	return NewHandle(String(s.Value)), nil
}

type BoolLiteral struct{ Value bool }

func (b BoolLiteral) Execute(Closure, *Context) (ObjectHandle, error) {
	return NewHandle(Bool(b.Value)), nil
}

type NoneLiteral struct{}

func (NoneLiteral) Execute(Closure, *Context) (ObjectHandle, error) {
	return NewHandle(NoneValue{}), nil
}

// --- variable access & assignment -------------------------------------

// VariableValue looks up DottedIDs[0] in the closure, then descends one
// field per remaining segment (spec.md §4.4). A single-element path is a
// plain local/global variable reference.
type VariableValue struct {
	DottedIDs []string
	Line      int
}

func (v VariableValue) Execute(closure Closure, _ *Context) (ObjectHandle, error) {
	h, ok := closure.Get(v.DottedIDs[0])
	if !ok {
		return EmptyHandle(), &NameError{Line: v.Line, Name: v.DottedIDs[0]}
	}
	for _, name := range v.DottedIDs[1:] {
		fielder, ok := asFielder(h)
		if !ok {
			return EmptyHandle(), &TypeError{Line: v.Line, Msg: "cannot access field " + name + " of a non-instance"}
		}
		h, ok = fielder.Get(name)
		if !ok {
			return EmptyHandle(), &NameError{Line: v.Line, Name: name}
		}
	}
	return h, nil
}

// Assignment evaluates Expr and stores the result under Name, overwriting
// or creating the binding.
type Assignment struct {
	Name string
	Expr Node
}

func (a Assignment) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	h, err := a.Expr.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	closure.Set(a.Name, h)
	return h, nil
}

// FieldAssignment evaluates Target (which must yield a ClassInstance) and
// Expr, then stores the result into the target's field closure.
type FieldAssignment struct {
	Target VariableValue
	Field  string
	Expr   Node
	Line   int
}

func (f FieldAssignment) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	targetH, err := f.Target.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	fielder, ok := asFielder(targetH)
	if !ok {
		return EmptyHandle(), &TypeError{Line: f.Line, Msg: "cannot assign field on a non-instance"}
	}
	h, err := f.Expr.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	fielder.Set(f.Field, h)
	return h, nil
}

// --- print / stringify -------------------------------------------------

// Print evaluates each argument in order and writes them to ctx's output
// sink separated by single spaces, terminated by a newline. An empty
// handle prints as "None".
type Print struct {
	Args []Node
}

func (p Print) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	out := ctx.Output()
	for i, arg := range p.Args {
		if i > 0 {
			if _, err := out.Write([]byte(" ")); err != nil {
				return EmptyHandle(), err
			}
		}
		h, err := arg.Execute(closure, ctx)
		if err != nil {
			return EmptyHandle(), err
		}
		if err := printHandle(out, h, ctx); err != nil {
			return EmptyHandle(), err
		}
	}
	_, err := out.Write([]byte("\n"))
	return EmptyHandle(), err
}

// Stringify evaluates its argument and produces a String holding exactly
// what Print would have emitted for it, with no trailing newline.
type Stringify struct {
	Arg Node
}

func (s Stringify) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	h, err := s.Arg.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	str, err := stringify(h, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	return NewHandle(String(str)), nil
}

// --- method / instance construction ------------------------------------

// MethodCall evaluates Receiver (which must be a ClassInstance), then
// each argument left to right, and dispatches through the Class/Instance
// layer.
type MethodCall struct {
	Receiver Node
	Method   string
	Args     []Node
	Line     int
}

func (m MethodCall) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	recvH, err := m.Receiver.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	inst, ok := As[*Instance](recvH)
	if !ok {
		return EmptyHandle(), &TypeError{Line: m.Line, Msg: "method call on a non-instance"}
	}
	args, err := evalArgs(m.Args, closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	return inst.Call(m.Method, args, ctx)
}

// NewInstanceNode creates a fresh instance of Class, runs __init__ if one
// matches the argument count, and returns a Shared handle on it — the
// instance's lifetime from that point on is governed by whoever holds
// that handle and any handles it gets copied into (spec.md §9).
type NewInstanceNode struct {
	Class *Class
	Args  []Node
	Line  int
}

func (n NewInstanceNode) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	inst := NewInstance(n.Class)
	args, err := evalArgs(n.Args, closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	if inst.HasMethod("__init__", len(args)) {
		if _, err := inst.Call("__init__", args, ctx); err != nil {
			return EmptyHandle(), err
		}
	}
	return Share(inst), nil
}

// ClassDefinition binds Class.Name in the closure to the class object and
// returns an empty handle.
type ClassDefinition struct {
	Class *Class
}

func (c ClassDefinition) Execute(closure Closure, _ *Context) (ObjectHandle, error) {
	closure.Set(c.Class.Name, NewHandle(c.Class))
	return EmptyHandle(), nil
}

func evalArgs(nodes []Node, closure Closure, ctx *Context) ([]ObjectHandle, error) {
	args := make([]ObjectHandle, len(nodes))
	for i, n := range nodes {
		h, err := n.Execute(closure, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = h
	}
	return args, nil
}

// --- arithmetic ---------------------------------------------------------

const addMethod = "__add__"

// Add implements spec.md §4.4's Add: numeric addition, string
// concatenation, or __add__ dispatch when the left operand is an
// instance.
type Add struct {
	L, R Node
	Line int
}

func (a Add) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	l, err := a.L.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	r, err := a.R.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	if ln, ok := As[Number](l); ok {
		if rn, ok := As[Number](r); ok {
			return NewHandle(ln + rn), nil
		}
	}
	if ls, ok := As[String](l); ok {
		if rs, ok := As[String](r); ok {
			return NewHandle(ls + rs), nil
		}
	}
	if inst, ok := As[*Instance](l); ok {
		return inst.Call(addMethod, []ObjectHandle{r}, ctx)
	}
	return EmptyHandle(), &TypeError{Line: a.Line, Msg: "unsupported operand types for +"}
}

type Sub struct {
	L, R Node
	Line int
}

func (s Sub) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	ln, rn, err := evalNumericPair(s.L, s.R, closure, ctx, s.Line, "-")
	if err != nil {
		return EmptyHandle(), err
	}
	return NewHandle(ln - rn), nil
}

type Mult struct {
	L, R Node
	Line int
}

func (m Mult) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	ln, rn, err := evalNumericPair(m.L, m.R, closure, ctx, m.Line, "*")
	if err != nil {
		return EmptyHandle(), err
	}
	return NewHandle(ln * rn), nil
}

type Div struct {
	L, R Node
	Line int
}

func (d Div) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	ln, rn, err := evalNumericPair(d.L, d.R, closure, ctx, d.Line, "/")
	if err != nil {
		return EmptyHandle(), err
	}
	if rn == 0 {
		return EmptyHandle(), &ArithmeticError{Line: d.Line}
	}
	return NewHandle(ln / rn), nil
}

func evalNumericPair(lhs, rhs Node, closure Closure, ctx *Context, line int, op string) (Number, Number, error) {
	l, err := lhs.Execute(closure, ctx)
	if err != nil {
		return 0, 0, err
	}
	r, err := rhs.Execute(closure, ctx)
	if err != nil {
		return 0, 0, err
	}
	ln, ok := As[Number](l)
	if !ok {
		return 0, 0, &TypeError{Line: line, Msg: "unsupported operand type for " + op}
	}
	rn, ok := As[Number](r)
	if !ok {
		return 0, 0, &TypeError{Line: line, Msg: "unsupported operand type for " + op}
	}
	return ln, rn, nil
}

// --- boolean logic -------------------------------------------------------

type Or struct{ L, R Node }

func (o Or) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	l, err := o.L.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	if IsTrue(l) {
		return NewHandle(Bool(true)), nil
	}
	r, err := o.R.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	return NewHandle(Bool(IsTrue(r))), nil
}

type And struct{ L, R Node }

func (a And) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	l, err := a.L.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	if !IsTrue(l) {
		return NewHandle(Bool(false)), nil
	}
	r, err := a.R.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	return NewHandle(Bool(IsTrue(r))), nil
}

type Not struct{ Arg Node }

func (n Not) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	h, err := n.Arg.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	return NewHandle(Bool(!IsTrue(h))), nil
}

// Comparison dispatches to one of the six comparison primitives and wraps
// the result in Bool.
type Comparison struct {
	Cmp  CompareFunc
	L, R Node
}

func (c Comparison) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	l, err := c.L.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	r, err := c.R.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	result, err := c.Cmp(l, r, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	return NewHandle(Bool(result)), nil
}

// --- control flow ---------------------------------------------------------

// Compound executes each statement in order and returns an empty handle.
type Compound struct {
	Stmts []Node
}

func (c Compound) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	for _, stmt := range c.Stmts {
		if _, err := stmt.Execute(closure, ctx); err != nil {
			return EmptyHandle(), err
		}
	}
	return EmptyHandle(), nil
}

// IfElse executes Then when Cond is truthy, Else otherwise (if present),
// propagating whichever branch's result.
type IfElse struct {
	Cond Node
	Then Node
	Else Node // nil if there is no else branch
}

func (i IfElse) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	cond, err := i.Cond.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	if IsTrue(cond) {
		return i.Then.Execute(closure, ctx)
	}
	if i.Else != nil {
		return i.Else.Execute(closure, ctx)
	}
	return EmptyHandle(), nil
}

// Return evaluates Expr and unwinds to the nearest enclosing MethodBody
// carrying that value (spec.md §4.4's non-local return mechanism).
type Return struct {
	Expr Node
}

func (r Return) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	h, err := r.Expr.Execute(closure, ctx)
	if err != nil {
		return EmptyHandle(), err
	}
	return EmptyHandle(), returnSignal{value: h}
}

// MethodBody executes Body, catching a Return unwind and yielding its
// carried value as the call's result. If Body completes normally, the
// result is an empty handle. This is the only place returnSignal is ever
// intercepted.
type MethodBody struct {
	Body Node
}

func (m MethodBody) Execute(closure Closure, ctx *Context) (ObjectHandle, error) {
	h, err := m.Body.Execute(closure, ctx)
	if err != nil {
		var ret returnSignal
		if errors.As(err, &ret) {
			return ret.value, nil
		}
		return EmptyHandle(), err
	}
	return h, nil
}
