package mython

import (
	"fmt"
	"io"
)

// Value is the sum type every Mython runtime value implements. The set of
// variants is closed: Number, Bool, String, NoneValue, *Class, *Instance.
// Dispatch on the variant is done with type switches / type assertions
// rather than host-language polymorphism beyond the single Print method,
// matching the "tagged union with a dispatch table" guidance for the value
// layer.
type Value interface {
	// Print writes the value's textual form to w using ctx for any
	// further evaluation a __str__ dunder call might need.
	Print(w io.Writer, ctx *Context) error
}

// NoneValue is the explicit None value. It is distinct from an empty
// ObjectHandle, even though both print as "None".
type NoneValue struct{}

func (NoneValue) Print(w io.Writer, _ *Context) error {
	_, err := io.WriteString(w, "None")
	return err
}

// Number is Mython's only numeric type: a 64-bit signed integer.
type Number int64

func (n Number) Print(w io.Writer, _ *Context) error {
	_, err := fmt.Fprintf(w, "%d", int64(n))
	return err
}

// Bool is a Mython boolean, printed capitalized per spec.md §4.1.
type Bool bool

func (b Bool) Print(w io.Writer, _ *Context) error {
	if b {
		_, err := io.WriteString(w, "True")
		return err
	}
	_, err := io.WriteString(w, "False")
	return err
}

// String is Mython's UTF-8 string type. Printing writes the raw contents,
// with no surrounding quotes.
type String string

func (s String) Print(w io.Writer, _ *Context) error {
	_, err := io.WriteString(w, string(s))
	return err
}

// IsTrue implements Mython truthiness (spec.md §4.1): everything is false
// except a non-zero Number, Bool(true), and a non-empty String. An empty
// handle, NoneValue, *Class and *Instance are all falsy.
func IsTrue(h ObjectHandle) bool {
	switch v := h.Value().(type) {
	case Number:
		return v != 0
	case Bool:
		return bool(v)
	case String:
		return v != ""
	default:
		return false
	}
}
