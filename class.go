package mython

import (
	"fmt"
	"io"
)

// Method is one entry in a Class's method table: a name, its formal
// parameter names, and the statement tree that forms its body.
type Method struct {
	Name         string
	FormalParams []string
	Body         Node
}

// Class is an immutable class definition: a name, its own methods (in
// declaration order), and an optional parent class. A Class is itself a
// Value (the ClassObject variant of spec.md §3) so it can be bound in a
// Closure by ClassDefinition and passed around like any other value.
type Class struct {
	Name    string
	Methods []*Method
	Parent  *Class
}

// NewClass constructs a class. parent may be nil for a root class.
func NewClass(name string, methods []*Method, parent *Class) *Class {
	return &Class{Name: name, Methods: methods, Parent: parent}
}

// GetMethod resolves name along the inheritance chain: own methods first,
// then the parent's, recursively. First match wins.
func (c *Class) GetMethod(name string) (*Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	if c.Parent != nil {
		return c.Parent.GetMethod(name)
	}
	return nil, false
}

// HasMethod reports whether name resolves to a method whose formal
// parameter list has exactly argc entries.
func (c *Class) HasMethod(name string, argc int) bool {
	m, ok := c.GetMethod(name)
	return ok && len(m.FormalParams) == argc
}

func (c *Class) Print(w io.Writer, _ *Context) error {
	_, err := fmt.Fprintf(w, "Class %s", c.Name)
	return err
}
