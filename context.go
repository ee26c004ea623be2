package mython

import "io"

// Context is the evaluation context threaded through every Execute call.
// It exposes the host-provided output sink (spec.md §6: "a host-provided
// object exposing output_stream()"); Stringify writes into a private
// buffer instead, never into this sink.
type Context struct {
	out io.Writer
}

// NewContext builds a Context that writes print output to out.
func NewContext(out io.Writer) *Context {
	return &Context{out: out}
}

// Output returns the sink Print writes to.
func (c *Context) Output() io.Writer {
	return c.out
}
