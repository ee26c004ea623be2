package mython

import (
	"io"
	"strings"
)

// stringify renders h exactly as Print would, into a private buffer
// rather than the shared output sink — the implementation behind the
// Stringify AST node (spec.md §4.4) and the invariant in spec.md §8.4
// that Stringify(v) followed by printing that string equals printing v
// directly.
func stringify(h ObjectHandle, ctx *Context) (string, error) {
	var sb strings.Builder
	if err := printHandle(&sb, h, ctx); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func printHandle(w io.Writer, h ObjectHandle, ctx *Context) error {
	v := h.Value()
	if v == nil {
		_, err := io.WriteString(w, "None")
		return err
	}
	return v.Print(w, ctx)
}
