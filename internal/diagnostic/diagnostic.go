// Package diagnostic renders Mython errors to a terminal, styled with
// lipgloss when color is enabled and plain otherwise.
package diagnostic

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorColor = lipgloss.Color("#EF4444")
	mutedColor = lipgloss.Color("#6B7280")

	errorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// Reporter writes diagnostics to an output sink, optionally styled.
type Reporter struct {
	w     io.Writer
	color bool
}

// NewReporter builds a Reporter. color enables lipgloss styling; pass
// false for piped output or when --no-color is set.
func NewReporter(w io.Writer, color bool) *Reporter {
	return &Reporter{w: w, color: color}
}

// Report prints err prefixed with the stage it came from ("lex", "parse",
// "runtime"), bolded and colored when the Reporter has color enabled.
func (r *Reporter) Report(stage string, err error) {
	if !r.color {
		fmt.Fprintf(r.w, "%s: %v\n", stage, err)
		return
	}
	label := mutedStyle.Render(stage + ":")
	msg := errorStyle.Render(err.Error())
	fmt.Fprintf(r.w, "%s %s\n", label, msg)
}
