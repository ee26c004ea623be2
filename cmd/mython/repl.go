package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mythonlang/mython"
	"github.com/mythonlang/mython/internal/diagnostic"
)

// runREPL reads Mython source a statement-block at a time — lines
// accumulate until a blank line closes the block, since indentation-
// sensitive suites span multiple lines — and executes each block against
// a persistent global closure and a single Parser, so a class, function,
// or variable from one block is visible in the next. This is the
// interactive analogue of the teacher's runPrompt(), adapted for a
// grammar where a statement isn't always one line. The prompt is
// suppressed when stdin isn't a terminal, so piping a script into
// `mython repl` behaves like a script run.
func runREPL(in io.Reader, out io.Writer, report *diagnostic.Reporter, dumpTokens, dumpAST bool) error {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	parser := mython.NewParser(nil)
	closure := mython.NewClosure()
	ctx := mython.NewContext(out)

	scanner := bufio.NewScanner(in)
	var block strings.Builder
	for {
		if interactive {
			if block.Len() == 0 {
				fmt.Fprint(out, ">>> ")
			} else {
				fmt.Fprint(out, "... ")
			}
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			block.WriteString(line)
			block.WriteByte('\n')
			continue
		}
		if block.Len() == 0 {
			continue
		}
		execChunk(block.String(), parser, closure, ctx, report, dumpTokens, dumpAST)
		block.Reset()
	}
	if block.Len() > 0 {
		execChunk(block.String(), parser, closure, ctx, report, dumpTokens, dumpAST)
	}
	return scanner.Err()
}
