package main

import (
	"fmt"
	"io"

	"github.com/mythonlang/mython"
	"github.com/mythonlang/mython/internal/diagnostic"
)

// dumpTokensForFile lexes src and writes one line per token to out. It is
// the `mython tokens` subcommand's entire job: unlike `--dump-tokens` on
// `run`/`repl`, it never parses or executes, so a source file with a
// parse error still shows its full token stream.
func dumpTokensForFile(src string, out io.Writer, report *diagnostic.Reporter) bool {
	tokens, err := mython.Tokenize(src)
	if err != nil {
		report.Report("lex", err)
		return false
	}
	for _, tok := range tokens {
		fmt.Fprintln(out, tok)
	}
	return true
}
