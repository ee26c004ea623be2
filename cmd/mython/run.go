package main

import (
	"fmt"
	"io"

	"github.com/mythonlang/mython"
	"github.com/mythonlang/mython/internal/diagnostic"
)

// runSource tokenizes, parses, and executes src in a fresh global closure,
// reporting any lex/parse/runtime error through report. It returns false
// if execution did not complete successfully, the same signal the
// teacher's run() used to decide whether to exit non-zero.
func runSource(src string, out io.Writer, report *diagnostic.Reporter, dumpTokens, dumpAST bool) bool {
	tokens, err := mython.Tokenize(src)
	if err != nil {
		report.Report("lex", err)
		return false
	}
	if dumpTokens {
		for _, tok := range tokens {
			fmt.Println(tok)
		}
	}

	root, err := mython.NewParser(tokens).ParseProgram()
	if err != nil {
		report.Report("parse", err)
		return false
	}
	if dumpAST {
		fmt.Printf("%#v\n", root)
	}

	ctx := mython.NewContext(out)
	if _, err := root.Execute(mython.NewClosure(), ctx); err != nil {
		report.Report("runtime", err)
		return false
	}
	return true
}

// execChunk tokenizes src and parses it with parser (reusing parser's
// accumulated class/function tables), then executes the result against
// closure. The REPL calls this once per block so declarations and
// variables from one block are visible in the next.
func execChunk(src string, parser *mython.Parser, closure mython.Closure, ctx *mython.Context, report *diagnostic.Reporter, dumpTokens, dumpAST bool) bool {
	tokens, err := mython.Tokenize(src)
	if err != nil {
		report.Report("lex", err)
		return false
	}
	if dumpTokens {
		for _, tok := range tokens {
			fmt.Println(tok)
		}
	}

	root, err := parser.ParseChunk(tokens)
	if err != nil {
		report.Report("parse", err)
		return false
	}
	if dumpAST {
		fmt.Printf("%#v\n", root)
	}

	if _, err := root.Execute(closure, ctx); err != nil {
		report.Report("runtime", err)
		return false
	}
	return true
}
