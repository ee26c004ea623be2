package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mythonlang/mython/internal/diagnostic"
)

// version is the mython CLI's own release version, surfaced through
// cobra's Version field (`mython --version`) and the `version` subcommand.
const version = "0.1.0"

func main() {
	var (
		noColor    bool
		dumpTokens bool
		dumpAST    bool
	)

	root := &cobra.Command{
		Use:     "mython",
		Short:   "Mython is a tree-walking interpreter for the Mython language",
		Version: version,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled diagnostics")
	root.PersistentFlags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream before running")
	root.PersistentFlags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before running")

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a Mython source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			report := diagnostic.NewReporter(os.Stderr, !noColor)
			ok := runSource(string(src), os.Stdout, report, dumpTokens, dumpAST)
			if !ok {
				os.Exit(70)
			}
			return nil
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := diagnostic.NewReporter(os.Stderr, !noColor)
			return runREPL(os.Stdin, os.Stdout, report, dumpTokens, dumpAST)
		},
	}

	tokensCmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the lexed token stream for a Mython source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			report := diagnostic.NewReporter(os.Stderr, !noColor)
			if !dumpTokensForFile(string(src), os.Stdout, report) {
				os.Exit(70)
			}
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the mython CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "mython version %s\n", version)
		},
	}

	root.AddCommand(runCmd, replCmd, tokensCmd, versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
