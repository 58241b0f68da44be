package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/quietloop/posh/internal/buildinfo"
	"github.com/quietloop/posh/internal/config"
	"github.com/quietloop/posh/internal/shell"
	"github.com/quietloop/posh/internal/state"
	"github.com/quietloop/posh/internal/ui"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the testable entry point: it never touches os.Exit or the
// package-level os.Stdin/Stdout/Stderr directly, so tests can drive it
// against fakes.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "posh: %v\n", err)
		cfg = config.Default()
	}

	rootCmd := newRootCmd(cfg, stdin, stdout, stderr)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "posh: %v\n", err)
		return 1
	}
	return exitCode
}

// exitCode is set by runShell once the REPL stops; cobra's RunE only
// reports errors, not the shell's own exit status.
var exitCode int

func newRootCmd(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var inline string

	rootCmd := &cobra.Command{
		Use:           "posh",
		Short:         "A small interactive POSIX-style shell",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inline != "" {
				return runInline(inline, stdin, stdout, stderr)
			}
			return runShell(cfg, stdin, stdout, stderr)
		},
	}

	rootCmd.Flags().StringVarP(&inline, "command", "c", "", "run a single command line instead of starting the REPL")
	rootCmd.Version = buildinfo.Version
	rootCmd.SetVersionTemplate(ui.VersionBanner(cfg.Prompt) + "\n")

	return rootCmd
}

func runShell(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	historyFile, _ := config.HistoryPath()

	st := state.New(cfg.HistorySize)
	repl, err := shell.New(stdin, stdout, stderr, st, historyFile, cfg.Prompt)
	if err != nil {
		return err
	}
	exitCode = repl.Run(context.Background())
	return nil
}

// runInline executes a single command line passed via -c and exits
// without entering the interactive loop.
func runInline(line string, stdin io.Reader, stdout, stderr io.Writer) error {
	st := state.New(config.DefaultHistorySize)
	runner := shell.NewRunner(stdin, stdout, stderr)

	pipeline, err := shell.ParsePipeline(line)
	if err != nil {
		fmt.Fprintf(stderr, "posh: %v\n", err)
		exitCode = 2
		return nil
	}
	exitCode = runner.Run(context.Background(), st, pipeline)
	return nil
}
