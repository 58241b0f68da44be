// Package builtin implements the shell's in-process commands: exit, echo,
// pwd, cd, type and history.
//
// Each Command is a function of (argv, stdin, stdout, stderr, shell state)
// — state is mutably borrowed only by exit and cd. A builtin is
// responsible for all of its own user-facing output, written through Env
// so that pipeline and redirection bindings are respected; Run only
// returns an error for a genuine infrastructure failure, never to report
// ordinary usage problems (those are literal messages written directly to
// Env.Stderr).
package builtin

import (
	"context"
	"io"
	"sort"

	"github.com/quietloop/posh/internal/state"
)

// Env binds a builtin's I/O to the shell's or a pipeline stage's redirection.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Command describes one built-in.
type Command struct {
	Name string
	Run  func(ctx context.Context, st *state.State, env *Env, args []string) error
}

// Registry is the set of built-in commands, keyed by name.
var Registry = make(map[string]*Command)

func Register(cmd *Command) {
	Registry[cmd.Name] = cmd
}

// Get looks up a built-in by name. The bool result doubles as built-in
// membership for the type builtin and the path resolver bypass check.
func Get(name string) (*Command, bool) {
	cmd, ok := Registry[name]
	return cmd, ok
}

// Names returns the registered built-in names, sorted, for completion and type.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
