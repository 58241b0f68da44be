package builtin

import (
	"context"
	"fmt"
	"os"

	"github.com/quietloop/posh/internal/pathresolver"
	"github.com/quietloop/posh/internal/state"
)

func init() {
	Register(&Command{Name: "type", Run: typeCmd})
}

// typeCmd reports whether its single argument names a built-in, a PATH
// executable, or neither. Missing an argument is a usage error.
func typeCmd(_ context.Context, _ *state.State, env *Env, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(env.Stderr, "type: usage: type name")
		return nil
	}
	name := args[0]

	if _, ok := Get(name); ok {
		fmt.Fprintf(env.Stdout, "%s is a shell builtin\n", name)
		return nil
	}

	if path, ok := pathresolver.Lookup(name, os.Getenv("PATH")); ok {
		fmt.Fprintf(env.Stdout, "%s is %s\n", name, path)
		return nil
	}

	fmt.Fprintf(env.Stdout, "%s: not found\n", name)
	return nil
}
