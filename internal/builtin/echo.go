package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/quietloop/posh/internal/state"
)

func init() {
	Register(&Command{Name: "echo", Run: echo})
}

// echo writes its argv tail joined by single spaces plus a trailing
// newline, verbatim — no -n, no escape processing.
func echo(_ context.Context, _ *state.State, env *Env, args []string) error {
	fmt.Fprintln(env.Stdout, strings.Join(args, " "))
	return nil
}
