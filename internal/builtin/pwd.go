package builtin

import (
	"context"
	"fmt"

	"github.com/quietloop/posh/internal/state"
)

func init() {
	Register(&Command{Name: "pwd", Run: pwd})
}

// pwd writes the shell's current working directory, newline-terminated.
// It reads st.Cwd rather than calling os.Getwd itself, so it never races a
// concurrent pipeline stage's cd.
func pwd(_ context.Context, st *state.State, env *Env, _ []string) error {
	fmt.Fprintln(env.Stdout, st.Cwd)
	return nil
}
