package builtin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/quietloop/posh/internal/state"
)

func init() {
	Register(&Command{Name: "exit", Run: exit})
}

// exit sets the shell's exit flag; the REPL driver observes it and stops
// the loop. The optional argument is the exit code (default 0).
func exit(_ context.Context, st *state.State, env *Env, args []string) error {
	code := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(env.Stderr, "exit: %s: numeric argument required\n", args[0])
			n = 1
		}
		code = n
	}
	st.Exiting = true
	st.ExitCode = code
	return nil
}
