package builtin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/quietloop/posh/internal/state"
	"github.com/spf13/pflag"
)

func init() {
	Register(&Command{Name: "history", Run: history})
}

// history lists submitted lines as "<n> <line>", 1-indexed from the start
// of the in-memory buffer. An optional numeric argument limits the listing
// to the last N entries; -c clears the buffer instead of listing it.
func history(_ context.Context, st *state.State, env *Env, args []string) error {
	flags := pflag.NewFlagSet("history", pflag.ContinueOnError)
	flags.SetOutput(env.Stderr)
	clear := flags.BoolP("clear", "c", false, "clear the history buffer")
	if err := flags.Parse(args); err != nil {
		return nil
	}

	if *clear {
		st.ClearHistory()
		return nil
	}

	entries := st.History
	rest := flags.Args()
	if len(rest) > 0 {
		n, err := strconv.Atoi(rest[0])
		if err != nil || n < 0 {
			fmt.Fprintf(env.Stderr, "history: %s: numeric argument required\n", rest[0])
			return nil
		}
		if n < len(entries) {
			entries = entries[len(entries)-n:]
		}
	}

	offset := len(st.History) - len(entries) + 1
	for i, line := range entries {
		fmt.Fprintf(env.Stdout, "%d %s\n", offset+i, line)
	}
	return nil
}
