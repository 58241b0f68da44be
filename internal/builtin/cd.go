package builtin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quietloop/posh/internal/state"
)

func init() {
	Register(&Command{Name: "cd", Run: cd})
}

// cd changes the process's working directory. No argument or "~" targets
// $HOME; HOME unset is reported to stderr. Any other failure is reported
// as "cd: <arg>: <os-error>"; success is silent.
//
// Inside a non-terminal pipeline stage st is a Virtual clone: cd only
// updates st.Cwd there and never calls os.Chdir, so it can't leak past the
// stage into the real shell process.
func cd(_ context.Context, st *state.State, env *Env, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	if target == "" || target == "~" {
		home, ok := os.LookupEnv("HOME")
		if !ok || home == "" {
			fmt.Fprintln(env.Stderr, "cd: HOME not set")
			return nil
		}
		target = home
	}
	arg := target
	if !filepath.IsAbs(target) {
		target = filepath.Join(st.Cwd, target)
	}

	if st.Virtual {
		info, err := os.Stat(target)
		if err != nil {
			fmt.Fprintf(env.Stderr, "cd: %s: %s\n", arg, osErrorText(err))
			return nil
		}
		if !info.IsDir() {
			fmt.Fprintf(env.Stderr, "cd: %s: not a directory\n", arg)
			return nil
		}
		st.Cwd = target
		return nil
	}

	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(env.Stderr, "cd: %s: %s\n", arg, osErrorText(err))
		return nil
	}
	if wd, err := os.Getwd(); err == nil {
		st.Cwd = wd
	} else {
		st.Cwd = target
	}
	return nil
}

// osErrorText strips the *PathError's leading "chdir <path>: " so the
// message doesn't duplicate the argument we already printed.
func osErrorText(err error) string {
	type unwrapper interface{ Unwrap() error }
	for {
		if u, ok := err.(unwrapper); ok {
			if inner := u.Unwrap(); inner != nil {
				err = inner
				continue
			}
		}
		break
	}
	return err.Error()
}
