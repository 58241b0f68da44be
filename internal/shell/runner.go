package shell

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/quietloop/posh/internal/builtin"
	"github.com/quietloop/posh/internal/pathresolver"
	"github.com/quietloop/posh/internal/state"
)

// Runner executes a parsed Pipeline against the shell's process state,
// wiring os.Pipe() ends between stages the way a real shell wires the
// read and write ends of a pipe between forked children.
type Runner struct {
	Executor Executor
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// NewRunner builds a Runner bound to the real OS environment.
func NewRunner(stdin io.Reader, stdout, stderr io.Writer) *Runner {
	return &Runner{
		Executor: &DefaultExecutor{LookupFunc: func(name string) (string, bool) {
			return pathresolver.Lookup(name, os.Getenv("PATH"))
		}},
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Run executes every segment of the pipeline, wiring each stage's stdout
// to the next stage's stdin. It returns the terminal stage's exit code;
// a segment that fails to resolve (neither a built-in nor found on PATH)
// reports "command not found" to stderr and yields exit code 127; an
// external command that resolves but cannot be started has the OS error
// reported to stderr and yields exit code 1.
func (r *Runner) Run(ctx context.Context, st *state.State, p *Pipeline) int {
	if p == nil || len(p.Segments) == 0 {
		return 0
	}

	n := len(p.Segments)
	stdins := make([]io.Reader, n)
	stdouts := make([]io.Writer, n)
	stderrs := make([]io.Writer, n)

	stdins[0] = r.Stdin
	stdouts[n-1] = r.Stdout
	for i := 0; i < n; i++ {
		stderrs[i] = r.Stderr
	}

	pipeWriters := make([]*os.File, n) // pipeWriters[i] is stage i's implicit pipe-write end, if any
	var pipeClosers []io.Closer
	for i := 0; i < n-1; i++ {
		pr, pw, err := os.Pipe()
		if err != nil {
			fmt.Fprintf(r.Stderr, "posh: pipe: %v\n", err)
			return 1
		}
		stdouts[i] = pw
		stdins[i+1] = pr
		pipeWriters[i] = pw
		pipeClosers = append(pipeClosers, pr, pw)
	}
	defer func() {
		for _, c := range pipeClosers {
			c.Close()
		}
	}()

	// Explicit per-segment redirection always wins over the implicit
	// pipe connection set up above, including on a non-terminal stage. A
	// redirected stage's original pipe-write end is closed immediately
	// (rather than left open until Run returns) so the next stage's read
	// sees EOF instead of blocking on a pipe nothing will ever write to.
	var fileClosers []io.Closer
	for i, seg := range p.Segments {
		if seg.OutputFile != "" {
			f, err := openOutputFile(seg.OutputFile, seg.AppendOutput)
			if err != nil {
				closeAll(fileClosers)
				fmt.Fprintf(r.Stderr, "posh: %s: %v\n", seg.OutputFile, err)
				return 1
			}
			stdouts[i] = f
			fileClosers = append(fileClosers, f)
			if pipeWriters[i] != nil {
				pipeWriters[i].Close()
			}
		}
		if seg.ErrorFile != "" {
			f, err := openOutputFile(seg.ErrorFile, seg.AppendError)
			if err != nil {
				closeAll(fileClosers)
				fmt.Fprintf(r.Stderr, "posh: %s: %v\n", seg.ErrorFile, err)
				return 1
			}
			stderrs[i] = f
			fileClosers = append(fileClosers, f)
		}
	}
	defer closeAll(fileClosers)

	type result struct {
		code int
	}
	results := make([]result, n)
	done := make(chan int, n)

	for i := 0; i < n; i++ {
		seg := p.Segments[i]
		env := IOBindings{Stdin: stdins[i], Stdout: stdouts[i], Stderr: stderrs[i]}
		isTerminal := i == n-1

		if cmd, ok := builtin.Get(seg.CommandName); ok {
			// A built-in runs in its own goroutine rather than a forked
			// child, so it gets a private clone of the shell state: cd
			// and exit inside a non-terminal stage must not affect the
			// real shell, mirroring the isolation a forked child's
			// address space gives for free.
			stageState := st
			if !isTerminal {
				stageState = st.Clone()
			}
			go func(idx int, stageState *state.State) {
				defer closeStageWriter(stdouts[idx], n, idx)
				code := 0
				if err := cmd.Run(ctx, stageState, &builtin.Env{Stdin: env.Stdin, Stdout: env.Stdout, Stderr: env.Stderr}, seg.Args); err != nil {
					fmt.Fprintf(r.Stderr, "posh: %s: %v\n", seg.CommandName, err)
					code = 1
				}
				if isTerminal {
					*st = *stageState
				}
				results[idx] = result{code: code}
				done <- idx
			}(i, stageState)
			continue
		}

		go func(idx int) {
			defer closeStageWriter(stdouts[idx], n, idx)
			code, err := r.Executor.Execute(ctx, seg.CommandName, seg.Args, env)
			if err == ErrNotFound {
				fmt.Fprintf(r.Stderr, "%s: command not found\n", seg.CommandName)
				code = 127
			} else if err != nil {
				fmt.Fprintf(r.Stderr, "posh: %s: %v\n", seg.CommandName, err)
				code = 1
			}
			results[idx] = result{code: code}
			done <- idx
		}(i)
	}

	for i := 0; i < n; i++ {
		<-done
	}

	return results[n-1].code
}

// closeStageWriter closes a non-terminal stage's pipe-write end once the
// stage finishes, so the downstream reader observes EOF.
func closeStageWriter(w io.Writer, n, idx int) {
	if idx == n-1 {
		return
	}
	if c, ok := w.(io.Closer); ok {
		c.Close()
	}
}

func openOutputFile(path string, appendMode bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(path, flags, 0644)
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}
