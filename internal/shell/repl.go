package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/quietloop/posh/internal/config"
	"github.com/quietloop/posh/internal/state"
	"github.com/quietloop/posh/internal/ui"
	"golang.org/x/term"
)

const prompt = "$ "

// LineReader abstracts how the REPL obtains one line of input, so the
// same driver works against an interactive terminal (with history and
// tab completion) and against a non-terminal stdin (a script or a test
// harness feeding commands through a pipe).
type LineReader interface {
	// ReadLine returns the next line and true, or ("", false) at EOF.
	ReadLine() (string, bool)
	AddHistory(line string)
	Close() error
}

// readlineLineReader wraps chzyer/readline for an interactive terminal.
type readlineLineReader struct {
	rl *readline.Instance
}

// newReadlineLineReader drives readline against the process's controlling
// terminal. readline talks to the terminal directly (raw mode, cursor
// control) rather than through an arbitrary io.Reader, so this path is
// only taken when stdin is confirmed to be a terminal.
func newReadlineLineReader(stdout io.Writer, historyFile string, completer readline.AutoCompleter, style config.PromptStyle) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		Stdout:          stdout,
		AutoComplete:    completer,
		InterruptPrompt: ui.Chrome(style, "^C"),
		EOFPrompt:       ui.Chrome(style, "exit"),
	})
	if err != nil {
		return nil, err
	}
	return &readlineLineReader{rl: rl}, nil
}

func (r *readlineLineReader) ReadLine() (string, bool) {
	line, err := r.rl.Readline()
	if err != nil {
		return "", false
	}
	return line, true
}

func (r *readlineLineReader) AddHistory(line string) {
	r.rl.SaveHistory(line)
}

func (r *readlineLineReader) Close() error {
	return r.rl.Close()
}

// scannerLineReader reads line-by-line via bufio.Scanner, for piped or
// scripted stdin where there is no terminal to drive readline's raw mode.
type scannerLineReader struct {
	scanner *bufio.Scanner
	stdout  io.Writer
	prompt  bool
}

func newScannerLineReader(stdin io.Reader, stdout io.Writer, showPrompt bool) LineReader {
	return &scannerLineReader{scanner: bufio.NewScanner(stdin), stdout: stdout, prompt: showPrompt}
}

func (s *scannerLineReader) ReadLine() (string, bool) {
	if s.prompt {
		fmt.Fprint(s.stdout, prompt)
	}
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

func (s *scannerLineReader) AddHistory(string) {}
func (s *scannerLineReader) Close() error       { return nil }

// REPL drives the read-tokenize-run loop until EOF or exit.
type REPL struct {
	Reader LineReader
	Runner *Runner
	State  *state.State
	Stderr io.Writer
}

// New builds a REPL, choosing a readline-backed reader when stdin is a
// terminal and a scanner-backed reader otherwise. stdin only needs to be
// an io.Reader; it is probed for a file descriptor to decide whether a
// terminal is actually attached, so tests can drive the REPL with an
// ordinary in-memory reader and always get the scanner path. style gates
// whether the readline-backed reader's interrupt/EOF prompts are styled.
func New(stdin io.Reader, stdout, stderr io.Writer, st *state.State, historyFile string, style config.PromptStyle) (*REPL, error) {
	runner := NewRunner(stdin, stdout, stderr)
	var reader LineReader
	if f, ok := stdin.(fileLike); ok && term.IsTerminal(int(f.Fd())) {
		r, err := newReadlineLineReader(stdout, historyFile, newCompleter(), style)
		if err != nil {
			return nil, err
		}
		reader = r
	} else {
		reader = newScannerLineReader(stdin, stdout, true)
	}
	return &REPL{Reader: reader, Runner: runner, State: st, Stderr: stderr}, nil
}

// fileLike is the subset of *os.File a reader may implement; it lets New
// detect a real terminal without requiring every stdin to be an *os.File.
type fileLike interface {
	io.Reader
	Fd() uintptr
}

// Run executes the read-eval loop until the input is exhausted or a
// built-in sets State.Exiting, returning the process exit code.
func (r *REPL) Run(ctx context.Context) int {
	defer r.Reader.Close()

	for {
		line, ok := r.Reader.ReadLine()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.Reader.AddHistory(line)
		r.State.AddHistory(line)

		pipeline, err := ParsePipeline(line)
		if err != nil {
			fmt.Fprintf(r.Stderr, "posh: %v\n", err)
			continue
		}
		if pipeline == nil {
			continue
		}

		r.Runner.Run(ctx, r.State, pipeline)
		if r.State.Exiting {
			return r.State.ExitCode
		}
	}
	return r.State.ExitCode
}
