// Package state holds the shell-process state that survives across REPL
// iterations: command history, the exit signal built-ins use to unwind
// the REPL loop, and a mirror of the process's working directory.
package state

import "os"

// State is a shell process's mutable, REPL-lifetime state.
type State struct {
	// History holds every non-blank line submitted, in submission order,
	// oldest first. 1-indexed by callers (history's first entry is "1").
	History []string

	// HistoryLimit bounds History's length; zero means unbounded.
	HistoryLimit int

	// Exiting is set by the exit builtin; the REPL driver checks it after
	// every pipeline run and stops the loop.
	Exiting  bool
	ExitCode int

	// Cwd mirrors the process's current working directory. cd keeps it in
	// sync whenever it actually calls os.Chdir; pwd reads it instead of
	// calling os.Getwd itself so it never races a concurrent pipeline
	// stage's chdir.
	Cwd string

	// Virtual marks a Clone handed to a non-terminal pipeline stage: cd
	// only updates Cwd on a Virtual state and never touches the real OS
	// process, mirroring how a forked child's cd never outlives the child
	// (spec.md §4.G: "cd inside a pipeline has no effect on the parent
	// shell").
	Virtual bool
}

func New(historyLimit int) *State {
	cwd, _ := os.Getwd()
	return &State{HistoryLimit: historyLimit, Cwd: cwd}
}

// AddHistory appends a submitted line, trimming the oldest entries once
// HistoryLimit is exceeded.
func (s *State) AddHistory(line string) {
	s.History = append(s.History, line)
	if s.HistoryLimit > 0 && len(s.History) > s.HistoryLimit {
		s.History = s.History[len(s.History)-s.HistoryLimit:]
	}
}

// ClearHistory empties the history buffer (backs the history -c flag).
func (s *State) ClearHistory() {
	s.History = nil
}

// Clone returns a deep-enough copy for a non-terminal pipeline stage to
// mutate without affecting the real shell state — the Go stand-in for the
// copy-on-write address space a forked child gets for free, so exit and cd
// run inside a pipeline stage leave the parent shell untouched.
func (s *State) Clone() *State {
	clone := &State{
		HistoryLimit: s.HistoryLimit,
		Exiting:      s.Exiting,
		ExitCode:     s.ExitCode,
		Cwd:          s.Cwd,
		Virtual:      true,
	}
	clone.History = append([]string(nil), s.History...)
	return clone
}
