package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/quietloop/posh/internal/builtin"
	"github.com/quietloop/posh/internal/shell"
	"github.com/quietloop/posh/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor satisfies shell.Executor for external-command segments
// without spawning a real OS process, so pipeline tests stay hermetic.
type fakeExecutor struct {
	run func(name string, args []string, io shell.IOBindings) (int, error)
}

func (f *fakeExecutor) Execute(_ context.Context, name string, args []string, io shell.IOBindings) (int, error) {
	return f.run(name, args, io)
}

func newRunner(t *testing.T, executor shell.Executor, stdin string) (*shell.Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	r := &shell.Runner{
		Executor: executor,
		Stdin:    strings.NewReader(stdin),
		Stdout:   &stdout,
		Stderr:   &stderr,
	}
	return r, &stdout, &stderr
}

func TestRunner_SingleBuiltin(t *testing.T) {
	r, stdout, _ := newRunner(t, &fakeExecutor{}, "")
	p, err := shell.ParsePipeline("echo hello world")
	require.NoError(t, err)

	code := r.Run(context.Background(), state.New(0), p)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello world\n", stdout.String())
}

func TestRunner_PipelineOfBuiltins(t *testing.T) {
	r, stdout, _ := newRunner(t, &fakeExecutor{}, "")
	p, err := shell.ParsePipeline("echo hi | echo there")
	require.NoError(t, err)

	code := r.Run(context.Background(), state.New(0), p)
	assert.Equal(t, 0, code)
	// echo ignores stdin entirely, so the pipeline's output is the last
	// stage's own argv, proving both stages ran to completion without
	// deadlocking on the pipe between them.
	assert.Equal(t, "there\n", stdout.String())
}

func TestRunner_ExternalCommandNotFound(t *testing.T) {
	executor := &fakeExecutor{run: func(name string, args []string, io shell.IOBindings) (int, error) {
		return -1, shell.ErrNotFound
	}}
	r, _, stderr := newRunner(t, executor, "")
	p, err := shell.ParsePipeline("doesnotexist arg")
	require.NoError(t, err)

	code := r.Run(context.Background(), state.New(0), p)
	assert.Equal(t, 127, code)
	assert.Contains(t, stderr.String(), "doesnotexist: command not found")
}

func TestRunner_ExternalCommandExitCode(t *testing.T) {
	executor := &fakeExecutor{run: func(name string, args []string, io shell.IOBindings) (int, error) {
		return 3, nil
	}}
	r, _, _ := newRunner(t, executor, "")
	p, err := shell.ParsePipeline("somecmd")
	require.NoError(t, err)

	code := r.Run(context.Background(), state.New(0), p)
	assert.Equal(t, 3, code)
}

func TestRunner_OutputRedirection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	r, _, _ := newRunner(t, &fakeExecutor{}, "")
	p, err := shell.ParsePipeline("echo redirected >" + path)
	require.NoError(t, err)

	code := r.Run(context.Background(), state.New(0), p)
	assert.Equal(t, 0, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "redirected\n", string(data))
}

func TestRunner_NonTerminalRedirectDoesNotFeedDownstream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "side.txt")

	called := false
	executor := &fakeExecutor{run: func(name string, args []string, io shell.IOBindings) (int, error) {
		called = true
		return 0, nil
	}}
	r, stdout, _ := newRunner(t, executor, "")
	p, err := shell.ParsePipeline("echo diverted >" + path + " | cat")
	require.NoError(t, err)

	code := r.Run(context.Background(), state.New(0), p)
	assert.Equal(t, 0, code)
	assert.True(t, called)
	assert.Equal(t, "", stdout.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "diverted\n", string(data))
}

func TestRunner_CdInsidePipelineDoesNotEscapeStage(t *testing.T) {
	start, err := os.Getwd()
	require.NoError(t, err)

	executor := &fakeExecutor{run: func(name string, args []string, io shell.IOBindings) (int, error) {
		return 0, nil
	}}
	r, _, _ := newRunner(t, executor, "")
	p, err := shell.ParsePipeline("cd " + os.TempDir() + " | cat")
	require.NoError(t, err)

	_ = builtin.Names() // registry must be populated via the builtin package's init()
	code := r.Run(context.Background(), state.New(0), p)
	assert.Equal(t, 0, code)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, start, after)
}

func TestRunner_EmptyPipeline(t *testing.T) {
	r, _, _ := newRunner(t, &fakeExecutor{}, "")
	code := r.Run(context.Background(), state.New(0), nil)
	assert.Equal(t, 0, code)
}

// countOpenFDs reports the process's open file descriptor count via
// /proc/self/fd, the only portable-enough way to assert that Run leaves no
// pipe end dangling in the parent.
func countOpenFDs(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)
	return len(entries)
}

func TestRunner_NoDescriptorLeakAfterPipeline(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("/proc/self/fd is Linux-specific")
	}
	before := countOpenFDs(t)

	r, _, _ := newRunner(t, &fakeExecutor{}, "")
	p, err := shell.ParsePipeline("echo hi | echo there | echo again")
	require.NoError(t, err)
	code := r.Run(context.Background(), state.New(0), p)
	assert.Equal(t, 0, code)

	after := countOpenFDs(t)
	assert.Equal(t, before, after, "Run must close every pipe fd it allocated")
}
