package proc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	status Status
	stdout string
	stderr string
	err    error
}

func (s stubRunner) Start(context.Context, Command) (Process, error) {
	return nil, errors.New("not used")
}

func (s stubRunner) Run(_ context.Context, c Command) (Status, error) {
	if s.err != nil {
		return Status{}, s.err
	}
	_, _ = io.WriteString(c.Stdout, s.stdout)
	_, _ = io.WriteString(c.Stderr, s.stderr)
	return s.status, nil
}

func TestStatus_ExitCode(t *testing.T) {
	require.Equal(t, 0, Status{Code: 0, Exited: true}.ExitCode())
	require.Equal(t, 3, Status{Code: 3, Exited: true}.ExitCode())
	require.Equal(t, FallbackExitCode, Status{}.ExitCode())
	require.True(t, Status{Exited: true}.Success())
	require.False(t, Status{}.Success())
}

func TestOutput_Success(t *testing.T) {
	out, err := Output(context.Background(), stubRunner{status: Status{Exited: true}, stdout: "x86_64\n"}, Command{Name: "rustc"})
	require.NoError(t, err)
	require.Equal(t, "x86_64\n", string(out))
}

func TestOutput_FailureIncludesStderr(t *testing.T) {
	r := stubRunner{status: Status{Code: 1, Exited: true}, stderr: "error: unknown target\n"}
	_, err := Output(context.Background(), r, Command{Name: "rustc", Args: []string{"--print", "cfg"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown target")
	require.Contains(t, err.Error(), "exit status 1")
}

func TestOutput_SpawnError(t *testing.T) {
	_, err := Output(context.Background(), stubRunner{err: errors.New("no such file")}, Command{Name: "rustc"})
	require.ErrorContains(t, err, "run rustc")
}

func TestCommand_String(t *testing.T) {
	c := Command{Name: "cargo", Args: []string{"build", "--features", "a b"}}
	require.Equal(t, `cargo build --features "a b"`, c.String())

	c.Dir = "/tmp/x"
	require.True(t, strings.HasPrefix(c.String(), "(cd /tmp/x && "))
}

func TestExecRunner_Output(t *testing.T) {
	if _, err := Output(context.Background(), NewExecRunner(), Command{Name: "true"}); err != nil {
		t.Skipf("true not available: %v", err)
	}
	var buf bytes.Buffer
	status, err := NewExecRunner().Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo hi; exit 3"}, Stdout: &buf})
	require.NoError(t, err)
	require.Equal(t, Status{Code: 3, Exited: true}, status)
	require.Equal(t, "hi\n", buf.String())
}
