package proc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
)

// FallbackExitCode is reported when a child terminated without an exit code
// (killed by a signal) and for internal failures.
const FallbackExitCode = 101

// Command describes one external program invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is appended to the inherited environment.
	Env []string
	// Stdout and Stderr default to the parent's streams when nil.
	// Runner.Start ignores Stdout and pipes it instead.
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command the way it would be typed in a shell.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	s := strings.Join(parts, " ")
	if c.Dir != "" {
		s = fmt.Sprintf("(cd %s && %s)", quote(c.Dir), s)
	}
	return s
}

func quote(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\"'$\\") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Status is the terminal state of a child process.
type Status struct {
	// Code is the exit code; only meaningful when Exited is true.
	Code int
	// Exited is false when the process was terminated abnormally.
	Exited bool
}

// Success reports a normal exit with code 0.
func (s Status) Success() bool { return s.Exited && s.Code == 0 }

// ExitCode maps the status onto a process exit code.
func (s Status) ExitCode() int {
	if !s.Exited {
		return FallbackExitCode
	}
	return s.Code
}

func (s Status) String() string {
	if !s.Exited {
		return "terminated abnormally"
	}
	return fmt.Sprintf("exit status %d", s.Code)
}

// Process is a started child whose stdout is consumed by the caller.
type Process interface {
	// Stdout must be read to EOF before Wait is called.
	Stdout() io.Reader
	Wait() (Status, error)
	Kill() error
}

// Runner spawns external programs.
type Runner interface {
	// Start launches cmd with stdout connected to Process.Stdout.
	Start(ctx context.Context, cmd Command) (Process, error)
	// Run runs cmd to completion. A non-zero exit is reported through
	// Status, not as an error; errors mean the process could not run.
	Run(ctx context.Context, cmd Command) (Status, error)
}

// Output runs cmd and returns its stdout. A non-success status is an error
// that includes whatever the child wrote to stderr.
func Output(ctx context.Context, r Runner, cmd Command) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	status, err := r.Run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", cmd.Name, err)
	}
	if !status.Success() {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s: %s", cmd, status)
		}
		return nil, fmt.Errorf("%s: %s: %s", cmd, status, msg)
	}
	return stdout.Bytes(), nil
}
