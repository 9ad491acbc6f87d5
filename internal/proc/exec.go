package proc

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait blocks on I/O after the child is killed.
const waitDelay = 5 * time.Second

// ExecRunner runs commands with os/exec. Cancelling the context kills the
// child so that no orphan outlives the proxy.
type ExecRunner struct{}

// NewExecRunner returns the os/exec backed Runner.
func NewExecRunner() ExecRunner { return ExecRunner{} }

func (ExecRunner) command(ctx context.Context, c Command) *exec.Cmd {
	// #nosec G204 -- program and arguments are assembled by this tool, not a shell
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.WaitDelay = waitDelay
	return cmd
}

// Start implements Runner.
func (r ExecRunner) Start(ctx context.Context, c Command) (Process, error) {
	cmd := r.command(ctx, c)
	cmd.Stdout = nil
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd, stdout: stdout}, nil
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, c Command) (Status, error) {
	cmd := r.command(ctx, c)
	if err := cmd.Start(); err != nil {
		return Status{}, err
	}
	return statusOf(cmd.Wait())
}

type execProcess struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func (p *execProcess) Stdout() io.Reader { return p.stdout }

func (p *execProcess) Wait() (Status, error) { return statusOf(p.cmd.Wait()) }

func (p *execProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// statusOf separates "the child ran and failed" from "we could not run it".
func statusOf(err error) (Status, error) {
	if err == nil {
		return Status{Code: 0, Exited: true}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			return Status{}, nil
		}
		return Status{Code: code, Exited: true}, nil
	}
	return Status{}, err
}
