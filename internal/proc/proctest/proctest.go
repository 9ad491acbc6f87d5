// Package proctest provides a scripted proc.Runner for tests.
package proctest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"git.home.luguber.info/inful/cargo-binutils/internal/proc"
)

// Response is what a scripted command produces.
type Response struct {
	Stdout string
	Stderr string
	Status proc.Status
	// StartErr simulates a spawn failure.
	StartErr error
}

// Exit returns a response that exits normally with code and stdout.
func Exit(code int, stdout string) Response {
	return Response{Stdout: stdout, Status: proc.Status{Code: code, Exited: true}}
}

// Signaled returns a response for a child killed without an exit code.
func Signaled(stdout string) Response {
	return Response{Stdout: stdout, Status: proc.Status{Exited: false}}
}

type script struct {
	prefix []string
	resp   Response
}

// Runner replays responses for commands whose name and leading arguments
// match a registered prefix. The first matching script wins.
type Runner struct {
	mu      sync.Mutex
	scripts []script
	calls   []proc.Command
}

// New returns an empty Runner.
func New() *Runner { return &Runner{} }

// On registers resp for commands starting with name followed by args.
func (r *Runner) On(resp Response, name string, args ...string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, script{prefix: append([]string{name}, args...), resp: resp})
	return r
}

// Calls returns every command seen so far, in order.
func (r *Runner) Calls() []proc.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]proc.Command, len(r.calls))
	copy(out, r.calls)
	return out
}

// LastCall returns the most recent command whose name is name.
func (r *Runner) LastCall(name string) (proc.Command, bool) {
	calls := r.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Name == name {
			return calls[i], true
		}
	}
	return proc.Command{}, false
}

func (r *Runner) lookup(cmd proc.Command) (Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmd)
	argv := append([]string{cmd.Name}, cmd.Args...)
	for _, s := range r.scripts {
		if hasPrefix(argv, s.prefix) {
			return s.resp, nil
		}
	}
	return Response{}, fmt.Errorf("proctest: no script for %q", strings.Join(argv, " "))
}

func hasPrefix(argv, prefix []string) bool {
	if len(prefix) > len(argv) {
		return false
	}
	for i := range prefix {
		if argv[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Start implements proc.Runner.
func (r *Runner) Start(_ context.Context, cmd proc.Command) (proc.Process, error) {
	resp, err := r.lookup(cmd)
	if err != nil {
		return nil, err
	}
	if resp.StartErr != nil {
		return nil, resp.StartErr
	}
	if resp.Stderr != "" && cmd.Stderr != nil {
		_, _ = io.WriteString(cmd.Stderr, resp.Stderr)
	}
	return &process{stdout: strings.NewReader(resp.Stdout), status: resp.Status}, nil
}

// Run implements proc.Runner.
func (r *Runner) Run(_ context.Context, cmd proc.Command) (proc.Status, error) {
	resp, err := r.lookup(cmd)
	if err != nil {
		return proc.Status{}, err
	}
	if resp.StartErr != nil {
		return proc.Status{}, resp.StartErr
	}
	if cmd.Stdout != nil {
		_, _ = io.WriteString(cmd.Stdout, resp.Stdout)
	}
	if cmd.Stderr != nil {
		_, _ = io.WriteString(cmd.Stderr, resp.Stderr)
	}
	return resp.Status, nil
}

type process struct {
	stdout *strings.Reader
	status proc.Status
	killed bool
}

func (p *process) Stdout() io.Reader { return p.stdout }

func (p *process) Wait() (proc.Status, error) {
	if p.killed {
		return proc.Status{}, nil
	}
	return p.status, nil
}

func (p *process) Kill() error {
	p.killed = true
	return nil
}

// Lines joins lines with trailing newlines, the shape of a JSON message stream.
func Lines(lines ...string) string {
	var b bytes.Buffer
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
