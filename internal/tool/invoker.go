package tool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/cargo-binutils/internal/build"
	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
	"git.home.luguber.info/inful/cargo-binutils/internal/logfields"
	"git.home.luguber.info/inful/cargo-binutils/internal/metrics"
	"git.home.luguber.info/inful/cargo-binutils/internal/observability"
	"git.home.luguber.info/inful/cargo-binutils/internal/proc"
	"git.home.luguber.info/inful/cargo-binutils/internal/target"
)

// Invocation is one run of a tool.
type Invocation struct {
	Tool       Tool
	Descriptor *target.Descriptor
	Product    *build.Product
	// Args are passed verbatim after the tool-specific flags.
	Args []string
}

// Invoker runs LLVM tools.
type Invoker struct {
	runner   proc.Runner
	rustlib  Rustlib
	stdout   io.Writer
	stderr   io.Writer
	recorder metrics.Recorder
	logger   *slog.Logger
	echo     bool
}

// NewInvoker creates an invoker that finds tools through rl.
func NewInvoker(runner proc.Runner, rl Rustlib) *Invoker {
	return &Invoker{
		runner:   runner,
		rustlib:  rl,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithOutput sets where tool stdout and stderr go.
func (i *Invoker) WithOutput(stdout, stderr io.Writer) *Invoker {
	if stdout != nil {
		i.stdout = stdout
	}
	if stderr != nil {
		i.stderr = stderr
	}
	return i
}

// WithRecorder attaches a metrics recorder.
func (i *Invoker) WithRecorder(r metrics.Recorder) *Invoker {
	if r != nil {
		i.recorder = r
	}
	return i
}

// WithLogger sets the logger.
func (i *Invoker) WithLogger(l *slog.Logger) *Invoker {
	if l != nil {
		i.logger = l
	}
	return i
}

// WithEcho prints each command line to stderr before it runs.
func (i *Invoker) WithEcho(echo bool) *Invoker {
	i.echo = echo
	return i
}

// Command builds the tool command line for inv without running it.
func (i *Invoker) Command(ctx context.Context, inv Invocation) (proc.Command, error) {
	path, err := Path(ctx, i.rustlib, inv.Tool)
	if err != nil {
		return proc.Command{}, err
	}
	caps := inv.Tool.Capabilities()

	var args []string
	if caps.ArchAware && inv.Descriptor != nil {
		args = append(args, inv.Descriptor.DisassemblerFlags()...)
	}
	args = append(args, caps.StyleFlags...)

	cmd := proc.Command{Name: path}
	if inv.Product != nil {
		file := inv.Product.Path()
		if caps.ShortenCwd {
			cmd.Dir = filepath.Dir(file)
			file = filepath.Base(file)
		}
		args = append(args, file)
	}
	cmd.Args = append(args, inv.Args...)
	return cmd, nil
}

// Invoke runs the tool and returns the exit code to report: 0, the tool's
// own code, or 101 when it had none.
func (i *Invoker) Invoke(ctx context.Context, inv Invocation) (int, error) {
	cmd, err := i.Command(ctx, inv)
	if err != nil {
		return errors.FallbackExitCode, err
	}
	filter := inv.Tool.Capabilities().Filter

	var captured bytes.Buffer
	cmd.Stdout = i.stdout
	if filter != nil {
		cmd.Stdout = &captured
	}
	cmd.Stderr = i.stderr

	code, err := i.run(ctx, inv.Tool, cmd)
	if err != nil {
		return code, err
	}
	if filter != nil {
		if _, werr := i.stdout.Write(filter(captured.Bytes())); werr != nil {
			return errors.FallbackExitCode, errors.Wrap(werr, errors.CategoryRuntime, errors.SeverityFatal, "failed to write tool output")
		}
	}
	return code, nil
}

// Forward runs the tool with args verbatim and stdio passed through, the
// behavior of the rust-<tool> binaries.
func (i *Invoker) Forward(ctx context.Context, t Tool, args []string) (int, error) {
	path, err := Path(ctx, i.rustlib, t)
	if err != nil {
		return errors.FallbackExitCode, err
	}
	return i.run(ctx, t, proc.Command{Name: path, Args: args, Stdout: i.stdout, Stderr: i.stderr})
}

func (i *Invoker) run(ctx context.Context, t Tool, cmd proc.Command) (int, error) {
	if i.echo {
		fmt.Fprintln(i.stderr, cmd.String())
	}
	log := observability.Logger(ctx, i.logger)
	log.Debug("Running tool", logfields.Tool(t.String()), logfields.Command(cmd.String()))

	start := time.Now()
	status, err := i.runner.Run(ctx, cmd)
	i.recorder.ObserveToolDuration(t.String(), time.Since(start))
	if err != nil {
		return errors.FallbackExitCode, errors.SpawnFailed(cmd.String(), err).
			WithHint("Please ensure you have run `rustup component add llvm-tools`.")
	}

	code := 0
	if !status.Success() {
		code = status.ExitCode()
	}
	i.recorder.IncToolExit(t.String(), code)
	log.Debug("Tool finished", logfields.Tool(t.String()), logfields.ExitCode(code))
	return code, nil
}
