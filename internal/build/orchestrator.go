package build

import (
	"bufio"
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/cargo-binutils/internal/cargo"
	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
	"git.home.luguber.info/inful/cargo-binutils/internal/logfields"
	"git.home.luguber.info/inful/cargo-binutils/internal/metrics"
	"git.home.luguber.info/inful/cargo-binutils/internal/observability"
	"git.home.luguber.info/inful/cargo-binutils/internal/proc"
	"git.home.luguber.info/inful/cargo-binutils/internal/util/sets"
)

// Options are the inputs of one Build call beyond the selector.
type Options struct {
	Flags cargo.BuildFlags
	// Metadata narrows candidates to workspace members. Nil accepts every package.
	Metadata *cargo.Metadata
	// Tool is the front-end name used in ambiguity listings ("objdump").
	Tool string
	// Dir is the working directory for cargo; empty means the current one.
	Dir string
}

// Orchestrator runs `cargo build` and picks the single product to inspect.
type Orchestrator struct {
	runner      proc.Runner
	cargoPath   string
	diagnostics io.Writer
	recorder    metrics.Recorder
	logger      *slog.Logger

	mu    sync.Mutex
	state State
}

// NewOrchestrator creates an orchestrator that spawns cargo through runner.
func NewOrchestrator(runner proc.Runner) *Orchestrator {
	return &Orchestrator{
		runner:      runner,
		cargoPath:   "cargo",
		diagnostics: os.Stderr,
		recorder:    metrics.NoopRecorder{},
		logger:      slog.Default(),
	}
}

// WithCargo sets the cargo executable.
func (o *Orchestrator) WithCargo(path string) *Orchestrator {
	if path != "" {
		o.cargoPath = path
	}
	return o
}

// WithDiagnostics sets where compiler diagnostics and the echoed command go.
func (o *Orchestrator) WithDiagnostics(w io.Writer) *Orchestrator {
	if w != nil {
		o.diagnostics = w
	}
	return o
}

// WithRecorder attaches a metrics recorder.
func (o *Orchestrator) WithRecorder(r metrics.Recorder) *Orchestrator {
	if r != nil {
		o.recorder = r
	}
	return o
}

// WithLogger sets the logger used for state transitions.
func (o *Orchestrator) WithLogger(l *slog.Logger) *Orchestrator {
	if l != nil {
		o.logger = l
	}
	return o
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) transition(ctx context.Context, s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	level := slog.LevelDebug
	if s.Terminal() {
		level = slog.LevelInfo
	}
	observability.Logger(ctx, o.logger).LogAttrs(ctx, level, "Build state changed", logfields.State(s.String()))
}

// Command returns the cargo invocation Build would spawn.
func (o *Orchestrator) Command(sel Selector, opts Options) proc.Command {
	args := []string{"build", cargo.MessageFormat}
	args = append(args, opts.Flags.Args()...)
	args = append(args, sel.Args()...)
	return proc.Command{Name: o.cargoPath, Args: args, Dir: opts.Dir}
}

// RerunCommand is the plain `cargo build` line that reproduces a failed
// build with cargo's verbose output, without the JSON message format.
func (o *Orchestrator) RerunCommand(sel Selector, opts Options) string {
	flags := opts.Flags
	flags.Quiet, flags.Verbose = false, 0
	args := append([]string{"build"}, flags.Args()...)
	args = append(args, sel.Args()...)
	args = append(args, "-v")
	return proc.Command{Name: o.cargoPath, Args: args}.String()
}

// Build compiles the requested product and returns it.
//
// The message stream is consumed to the end before the exit status is
// inspected, so cargo never blocks on a full pipe.
func (o *Orchestrator) Build(ctx context.Context, sel Selector, opts Options) (*Product, error) {
	start := time.Now()
	defer func() { o.recorder.ObserveBuildDuration(time.Since(start)) }()
	o.transition(ctx, StateNotStarted)

	classifier := Classifier{Selector: sel}
	if opts.Metadata != nil {
		members, err := opts.Metadata.Members(opts.Flags.Package)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryValidation, errors.SeverityFatal, "invalid package selection").
				WithContext("package", opts.Flags.Package)
		}
		classifier.Members = members.Has
		observability.Logger(ctx, o.logger).Debug("Eligible workspace members", slog.Any("members", sets.Sorted(members)))
	}

	cmd := o.Command(sel, opts)
	if opts.Flags.Verbose > 0 {
		fmt.Fprintln(o.diagnostics, cmd.String())
	}
	log := observability.Logger(ctx, o.logger)
	log.Info("Building", logfields.Command(cmd.String()), logfields.Selector(sel.String()))

	p, err := o.runner.Start(ctx, cmd)
	if err != nil {
		o.transition(ctx, StateFailedSpawn)
		o.recorder.IncBuildOutcome(metrics.OutcomeSpawnError)
		return nil, errors.SpawnFailed(cmd.String(), fmt.Errorf("%w: %w", ErrNotStarted, err))
	}
	o.transition(ctx, StateRunning)

	show := ShowDiagnostics(opts.Flags.Quiet, opts.Flags.Verbose)
	o.transition(ctx, StateDraining)
	candidates, drainErr := o.drain(ctx, p.Stdout(), classifier, show)
	if drainErr != nil {
		_ = p.Kill()
		_, _ = p.Wait()
		o.transition(ctx, StateCompletedFailure)
		o.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		return nil, errors.Wrap(fmt.Errorf("%w: %w", ErrMalformedBuildInfo, drainErr),
			errors.CategoryBuild, errors.SeverityFatal, "failed to read the cargo build output")
	}

	status, err := p.Wait()
	if err != nil || !status.Success() {
		o.transition(ctx, StateCompletedFailure)
		o.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		cause := fmt.Errorf("%w: %s", ErrBuildFailed, status)
		if err != nil {
			cause = fmt.Errorf("%w: %w", ErrBuildFailed, err)
		}
		log.Warn("Cargo build failed", logfields.ExitCode(status.ExitCode()), logfields.Candidates(len(candidates)))
		return nil, errors.BuildFailed(cmd.String(), o.RerunCommand(sel, opts), cause)
	}
	o.transition(ctx, StateCompletedSuccess)
	o.recorder.SetBuildCandidates(len(candidates))

	product, err := o.selectProduct(sel, opts, candidates)
	if err != nil {
		return nil, err
	}
	o.recorder.IncBuildOutcome(metrics.OutcomeSelected)
	log.Info("Selected build product",
		logfields.PackageID(product.PackageID),
		logfields.Artifact(product.Path()))
	return product, nil
}

// drain reads the message stream on one goroutine and classifies on another,
// preserving arrival order.
func (o *Orchestrator) drain(ctx context.Context, r io.Reader, c Classifier, show bool) ([]Product, error) {
	events := make(chan Event, 64)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(events)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadBytes('\n')
			if len(line) > 0 {
				msg, ok, perr := cargo.ParseMessage(line)
				if perr != nil {
					return perr
				}
				ev := Event{Type: EventOther}
				if ok {
					ev = EventFromMessage(msg)
				}
				select {
				case events <- ev:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			if stdErrors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	})

	var candidates []Product
	g.Go(func() error {
		for ev := range events {
			cl := c.Classify(ev)
			switch cl.Kind {
			case Candidate:
				candidates = append(candidates, cl.Product)
			case DiagnosticText:
				if !show {
					continue
				}
				text := cl.Text
				if !strings.HasSuffix(text, "\n") {
					text += "\n"
				}
				if _, err := io.WriteString(o.diagnostics, text); err != nil {
					return err
				}
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (o *Orchestrator) selectProduct(sel Selector, opts Options, candidates []Product) (*Product, error) {
	switch len(candidates) {
	case 0:
		o.recorder.IncBuildOutcome(metrics.OutcomeNoMatch)
		return nil, errors.NoMatchingTargets(sel.String(), ErrNoMatchingTargets)
	case 1:
		p := candidates[0]
		return &p, nil
	}

	if sel.IsAny() {
		filtered := candidates[:0:0]
		for _, c := range candidates {
			if c.Kind != KindCustomBuildScript {
				filtered = append(filtered, c)
			}
		}
		switch len(filtered) {
		case 0:
			o.recorder.IncBuildOutcome(metrics.OutcomeNoMatch)
			return nil, errors.NoMatchingTargets(sel.String(), ErrNoMatchingTargets)
		case 1:
			p := filtered[0]
			return &p, nil
		}
		candidates = filtered
	}

	amb := &AmbiguousError{Tool: opts.Tool, Candidates: candidates}
	if opts.Metadata != nil {
		amb.PackageName = opts.Metadata.PackageName
	}
	o.recorder.IncBuildOutcome(metrics.OutcomeAmbiguous)
	return nil, errors.AmbiguousTargets(amb.Listing(), amb)
}
