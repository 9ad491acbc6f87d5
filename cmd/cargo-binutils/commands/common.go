package commands

import (
	"context"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/cargo-binutils/internal/build"
	"git.home.luguber.info/inful/cargo-binutils/internal/cargo"
	"git.home.luguber.info/inful/cargo-binutils/internal/config"
	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
	"git.home.luguber.info/inful/cargo-binutils/internal/logfields"
	"git.home.luguber.info/inful/cargo-binutils/internal/metrics"
	"git.home.luguber.info/inful/cargo-binutils/internal/observability"
	"git.home.luguber.info/inful/cargo-binutils/internal/proc"
	"git.home.luguber.info/inful/cargo-binutils/internal/target"
	"git.home.luguber.info/inful/cargo-binutils/internal/tool"
	"git.home.luguber.info/inful/cargo-binutils/internal/toolchain"
)

// Global is the state shared by every command, bound into Run.
type Global struct {
	Globals

	Config   config.Config
	Logger   *slog.Logger
	Runner   proc.Runner
	Recorder metrics.Recorder
	Stdout   io.Writer
	Stderr   io.Writer

	ctx context.Context
}

// Context returns the invocation context.
func (g *Global) Context() context.Context {
	if g.ctx == nil {
		return context.Background()
	}
	return g.ctx
}

func (g *Global) rustc() *toolchain.Rustc {
	return toolchain.NewRustc(g.Runner, g.Config.Rustc)
}

func (g *Global) invoker() *tool.Invoker {
	return tool.NewInvoker(g.Runner, g.rustc()).
		WithOutput(g.Stdout, g.Stderr).
		WithRecorder(g.Recorder).
		WithLogger(g.Logger).
		WithEcho(g.Verbose > 0)
}

// prepared is what the build and resolve stages produced.
type prepared struct {
	Product    *build.Product
	Descriptor *target.Descriptor
}

// prepare builds the product for t when it needs one and resolves the
// target when t is architecture-aware or resolve is set.
func (g *Global) prepare(ctx context.Context, t tool.Tool, flags *BuildFlags, resolve bool) (prepared, error) {
	var out prepared
	cf := flags.CargoFlags(g.Globals, g.Config.CargoColor())
	req := target.Request{
		Explicit:      cf.Target,
		WorkspaceRoot: g.Config.WorkDir,
		Profile:       cf.ProfileDir(),
	}

	if t.NeedsBuild() {
		sctx, stage := observability.StartStage(ctx, g.Logger, "metadata")
		md, err := cargo.LoadMetadata(sctx, g.Runner, g.Config.Cargo, cf.ManifestPath, g.Config.WorkDir)
		stage.End(err)
		if err != nil {
			return out, errors.MetadataFailed(err)
		}
		req.TargetDir = md.TargetDirectory

		sctx, stage = observability.StartStage(ctx, g.Logger, "build")
		product, err := build.NewOrchestrator(g.Runner).
			WithCargo(g.Config.Cargo).
			WithDiagnostics(g.Stderr).
			WithRecorder(g.Recorder).
			WithLogger(g.Logger).
			Build(sctx, flags.Selector(), build.Options{
				Flags:    cf,
				Metadata: md,
				Tool:     t.String(),
				Dir:      g.Config.WorkDir,
			})
		stage.End(err)
		if err != nil {
			return out, err
		}
		out.Product = product
		req.Product = product
	}

	if resolve || t.Capabilities().ArchAware {
		sctx, stage := observability.StartStage(ctx, g.Logger, "resolve")
		d, err := target.NewResolver(g.rustc()).WithLogger(g.Logger).Resolve(sctx, req)
		stage.End(err)
		if err != nil {
			return out, err
		}
		out.Descriptor = &d
	}
	return out, nil
}

// runTool is the whole cargo front-end flow for one tool.
func (g *Global) runTool(t tool.Tool, flags *BuildFlags, args []string) error {
	ctx := observability.WithTool(g.Context(), t.String())
	p, err := g.prepare(ctx, t, flags, false)
	if err != nil {
		return err
	}

	sctx, stage := observability.StartStage(ctx, g.Logger, "invoke")
	code, err := g.invoker().Invoke(sctx, tool.Invocation{
		Tool:       t,
		Descriptor: p.Descriptor,
		Product:    p.Product,
		Args:       args,
	})
	stage.End(err)
	if err != nil {
		return err
	}
	observability.Logger(ctx, g.Logger).Debug("Tool exited", logfields.ExitCode(code))
	return errors.Exit(code)
}

// forward runs t with args verbatim.
func (g *Global) forward(t tool.Tool, args []string) error {
	ctx := observability.WithTool(g.Context(), t.String())
	code, err := g.invoker().Forward(ctx, t, args)
	if err != nil {
		return err
	}
	return errors.Exit(code)
}
