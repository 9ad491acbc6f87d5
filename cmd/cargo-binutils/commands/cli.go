package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/cargo-binutils/internal/config"
	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
	"git.home.luguber.info/inful/cargo-binutils/internal/logfields"
	"git.home.luguber.info/inful/cargo-binutils/internal/metrics"
	"git.home.luguber.info/inful/cargo-binutils/internal/observability"
	"git.home.luguber.info/inful/cargo-binutils/internal/proc"
	"git.home.luguber.info/inful/cargo-binutils/internal/report"
	"git.home.luguber.info/inful/cargo-binutils/internal/tool"
	"git.home.luguber.info/inful/cargo-binutils/internal/version"
)

// CLI is the multi-tool command line: `cargo binutils <tool> ...`.
type CLI struct {
	Globals `embed:""`

	Nm       BuildToolCmd `cmd:"" help:"List symbols in the build product."`
	Objcopy  BuildToolCmd `cmd:"" help:"Copy and translate the build product."`
	Objdump  BuildToolCmd `cmd:"" help:"Disassemble the build product."`
	Readobj  BuildToolCmd `cmd:"" help:"Print low-level information about the build product."`
	Size     BuildToolCmd `cmd:"" help:"Print the size of the build product's sections."`
	Strip    BuildToolCmd `cmd:"" help:"Strip symbols from the build product."`
	Profdata PlainToolCmd `cmd:"" help:"Merge and inspect profile data."`

	Which WhichCmd `cmd:"" help:"Show the tool, target and product a run would use, without running it."`
	Exec  ExecCmd  `cmd:"" help:"Run any LLVM tool with arguments verbatim."`
}

// buildToolCLI is the command line of a cargo-<tool> front-end that
// inspects a build product.
type buildToolCLI struct {
	Globals      `embed:""`
	BuildToolCmd `embed:""`
}

// plainToolCLI is the command line of cargo-profdata.
type plainToolCLI struct {
	Globals      `embed:""`
	PlainToolCmd `embed:""`
}

// exitRequest is raised through kong's exit hook (--help, --version) so
// parsing returns to Main instead of terminating the process.
type exitRequest struct{ code int }

// parseArgs parses args into grammar. done reports that kong asked to exit
// with code after printing help or version.
func parseArgs(grammar any, name, description string, args []string, stdout, stderr io.Writer) (kctx *kong.Context, done bool, code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			req, ok := r.(exitRequest)
			if !ok {
				panic(r)
			}
			kctx, done, code, err = nil, true, req.code, nil
		}
	}()

	parser, err := kong.New(grammar,
		kong.Name(name),
		kong.Description(description),
		kong.Vars{"version": version.String(), "formats": formatNames()},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitRequest{code: code}) }),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		return nil, false, 0, errors.InternalError("invalid command line grammar", err)
	}
	kctx, err = parser.Parse(args)
	if err != nil {
		return nil, false, 0, errors.ValidationFailed("arguments", err.Error()).
			WithHint("Run with --help for usage.")
	}
	return kctx, false, 0, nil
}

// formatNames lists the `which` output formats for kong's enum check.
func formatNames() string {
	formats := report.SupportedFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}

// Main runs one invocation and returns the process exit code.
func Main(ctx context.Context, argv []string, stdout, stderr io.Writer, getenv func(string) string, runner proc.Runner) int {
	inv, err := ParseInvocation(argv)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, nil).WithOutput(stderr).Handle(err)
	}

	g := &Global{
		Runner:   runner,
		Recorder: metrics.NoopRecorder{},
		Stdout:   stdout,
		Stderr:   stderr,
	}

	var run func() error
	switch inv.Mode {
	case ModeForward:
		run = func() error { return g.forward(inv.Tool, inv.Args) }

	case ModeCargo:
		name := "cargo " + inv.Tool.String()
		desc := "Proxy for the llvm-" + inv.Tool.String() + " tool shipped with the Rust toolchain."
		if inv.Tool.NeedsBuild() {
			cli := &buildToolCLI{}
			_, done, code, err := parseArgs(cli, name, desc, inv.Args, stdout, stderr)
			if done || err != nil {
				return finishParse(stderr, code, err)
			}
			g.Globals = cli.Globals
			run = func() error { return cli.BuildToolCmd.Run(inv.Tool, g) }
		} else {
			cli := &plainToolCLI{}
			_, done, code, err := parseArgs(cli, name, desc, inv.Args, stdout, stderr)
			if done || err != nil {
				return finishParse(stderr, code, err)
			}
			g.Globals = cli.Globals
			run = func() error { return cli.PlainToolCmd.Run(inv.Tool, g) }
		}

	default:
		cli := &CLI{}
		kctx, done, code, err := parseArgs(cli, MultiCallName,
			"Proxy for the LLVM tools shipped with the Rust toolchain.", inv.Args, stdout, stderr)
		if done || err != nil {
			return finishParse(stderr, code, err)
		}
		g.Globals = cli.Globals
		selected := tool.Tool("")
		if node := kctx.Selected(); node != nil {
			selected = tool.Tool(node.Name)
		}
		run = func() error { return kctx.Run(selected, g) }
	}

	return execute(ctx, g, getenv, run)
}

func finishParse(stderr io.Writer, code int, err error) int {
	if err != nil {
		return errors.NewCLIErrorAdapter(false, nil).WithOutput(stderr).Handle(err)
	}
	return code
}

// execute sets up configuration, logging and metrics around run.
func execute(ctx context.Context, g *Global, getenv func(string) string, run func() error) int {
	cfg, err := config.Load(getenv, config.WithColor(g.Color), config.WithMetricsFile(g.MetricsFile))
	if err != nil {
		return errors.NewCLIErrorAdapter(g.Verbose > 0, nil).WithOutput(g.Stderr).Handle(err)
	}
	g.Config = cfg

	g.Logger = slog.New(slog.NewTextHandler(g.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel(g.Verbose)}))
	slog.SetDefault(g.Logger)
	f, _ := g.Stderr.(*os.File)
	color.NoColor = !cfg.UseColor(f)

	var reg *prom.Registry
	if cfg.MetricsFile != "" {
		reg = prom.NewRegistry()
		g.Recorder = metrics.NewPrometheusRecorder(reg)
	}

	g.ctx = observability.WithInvocationID(ctx, uuid.NewString())
	observability.DebugContext(g.ctx, "Starting", slog.String("version", version.String()))

	code := errors.NewCLIErrorAdapter(g.Verbose > 0, g.Logger).WithOutput(g.Stderr).Handle(run())

	if reg != nil {
		if err := metrics.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			observability.Logger(g.ctx, g.Logger).Warn("Failed to write metrics", logfields.Path(cfg.MetricsFile), logfields.Error(err))
		}
	}
	return code
}
