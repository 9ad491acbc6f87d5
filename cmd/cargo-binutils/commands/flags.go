package commands

import (
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/cargo-binutils/internal/build"
	"git.home.luguber.info/inful/cargo-binutils/internal/cargo"
)

// Globals are the flags shared by every command.
type Globals struct {
	Verbose     int              `short:"v" type:"counter" help:"Use verbose output (-vv very verbose/build.rs output)."`
	Quiet       bool             `short:"q" help:"Do not print cargo log messages."`
	Color       string           `placeholder:"WHEN" help:"Coloring: auto, always, never."`
	MetricsFile string           `name:"metrics-file" placeholder:"PATH" help:"Write Prometheus metrics for this run to a textfile."`
	Version     kong.VersionFlag `short:"V" help:"Print version info and exit."`
}

// BuildFlags are the cargo build options of the build-driven tools.
type BuildFlags struct {
	Bin     string `xor:"selector" placeholder:"NAME" help:"Build only the specified binary."`
	Example string `xor:"selector" placeholder:"NAME" help:"Build only the specified example."`
	Test    string `xor:"selector" placeholder:"NAME" help:"Build only the specified test target."`
	Bench   string `xor:"selector" placeholder:"NAME" help:"Build only the specified bench target."`
	Lib     bool   `xor:"selector" help:"Build only this package's library."`

	Package           string   `short:"p" placeholder:"SPEC" help:"Package to build."`
	ManifestPath      string   `name:"manifest-path" placeholder:"PATH" help:"Path to Cargo.toml."`
	Target            string   `placeholder:"TRIPLE" help:"Target triple for which the code is compiled."`
	Features          []string `short:"F" placeholder:"FEATURES" help:"Space or comma separated list of features to activate."`
	AllFeatures       bool     `name:"all-features" help:"Activate all available features."`
	NoDefaultFeatures bool     `name:"no-default-features" help:"Do not activate the default feature."`
	Release           bool     `short:"r" help:"Build artifacts in release mode, with optimizations."`
	Profile           string   `placeholder:"PROFILE-NAME" help:"Build artifacts with the specified profile."`
	Config            []string `sep:"none" placeholder:"KEY=VALUE" help:"Override a cargo configuration value."`
	Frozen            bool     `help:"Require Cargo.lock and cache are up to date."`
	Locked            bool     `help:"Require Cargo.lock is up to date."`
	Offline           bool     `help:"Run without accessing the network."`
	Unstable          []string `short:"Z" name:"unstable" sep:"none" placeholder:"FLAG" help:"Unstable (nightly-only) flags to cargo."`
}

// Selector converts the target selection flags.
func (f *BuildFlags) Selector() build.Selector {
	if f == nil {
		return build.Any()
	}
	switch {
	case f.Bin != "":
		return build.Binary(f.Bin)
	case f.Example != "":
		return build.Example(f.Example)
	case f.Test != "":
		return build.Test(f.Test)
	case f.Bench != "":
		return build.Bench(f.Bench)
	case f.Lib:
		return build.Library()
	default:
		return build.Any()
	}
}

// CargoFlags translates the flags for the orchestrator.
func (f *BuildFlags) CargoFlags(g Globals, color string) cargo.BuildFlags {
	out := cargo.BuildFlags{
		Color:   color,
		Quiet:   g.Quiet,
		Verbose: g.Verbose,
	}
	if f == nil {
		return out
	}
	out.Package = f.Package
	out.ManifestPath = f.ManifestPath
	out.Target = f.Target
	out.AllFeatures = f.AllFeatures
	out.NoDefaultFeatures = f.NoDefaultFeatures
	out.Release = f.Release
	out.Profile = f.Profile
	out.Config = f.Config
	out.Frozen = f.Frozen
	out.Locked = f.Locked
	out.Offline = f.Offline
	out.Unstable = f.Unstable
	for _, feat := range f.Features {
		out.Features = append(out.Features, strings.Fields(feat)...)
	}
	return out
}
