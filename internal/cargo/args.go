package cargo

import (
	"strings"
)

// MessageFormat asks cargo for JSON messages with ANSI rendered diagnostics.
const MessageFormat = "--message-format=json-diagnostic-rendered-ansi"

// BuildFlags are the `cargo build` options a front-end forwards verbatim.
type BuildFlags struct {
	Package           string
	ManifestPath      string
	Target            string
	Features          []string
	AllFeatures       bool
	NoDefaultFeatures bool
	Release           bool
	Profile           string
	Config            []string
	Color             string
	Frozen            bool
	Locked            bool
	Offline           bool
	Unstable          []string
	Quiet             bool
	// Verbose is the front-end's -v count. The first -v only echoes
	// commands; each further one is forwarded to cargo.
	Verbose int
}

// CargoVerbosity is the number of -v flags cargo receives.
func (f BuildFlags) CargoVerbosity() int {
	if f.Verbose <= 1 {
		return 0
	}
	return f.Verbose - 1
}

// Args translates the flags into `cargo build` arguments, excluding the
// subcommand and target-selection flags. Cargo refuses --quiet together
// with --verbose, so --quiet is dropped whenever a -v is forwarded.
func (f BuildFlags) Args() []string {
	var args []string
	verbose := f.CargoVerbosity()
	if f.Quiet && verbose == 0 {
		args = append(args, "--quiet")
	}
	if f.Package != "" {
		args = append(args, "--package", f.Package)
	}
	if f.ManifestPath != "" {
		args = append(args, "--manifest-path", f.ManifestPath)
	}
	for _, c := range f.Config {
		args = append(args, "--config", c)
	}
	if f.Target != "" {
		args = append(args, "--target", f.Target)
	}
	if len(f.Features) > 0 {
		args = append(args, "--features", strings.Join(f.Features, ","))
	}
	if f.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	if f.AllFeatures {
		args = append(args, "--all-features")
	}
	if f.Release {
		args = append(args, "--release")
	}
	if f.Profile != "" {
		args = append(args, "--profile="+f.Profile)
	}
	if f.Color != "" {
		args = append(args, "--color", f.Color)
	}
	if f.Frozen {
		args = append(args, "--frozen")
	}
	if f.Locked {
		args = append(args, "--locked")
	}
	if f.Offline {
		args = append(args, "--offline")
	}
	for _, z := range f.Unstable {
		args = append(args, "-Z", z)
	}
	if verbose > 0 {
		args = append(args, "-"+strings.Repeat("v", verbose))
	}
	return args
}

// ProfileDir is the directory name under the target directory that holds
// artifacts for the selected profile.
func (f BuildFlags) ProfileDir() string {
	switch {
	case f.Profile == "dev" || f.Profile == "test":
		return "debug"
	case f.Profile == "bench":
		return "release"
	case f.Profile != "":
		return f.Profile
	case f.Release:
		return "release"
	default:
		return "debug"
	}
}
