// Package tool knows the LLVM binutils shipped by the llvm-tools rustup
// component and runs them against build products.
package tool

import (
	"fmt"
	"runtime"
	"sort"

	"git.home.luguber.info/inful/cargo-binutils/internal/postprocess"
)

// Tool identifies one LLVM utility.
type Tool string

const (
	Ar       Tool = "ar"
	Lld      Tool = "lld"
	Nm       Tool = "nm"
	Objcopy  Tool = "objcopy"
	Objdump  Tool = "objdump"
	Profdata Tool = "profdata"
	Readobj  Tool = "readobj"
	Size     Tool = "size"
	Strip    Tool = "strip"
)

// Capabilities describe how a tool is driven.
type Capabilities struct {
	// NeedsBuild tools operate on a build product and trigger cargo build.
	NeedsBuild bool
	// ArchAware tools get the disassembler architecture flags.
	ArchAware bool
	// StyleFlags are prepended to force human-readable output.
	StyleFlags []string
	// ShortenCwd tools run in the product's directory and get its base name.
	ShortenCwd bool
	// Filter post-processes captured stdout; nil streams stdout through.
	Filter postprocess.Filter
}

var capabilities = map[Tool]Capabilities{
	Ar:       {},
	Lld:      {},
	Nm:       {NeedsBuild: true, ShortenCwd: true, Filter: postprocess.Demangle},
	Objcopy:  {NeedsBuild: true},
	Objdump:  {NeedsBuild: true, ArchAware: true, ShortenCwd: true, Filter: postprocess.Demangle},
	Profdata: {},
	Readobj:  {NeedsBuild: true, StyleFlags: []string{"--elf-output-style=GNU"}, ShortenCwd: true, Filter: postprocess.Demangle},
	Size:     {NeedsBuild: true, ShortenCwd: true, Filter: postprocess.SizeHex},
	Strip:    {NeedsBuild: true},
}

// cargoFrontEnds are the tools reachable as `cargo <tool>`.
var cargoFrontEnds = map[Tool]bool{
	Nm: true, Objcopy: true, Objdump: true, Profdata: true, Readobj: true, Size: true, Strip: true,
}

// Parse returns the tool called name.
func Parse(name string) (Tool, error) {
	t := Tool(name)
	if _, ok := capabilities[t]; !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}
	return t, nil
}

// All returns every tool, sorted by name.
func All() []Tool {
	out := make([]Tool, 0, len(capabilities))
	for t := range capabilities {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t Tool) String() string { return string(t) }

// Capabilities returns the driving rules for t.
func (t Tool) Capabilities() Capabilities { return capabilities[t] }

// NeedsBuild reports whether t inspects a build product.
func (t Tool) NeedsBuild() bool { return capabilities[t].NeedsBuild }

// HasCargoFrontEnd reports whether `cargo <t>` exists.
func (t Tool) HasCargoFrontEnd() bool { return cargoFrontEnds[t] }

// Exe is the file name of the tool inside the rustlib bin directory.
func (t Tool) Exe() string {
	suffix := ""
	if runtime.GOOS == "windows" {
		suffix = ".exe"
	}
	if t == Lld {
		return "rust-lld" + suffix
	}
	return "llvm-" + string(t) + suffix
}
