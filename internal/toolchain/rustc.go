// Package toolchain queries the installed Rust toolchain through rustc.
package toolchain

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/cargo-binutils/internal/proc"
)

// Rustc runs introspection queries against one rustc binary.
// Results are never cached: every call asks the toolchain again.
type Rustc struct {
	runner proc.Runner
	path   string
}

// NewRustc returns a Rustc that invokes path (usually "rustc" or $RUSTC).
func NewRustc(runner proc.Runner, path string) *Rustc {
	if path == "" {
		path = "rustc"
	}
	return &Rustc{runner: runner, path: path}
}

// VersionMeta is the subset of `rustc -vV` this tool relies on.
type VersionMeta struct {
	Release     string
	Host        string
	LLVMVersion string
}

// Version runs `rustc -vV`.
func (r *Rustc) Version(ctx context.Context) (VersionMeta, error) {
	out, err := proc.Output(ctx, r.runner, proc.Command{Name: r.path, Args: []string{"-vV"}})
	if err != nil {
		return VersionMeta{}, err
	}
	return ParseVersion(out)
}

// ParseVersion parses verbose version output.
func ParseVersion(out []byte) (VersionMeta, error) {
	var meta VersionMeta
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ": ")
		if !ok {
			continue
		}
		switch key {
		case "host":
			meta.Host = strings.TrimSpace(value)
		case "release":
			meta.Release = strings.TrimSpace(value)
		case "LLVM version":
			meta.LLVMVersion = strings.TrimSpace(value)
		}
	}
	if err := sc.Err(); err != nil {
		return VersionMeta{}, err
	}
	if meta.Host == "" {
		return VersionMeta{}, fmt.Errorf("rustc -vV: no host line in output")
	}
	return meta, nil
}

// Host returns the host target triple.
func (r *Rustc) Host(ctx context.Context) (string, error) {
	meta, err := r.Version(ctx)
	if err != nil {
		return "", err
	}
	return meta.Host, nil
}

// Sysroot returns `rustc --print sysroot`.
func (r *Rustc) Sysroot(ctx context.Context) (string, error) {
	out, err := proc.Output(ctx, r.runner, proc.Command{Name: r.path, Args: []string{"--print", "sysroot"}})
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", fmt.Errorf("rustc --print sysroot: empty output")
	}
	return root, nil
}

// Rustlib returns the directory holding the llvm-tools component binaries:
// <sysroot>/lib/rustlib/<host>/bin.
func (r *Rustc) Rustlib(ctx context.Context) (string, error) {
	sysroot, err := r.Sysroot(ctx)
	if err != nil {
		return "", err
	}
	host, err := r.Host(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(sysroot, "lib", "rustlib", host, "bin"), nil
}

// Cfg is the parsed `rustc --print cfg` output for one target.
type Cfg struct {
	Arch   string
	Endian string
}

// Cfg runs `rustc --print cfg --target <target>`.
func (r *Rustc) Cfg(ctx context.Context, target string) (Cfg, error) {
	args := []string{"--print", "cfg"}
	if target != "" {
		args = append(args, "--target", target)
	}
	out, err := proc.Output(ctx, r.runner, proc.Command{Name: r.path, Args: args})
	if err != nil {
		return Cfg{}, err
	}
	return ParseCfg(out), nil
}

// ParseCfg extracts key="value" pairs of interest; bare flags are ignored.
func ParseCfg(out []byte) Cfg {
	var cfg Cfg
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "target_arch":
			cfg.Arch = value
		case "target_endian":
			cfg.Endian = value
		}
	}
	return cfg
}
