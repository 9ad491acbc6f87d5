package target

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/cargo-binutils/internal/build"
	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
	"git.home.luguber.info/inful/cargo-binutils/internal/logfields"
	"git.home.luguber.info/inful/cargo-binutils/internal/toolchain"
)

// ErrResolution is wrapped by every resolution failure.
var ErrResolution = stdErrors.New("target resolution failed")

// Toolchain is the subset of rustc introspection the resolver needs.
type Toolchain interface {
	Host(ctx context.Context) (string, error)
	Cfg(ctx context.Context, target string) (toolchain.Cfg, error)
}

// Request carries everything known about the target before resolution.
type Request struct {
	// Explicit is the --target value.
	Explicit string
	// Product is the selected build product, when a build ran.
	Product *build.Product
	// TargetDir is cargo's target directory (from cargo metadata).
	TargetDir string
	// WorkspaceRoot is where the upward .cargo/config search begins.
	WorkspaceRoot string
	// Profile is the profile directory name in use when it is neither
	// debug nor release (custom --profile).
	Profile string
}

// Resolver turns a Request into a Descriptor.
type Resolver struct {
	tc     Toolchain
	logger *slog.Logger
}

// NewResolver creates a resolver backed by tc.
func NewResolver(tc Toolchain) *Resolver {
	return &Resolver{tc: tc, logger: slog.Default()}
}

// WithLogger sets the logger.
func (r *Resolver) WithLogger(l *slog.Logger) *Resolver {
	if l != nil {
		r.logger = l
	}
	return r
}

// Resolve determines the target triple and queries its architecture and
// byte order. The host is queried on every call and never cached.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Descriptor, error) {
	spec, err := r.triple(ctx, req)
	if err != nil {
		return Descriptor{}, errors.ResolutionFailed(req.Explicit, fmt.Errorf("%w: %w", ErrResolution, err))
	}
	cfg, err := r.tc.Cfg(ctx, spec)
	if err != nil {
		return Descriptor{}, errors.ResolutionFailed(spec, fmt.Errorf("%w: %w", ErrResolution, err))
	}
	d, err := NewDescriptor(TripleName(spec), cfg)
	if err != nil {
		return Descriptor{}, errors.ResolutionFailed(spec, fmt.Errorf("%w: %w", ErrResolution, err))
	}
	r.logger.Debug("Resolved target",
		logfields.Target(d.Triple),
		slog.String("llvm_arch", d.LLVMArch()),
		slog.String("endian", string(d.Endian)))
	return d, nil
}

// triple returns the target spec to query rustc with: a triple, or the
// path of a custom .json target.
func (r *Resolver) triple(ctx context.Context, req Request) (string, error) {
	if req.Product != nil {
		return r.fromProduct(ctx, req)
	}
	if req.Explicit != "" {
		return req.Explicit, nil
	}
	t, path, err := FindConfigTarget(req.WorkspaceRoot)
	if err != nil {
		return "", errors.ConfigInvalid(path, err)
	}
	if t != "" {
		r.logger.Debug("Using target from cargo config", logfields.Path(path), logfields.Target(t))
		return t, nil
	}
	return r.tc.Host(ctx)
}

func (r *Resolver) fromProduct(ctx context.Context, req Request) (string, error) {
	file := req.Product.Path()
	if file == "" {
		return "", fmt.Errorf("product %q has no files", req.Product.Name)
	}
	if req.TargetDir == "" {
		return "", fmt.Errorf("target directory unknown")
	}
	rel, err := filepath.Rel(req.TargetDir, file)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is not inside the target directory %s", file, req.TargetDir)
	}
	segment, _, _ := strings.Cut(rel, "/")

	if segment == "debug" || segment == "release" || (req.Profile != "" && segment == req.Profile) {
		return r.tc.Host(ctx)
	}

	// A custom .json target builds into a directory named after its file
	// stem; rustc must be queried with the spec path, not the stem.
	custom := req.Explicit
	if custom == "" {
		t, path, err := FindConfigTarget(req.WorkspaceRoot)
		if err != nil {
			return "", errors.ConfigInvalid(path, err)
		}
		custom = t
	}
	if strings.HasSuffix(custom, ".json") && TripleName(custom) == segment {
		return custom, nil
	}
	return segment, nil
}
