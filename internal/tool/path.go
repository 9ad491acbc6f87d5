package tool

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
)

// ErrToolNotFound is wrapped when the llvm-tools binary is not installed.
var ErrToolNotFound = stdErrors.New("llvm tool not found")

// Rustlib locates the directory holding the llvm-tools binaries.
type Rustlib interface {
	Rustlib(ctx context.Context) (string, error)
}

// Path returns the absolute path of t, failing with an install hint when
// the component is missing.
func Path(ctx context.Context, rl Rustlib, t Tool) (string, error) {
	dir, err := rl.Rustlib(ctx)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryToolchain, errors.SeverityFatal, "failed to locate the Rust sysroot").
			WithHint("Please ensure `rustc` is in your PATH or the RUSTC environment variable.\n" +
				"You should be able to run `rustc --print sysroot` and `rustc -vV`.")
	}
	p := filepath.Join(dir, t.Exe())
	fi, err := os.Stat(p)
	if err != nil {
		return "", errors.ToolNotFound(t.String(), p, fmt.Errorf("%w: %w", ErrToolNotFound, err))
	}
	if fi.IsDir() {
		return "", errors.ToolNotFound(t.String(), p, fmt.Errorf("%w: %s is a directory", ErrToolNotFound, p))
	}
	return p, nil
}
