// Command cargo-binutils proxies the LLVM tools shipped with the Rust
// toolchain. Installed under the names cargo-<tool> it runs as a cargo
// subcommand that builds the crate and inspects the product; installed as
// rust-<tool> it forwards its arguments to the tool unchanged.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/cargo-binutils/cmd/cargo-binutils/commands"
	"git.home.luguber.info/inful/cargo-binutils/internal/proc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Main(ctx, os.Args, os.Stdout, os.Stderr, os.Getenv, proc.NewExecRunner())
	stop()
	os.Exit(code)
}
