package commands

import (
	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
	"git.home.luguber.info/inful/cargo-binutils/internal/tool"
)

// BuildToolCmd builds a crate and runs one LLVM tool on the product.
type BuildToolCmd struct {
	BuildFlags `embed:""`

	Args []string `arg:"" optional:"" help:"Arguments passed to the tool (after --)."`
}

// Run builds and inspects with t, the subcommand that selected this command.
func (c *BuildToolCmd) Run(t tool.Tool, g *Global) error {
	if !t.NeedsBuild() {
		return errors.InternalError("tool "+t.String()+" does not inspect build products", nil)
	}
	return g.runTool(t, &c.BuildFlags, c.Args)
}

// PlainToolCmd runs an LLVM tool that takes no build product.
type PlainToolCmd struct {
	Args []string `arg:"" optional:"" passthrough:"" help:"Arguments passed to the tool."`
}

func (c *PlainToolCmd) Run(t tool.Tool, g *Global) error {
	return g.forward(t, c.Args)
}

// ExecCmd runs any LLVM tool with arguments verbatim, like the rust-<tool> binaries.
type ExecCmd struct {
	Tool string   `arg:"" help:"Tool name (ar, lld, nm, objcopy, objdump, profdata, readobj, size, strip)."`
	Args []string `arg:"" optional:"" passthrough:"" help:"Arguments passed to the tool."`
}

func (c *ExecCmd) Run(g *Global) error {
	t, err := tool.Parse(c.Tool)
	if err != nil {
		return errors.ValidationFailed("tool", err.Error())
	}
	return g.forward(t, c.Args)
}
