package commands

import (
	"io"

	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
	"git.home.luguber.info/inful/cargo-binutils/internal/observability"
	"git.home.luguber.info/inful/cargo-binutils/internal/report"
	"git.home.luguber.info/inful/cargo-binutils/internal/tool"
)

// WhichCmd resolves everything a tool run needs and prints it instead of
// running the tool.
type WhichCmd struct {
	Tool   string `arg:"" help:"Tool name."`
	Format string `short:"f" default:"text" enum:"${formats}" help:"Output format (${formats})."`

	BuildFlags `embed:""`

	Args []string `arg:"" optional:"" help:"Tool arguments to include in the printed command (after --)."`
}

func (c *WhichCmd) Run(g *Global) error {
	t, err := tool.Parse(c.Tool)
	if err != nil {
		return errors.ValidationFailed("tool", err.Error())
	}
	ctx := observability.WithTool(g.Context(), t.String())

	p, err := g.prepare(ctx, t, &c.BuildFlags, true)
	if err != nil {
		return err
	}
	inv := tool.Invocation{Tool: t, Descriptor: p.Descriptor, Product: p.Product, Args: c.Args}
	cmd, err := g.invoker().Command(ctx, inv)
	if err != nil {
		return err
	}

	w := report.Which{
		Tool:    t.String(),
		Path:    cmd.Name,
		Target:  p.Descriptor,
		Product: p.Product,
		Command: append([]string{cmd.Name}, cmd.Args...),
	}
	if p.Descriptor != nil {
		w.LLVMArch = p.Descriptor.LLVMArch()
	}
	out, err := report.Render(w, report.Format(c.Format))
	if err != nil {
		return errors.ValidationFailed("format", err.Error())
	}
	_, err = io.WriteString(g.Stdout, out)
	return err
}
