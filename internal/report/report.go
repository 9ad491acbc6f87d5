// Package report renders the result of `cargo-binutils which`.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/cargo-binutils/internal/build"
	"git.home.luguber.info/inful/cargo-binutils/internal/target"
)

// Format is an output format for Which.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SupportedFormats returns every renderable format.
func SupportedFormats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML}
}

// Which describes what a tool invocation would run against.
type Which struct {
	Tool     string             `json:"tool" yaml:"tool"`
	Path     string             `json:"path" yaml:"path"`
	Target   *target.Descriptor `json:"target,omitempty" yaml:"target,omitempty"`
	LLVMArch string             `json:"llvm_arch,omitempty" yaml:"llvm_arch,omitempty"`
	Product  *build.Product     `json:"product,omitempty" yaml:"product,omitempty"`
	Command  []string           `json:"command" yaml:"command"`
}

// Render formats w.
func Render(w Which, format Format) (string, error) {
	switch format {
	case FormatText, "":
		return renderText(w), nil
	case FormatJSON:
		out, err := json.MarshalIndent(w, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(w); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func renderText(w Which) string {
	var b strings.Builder
	fmt.Fprintf(&b, "tool:     %s\n", w.Tool)
	fmt.Fprintf(&b, "path:     %s\n", w.Path)
	if w.Target != nil {
		fmt.Fprintf(&b, "target:   %s (%s, %s endian)\n", w.Target.Triple, w.LLVMArch, w.Target.Endian)
	}
	if w.Product != nil {
		fmt.Fprintf(&b, "product:  %s %s\n", w.Product.Kind, w.Product.Name)
		fmt.Fprintf(&b, "artifact: %s\n", w.Product.Path())
	}
	fmt.Fprintf(&b, "command:  %s\n", strings.Join(w.Command, " "))
	return b.String()
}
