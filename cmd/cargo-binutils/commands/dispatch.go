package commands

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
	"git.home.luguber.info/inful/cargo-binutils/internal/tool"
)

// Mode is how the binary was invoked, decided by the name it runs under.
type Mode int

const (
	// ModeMulti is cargo-binutils itself, with one subcommand per tool.
	ModeMulti Mode = iota
	// ModeCargo is a cargo-<tool> front-end, invoked by cargo as `cargo <tool>`.
	ModeCargo
	// ModeForward is a rust-<tool> binary: arguments go to the tool verbatim.
	ModeForward
)

// MultiCallName is the name of the multi-tool binary.
const MultiCallName = "cargo-binutils"

// Invocation is the parsed argv[0] dispatch.
type Invocation struct {
	Mode Mode
	Tool tool.Tool
	// Args are the arguments left for the selected mode.
	Args []string
}

// ParseInvocation decides the mode from argv[0] and strips the subcommand
// name cargo inserts as the first argument.
func ParseInvocation(argv []string) (Invocation, error) {
	if len(argv) == 0 {
		return Invocation{Mode: ModeMulti}, nil
	}
	name := strings.TrimSuffix(filepath.Base(argv[0]), ".exe")
	args := argv[1:]

	switch {
	case name == MultiCallName:
		if len(args) > 0 && args[0] == "binutils" {
			args = args[1:]
		}
		return Invocation{Mode: ModeMulti, Args: args}, nil
	case strings.HasPrefix(name, "rust-"):
		t, err := tool.Parse(strings.TrimPrefix(name, "rust-"))
		if err != nil {
			return Invocation{}, errors.ValidationFailed("argv[0]", err.Error())
		}
		return Invocation{Mode: ModeForward, Tool: t, Args: args}, nil
	case strings.HasPrefix(name, "cargo-"):
		t, err := tool.Parse(strings.TrimPrefix(name, "cargo-"))
		if err != nil {
			return Invocation{}, errors.ValidationFailed("argv[0]", err.Error())
		}
		if !t.HasCargoFrontEnd() {
			return Invocation{}, errors.ValidationFailed("argv[0]", "there is no cargo "+t.String()+" subcommand; use rust-"+t.String())
		}
		if len(args) > 0 && args[0] == t.String() {
			args = args[1:]
		}
		return Invocation{Mode: ModeCargo, Tool: t, Args: args}, nil
	default:
		return Invocation{Mode: ModeMulti, Args: args}, nil
	}
}
