package build

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the terminal build outcomes.
var (
	ErrBuildFailed        = errors.New("cargo build failed")
	ErrNoMatchingTargets  = errors.New("no matching build artifact")
	ErrAmbiguousTargets   = errors.New("more than one matching build artifact")
	ErrNotStarted         = errors.New("cargo build could not be started")
	ErrMalformedBuildInfo = errors.New("malformed cargo message stream")
)

// AmbiguousError lists every candidate left after tie-breaking.
type AmbiguousError struct {
	// Tool is the front-end name used in the suggested command lines.
	Tool       string
	Candidates []Product
	// PackageName maps a package id to a display name; identity when nil.
	PackageName func(id string) string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("can only have one matching artifact but found %d", len(e.Candidates))
}

// Is makes errors.Is(err, ErrAmbiguousTargets) hold.
func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguousTargets }

// Listing renders one ready-to-run command line per candidate, grouped by
// package when the candidates come from more than one package. Build
// scripts get a note instead of a command line.
func (e *AmbiguousError) Listing() string {
	name := e.PackageName
	if name == nil {
		name = func(id string) string { return id }
	}
	tool := e.Tool
	if tool == "" {
		tool = "<tool>"
	}

	var order []string
	groups := make(map[string][]Product)
	for _, c := range e.Candidates {
		if _, ok := groups[c.PackageID]; !ok {
			order = append(order, c.PackageID)
		}
		groups[c.PackageID] = append(groups[c.PackageID], c)
	}
	sort.SliceStable(order, func(i, j int) bool { return name(order[i]) < name(order[j]) })

	var b strings.Builder
	grouped := len(order) > 1
	for _, id := range order {
		indent := "    "
		if grouped {
			fmt.Fprintf(&b, "  package `%s`:\n", name(id))
			indent = "      "
		}
		for _, c := range groups[id] {
			if c.Kind == KindCustomBuildScript {
				// No command-line flag selects a build script.
				fmt.Fprintf(&b, "%sbuild script `%s` of package `%s` (not selectable from the command line)\n", indent, c.Name, name(id))
				continue
			}
			args := append([]string{"cargo", tool}, SelectorFor(c).Args()...)
			if grouped {
				args = append(args, "--package", name(id))
			}
			fmt.Fprintf(&b, "%s%s\n", indent, strings.Join(args, " "))
		}
	}
	return b.String()
}
