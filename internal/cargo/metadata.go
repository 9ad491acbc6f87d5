package cargo

import (
	"context"
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/cargo-binutils/internal/proc"
	"git.home.luguber.info/inful/cargo-binutils/internal/util/sets"
)

// Metadata is the subset of `cargo metadata --format-version 1` used here.
type Metadata struct {
	Packages         []Package `json:"packages"`
	WorkspaceMembers []string  `json:"workspace_members"`
	TargetDirectory  string    `json:"target_directory"`
}

// Package is one package entry of the metadata document.
type Package struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Target is a compilation target as cargo describes it.
type Target struct {
	Kind []string `json:"kind"`
	Name string   `json:"name"`
}

// LoadMetadata runs `cargo metadata --no-deps --format-version 1`.
func LoadMetadata(ctx context.Context, runner proc.Runner, cargoPath, manifestPath, dir string) (*Metadata, error) {
	if cargoPath == "" {
		cargoPath = "cargo"
	}
	args := []string{"metadata", "--no-deps", "--format-version", "1"}
	if manifestPath != "" {
		args = append(args, "--manifest-path", manifestPath)
	}
	out, err := proc.Output(ctx, runner, proc.Command{Name: cargoPath, Args: args, Dir: dir})
	if err != nil {
		return nil, err
	}
	return ParseMetadata(out)
}

// ParseMetadata decodes a metadata document.
func ParseMetadata(data []byte) (*Metadata, error) {
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parse cargo metadata: %w", err)
	}
	if md.TargetDirectory == "" {
		return nil, fmt.Errorf("parse cargo metadata: missing target_directory")
	}
	return &md, nil
}

// Members returns the package ids eligible for artifact matching: every
// workspace member, or only the member named pkg when pkg is set.
func (m *Metadata) Members(pkg string) (sets.Set[string], error) {
	members := sets.New(m.WorkspaceMembers...)
	if pkg == "" {
		return members, nil
	}
	narrowed := sets.New[string]()
	for _, p := range m.Packages {
		if members.Has(p.ID) && matchesSpec(p, pkg) {
			narrowed.Add(p.ID)
		}
	}
	if len(narrowed) == 0 {
		return nil, fmt.Errorf("package %q is not a member of the workspace", pkg)
	}
	return narrowed, nil
}

// PackageName returns the package name for id, or id itself when unknown.
func (m *Metadata) PackageName(id string) string {
	for _, p := range m.Packages {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

// matchesSpec accepts "name" and "name@version" package specs.
func matchesSpec(p Package, spec string) bool {
	if spec == p.Name || spec == p.ID {
		return true
	}
	return spec == p.Name+"@"+p.Version
}
