package target

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cargo-binutils/internal/build"
	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
	"git.home.luguber.info/inful/cargo-binutils/internal/toolchain"
)

type fakeToolchain struct {
	host      string
	cfgs      map[string]toolchain.Cfg
	hostCalls int
	cfgCalls  []string
}

func (f *fakeToolchain) Host(context.Context) (string, error) {
	f.hostCalls++
	return f.host, nil
}

func (f *fakeToolchain) Cfg(_ context.Context, target string) (toolchain.Cfg, error) {
	f.cfgCalls = append(f.cfgCalls, target)
	cfg, ok := f.cfgs[target]
	if !ok {
		return toolchain.Cfg{}, fmt.Errorf("error: unknown target %q", target)
	}
	return cfg, nil
}

func newFake() *fakeToolchain {
	return &fakeToolchain{
		host: "x86_64-unknown-linux-gnu",
		cfgs: map[string]toolchain.Cfg{
			"x86_64-unknown-linux-gnu": {Arch: "x86_64", Endian: "little"},
			"thumbv7m-none-eabi":       {Arch: "arm", Endian: "little"},
			"thumbv7m-none-eabieb":     {Arch: "arm", Endian: "big"},
			"mips-unknown-linux-gnu":   {Arch: "mips", Endian: "big"},
			"aarch64-unknown-none":     {Arch: "aarch64", Endian: "little"},
			"no-endian":                {Arch: "arm"},
		},
	}
}

func TestLLVMArchName(t *testing.T) {
	tests := []struct {
		arch   string
		endian Endian
		triple string
		want   string
	}{
		{"arm", Little, "thumbv7m-none-eabi", "thumb"},
		{"arm", Big, "thumbv7m-none-eabi", "thumbeb"},
		{"aarch64", Big, "aarch64_be-unknown-linux-gnu", "aarch64_be"},
		{"aarch64", Little, "aarch64-unknown-linux-gnu", "aarch64"},
		{"arm", Big, "armebv7r-none-eabi", "armeb"},
		{"arm", Little, "armv7-unknown-linux-gnueabihf", "arm"},
		{"mips", Little, "mipsel-unknown-linux-gnu", "mipsel"},
		{"mips", Big, "mips-unknown-linux-gnu", "mips"},
		{"mips64", Little, "mips64el-unknown-linux-gnuabi64", "mips64el"},
		{"powerpc64", Little, "powerpc64le-unknown-linux-gnu", "ppc64le"},
		{"powerpc64", Big, "powerpc64-unknown-linux-gnu", "ppc64"},
		{"powerpc", Big, "powerpc-unknown-linux-gnu", "ppc32"},
		{"sparc", Little, "sparcel-unknown-none", "sparcel"},
		{"sparc64", Big, "sparc64-unknown-linux-gnu", "sparcv9"},
		{"s390x", Big, "s390x-unknown-linux-gnu", "systemz"},
		{"x86_64", Little, "x86_64-unknown-linux-gnu", "x86-64"},
		{"riscv32", Little, "riscv32imac-unknown-none-elf", "riscv32"},
	}
	for _, tt := range tests {
		t.Run(tt.triple, func(t *testing.T) {
			got := LLVMArchName(tt.arch, tt.endian, tt.triple)
			require.Equal(t, tt.want, got)
			// Mapping an LLVM name again leaves it unchanged.
			require.Equal(t, got, LLVMArchName(got, tt.endian, tt.triple))
		})
	}
}

func TestLLVMArchName_CanonicalNamesPassThrough(t *testing.T) {
	for _, name := range []string{"x86-64", "ppc32", "ppc64", "ppc64le", "sparcv9", "systemz", "aarch64_be", "armeb", "mipsel", "mips64el", "sparcel"} {
		require.Equal(t, name, LLVMArchName(name, Little, "unknown-none"), name)
		require.Equal(t, name, LLVMArchName(name, Big, "unknown-none"), name)
	}
}

func TestDescriptor_DisassemblerFlags(t *testing.T) {
	thumb := Descriptor{Triple: "thumbv7m-none-eabi", Arch: "arm", Endian: Little}
	require.Equal(t, []string{"--triple", "thumbv7m-none-eabi"}, thumb.DisassemblerFlags())

	x86 := Descriptor{Triple: "x86_64-unknown-linux-gnu", Arch: "x86_64", Endian: Little}
	require.Equal(t, []string{"--arch-name=x86-64"}, x86.DisassemblerFlags())
}

func TestNewDescriptor_Incomplete(t *testing.T) {
	_, err := NewDescriptor("t", toolchain.Cfg{Endian: "little"})
	require.Error(t, err)
	_, err = NewDescriptor("t", toolchain.Cfg{Arch: "arm", Endian: "middle"})
	require.Error(t, err)
	_, err = NewDescriptor("", toolchain.Cfg{Arch: "arm", Endian: "little"})
	require.Error(t, err)
}

func TestResolve_ProductInTargetTriple(t *testing.T) {
	fake := newFake()
	r := NewResolver(fake)
	d, err := r.Resolve(context.Background(), Request{
		Product:   &build.Product{Executable: "/ws/target/thumbv7m-none-eabi/debug/app"},
		TargetDir: "/ws/target",
	})
	require.NoError(t, err)
	require.Equal(t, "thumbv7m-none-eabi", d.Triple)
	require.Equal(t, Little, d.Endian)
	require.Equal(t, "thumb", d.LLVMArch())
	require.Zero(t, fake.hostCalls)
}

func TestResolve_ProductInProfileDirUsesHost(t *testing.T) {
	fake := newFake()
	r := NewResolver(fake)
	for _, path := range []string{"/ws/target/debug/app", "/ws/target/release/app", "/ws/target/profiling/app"} {
		d, err := r.Resolve(context.Background(), Request{
			Product:   &build.Product{Executable: path},
			TargetDir: "/ws/target",
			Profile:   "profiling",
		})
		require.NoError(t, err, path)
		require.Equal(t, "x86_64-unknown-linux-gnu", d.Triple)
		require.Equal(t, "x86-64", d.LLVMArch())
	}
	// The host is queried fresh for every resolution.
	require.Equal(t, 3, fake.hostCalls)
}

func TestResolve_ProductWinsOverExplicit(t *testing.T) {
	d, err := NewResolver(newFake()).Resolve(context.Background(), Request{
		Explicit:  "mips-unknown-linux-gnu",
		Product:   &build.Product{Filenames: []string{"/ws/target/aarch64-unknown-none/release/libapp.rlib"}},
		TargetDir: "/ws/target",
	})
	require.NoError(t, err)
	require.Equal(t, "aarch64-unknown-none", d.Triple)
}

func TestResolve_ProductOutsideTargetDir(t *testing.T) {
	_, err := NewResolver(newFake()).Resolve(context.Background(), Request{
		Product:   &build.Product{Executable: "/elsewhere/app"},
		TargetDir: "/ws/target",
	})
	require.True(t, stdErrors.Is(err, ErrResolution))
	require.True(t, errors.IsCategory(err, errors.CategoryToolchain))
}

func TestResolve_Explicit(t *testing.T) {
	fake := newFake()
	d, err := NewResolver(fake).Resolve(context.Background(), Request{Explicit: "mips-unknown-linux-gnu"})
	require.NoError(t, err)
	require.Equal(t, Big, d.Endian)
	require.Equal(t, "mips", d.LLVMArch())
	require.Equal(t, []string{"mips-unknown-linux-gnu"}, fake.cfgCalls)
}

func TestResolve_UnknownTarget(t *testing.T) {
	_, err := NewResolver(newFake()).Resolve(context.Background(), Request{Explicit: "bogus"})
	require.True(t, stdErrors.Is(err, ErrResolution))
}

func TestResolve_MissingEndian(t *testing.T) {
	_, err := NewResolver(newFake()).Resolve(context.Background(), Request{Explicit: "no-endian"})
	require.True(t, stdErrors.Is(err, ErrResolution))
}

func TestResolve_ProductOfCustomTargetFromConfig(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "config.toml", "[build]\ntarget = \"specs/my-board.json\"\n")
	spec := filepath.Join(root, "specs", "my-board.json")

	fake := newFake()
	fake.cfgs[spec] = toolchain.Cfg{Arch: "arm", Endian: "little"}
	r := NewResolver(fake)

	d, err := r.Resolve(context.Background(), Request{
		Product:       &build.Product{Executable: filepath.Join(root, "target", "my-board", "debug", "app")},
		TargetDir:     filepath.Join(root, "target"),
		WorkspaceRoot: root,
	})
	require.NoError(t, err)
	require.Equal(t, "my-board", d.Triple)
	require.Equal(t, []string{spec}, fake.cfgCalls)

	// A product under a plain triple still ignores the configured spec.
	fake.cfgCalls = nil
	d, err = r.Resolve(context.Background(), Request{
		Product:       &build.Product{Executable: filepath.Join(root, "target", "thumbv7m-none-eabi", "debug", "app")},
		TargetDir:     filepath.Join(root, "target"),
		WorkspaceRoot: root,
	})
	require.NoError(t, err)
	require.Equal(t, "thumbv7m-none-eabi", d.Triple)
	require.Equal(t, []string{"thumbv7m-none-eabi"}, fake.cfgCalls)
}

func TestResolve_ConfigThenHost(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "crates", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	fake := newFake()
	r := NewResolver(fake)

	d, err := r.Resolve(context.Background(), Request{WorkspaceRoot: nested})
	require.NoError(t, err)
	require.Equal(t, "x86_64-unknown-linux-gnu", d.Triple)
	require.Equal(t, 1, fake.hostCalls)

	writeConfig(t, root, "config.toml", "[build]\ntarget = \"thumbv7m-none-eabi\"\n")
	d, err = r.Resolve(context.Background(), Request{WorkspaceRoot: nested})
	require.NoError(t, err)
	require.Equal(t, "thumbv7m-none-eabi", d.Triple)
	require.Equal(t, 1, fake.hostCalls)
}

func TestFindConfigTarget(t *testing.T) {
	t.Run("legacy name", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, "config", "[target.thumbv7m-none-eabi]\nrunner = \"gdb\"\n\n[build]\ntarget = \"thumbv7m-none-eabi\"\n")
		got, path, err := FindConfigTarget(root)
		require.NoError(t, err)
		require.Equal(t, "thumbv7m-none-eabi", got)
		require.Equal(t, filepath.Join(root, ".cargo", "config"), path)
	})

	t.Run("no build section keeps searching", func(t *testing.T) {
		root := t.TempDir()
		child := filepath.Join(root, "child")
		require.NoError(t, os.MkdirAll(child, 0o755))
		writeConfig(t, child, "config.toml", "[target.thumbv7m-none-eabi]\nrunner = \"gdb\"\n")
		writeConfig(t, root, "config.toml", "[build]\ntarget = \"riscv32imac-unknown-none-elf\"\n")
		got, _, err := FindConfigTarget(child)
		require.NoError(t, err)
		require.Equal(t, "riscv32imac-unknown-none-elf", got)
	})

	t.Run("array takes first", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, "config.toml", "[build]\ntarget = [\"aarch64-unknown-none\", \"x86_64-unknown-linux-gnu\"]\n")
		got, _, err := FindConfigTarget(root)
		require.NoError(t, err)
		require.Equal(t, "aarch64-unknown-none", got)
	})

	t.Run("relative json spec", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, "config.toml", "[build]\ntarget = \"specs/custom.json\"\n")
		got, _, err := FindConfigTarget(root)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(root, "specs", "custom.json"), got)
		require.Equal(t, "custom", TripleName(got))
	})

	t.Run("invalid toml", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, "config.toml", "[build\n")
		_, path, err := FindConfigTarget(root)
		require.Error(t, err)
		require.Equal(t, filepath.Join(root, ".cargo", "config.toml"), path)
	})
}

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".cargo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cargo", name), []byte(content), 0o600))
}
