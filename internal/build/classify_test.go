package build

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cargo-binutils/internal/cargo"
)

func TestKindFromCargo(t *testing.T) {
	cases := map[string]Kind{
		"bin":          KindBinary,
		"example":      KindExample,
		"test":         KindTest,
		"bench":        KindBench,
		"custom-build": KindCustomBuildScript,
		"lib":          KindLibrary,
		"cdylib":       KindLibrary,
		"proc-macro":   KindLibrary,
		"wasm-thing":   Kind("wasm-thing"),
	}
	for in, want := range cases {
		require.Equal(t, want, KindFromCargo([]string{in}), in)
	}
	require.Equal(t, Kind(""), KindFromCargo(nil))
}

func TestSelector_Matches(t *testing.T) {
	bin := Product{Kind: KindBinary, Name: "app"}
	example := Product{Kind: KindExample, Name: "demo"}
	lib := Product{Kind: KindLibrary, Name: "app"}
	other := Product{Kind: Kind("wasm-thing"), Name: "x"}
	script := Product{Kind: KindCustomBuildScript, Name: "build-script-build"}

	tests := []struct {
		name string
		sel  Selector
		p    Product
		want bool
	}{
		{"binary by name", Binary("app"), bin, true},
		{"binary wrong name", Binary("other"), bin, false},
		{"binary wrong kind", Binary("app"), lib, false},
		{"example by name", Example("demo"), example, true},
		{"library matches lib", Library(), lib, true},
		{"library matches open-ended kinds", Library(), other, true},
		{"library rejects binary", Library(), bin, false},
		{"library rejects build script", Library(), script, false},
		{"any matches binary", Any(), bin, true},
		{"any matches example", Any(), example, true},
		{"any rejects library", Any(), lib, false},
		{"any rejects build script", Any(), script, false},
		{"build script selector", CustomBuildScript(), script, true},
		{"zero value is any", Selector{}, bin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.sel.Matches(tt.p))
		})
	}
}

func TestSelector_Args(t *testing.T) {
	require.Nil(t, Any().Args())
	require.Equal(t, []string{"--bin", "app"}, Binary("app").Args())
	require.Equal(t, []string{"--example", "demo"}, Example("demo").Args())
	require.Equal(t, []string{"--test", "it"}, Test("it").Args())
	require.Equal(t, []string{"--bench", "b"}, Bench("b").Args())
	require.Equal(t, []string{"--lib"}, Library().Args())
}

func TestClassifier(t *testing.T) {
	rendered := "warning: unused variable\n"
	members := func(id string) bool { return id == "app 0.1.0" }
	c := Classifier{Members: members, Selector: Any()}

	t.Run("candidate from member", func(t *testing.T) {
		ev := Event{Type: EventProductCompiled, Product: &Product{PackageID: "app 0.1.0", Kind: KindBinary, Name: "app"}}
		got := c.Classify(ev)
		require.Equal(t, Candidate, got.Kind)
		require.Equal(t, "app", got.Product.Name)
	})

	t.Run("dependency ignored", func(t *testing.T) {
		ev := Event{Type: EventProductCompiled, Product: &Product{PackageID: "serde 1.0.0", Kind: KindBinary, Name: "serde"}}
		require.Equal(t, Ignore, c.Classify(ev).Kind)
	})

	t.Run("non-matching kind ignored", func(t *testing.T) {
		ev := Event{Type: EventProductCompiled, Product: &Product{PackageID: "app 0.1.0", Kind: KindLibrary, Name: "app"}}
		require.Equal(t, Ignore, c.Classify(ev).Kind)
	})

	t.Run("diagnostic with text", func(t *testing.T) {
		got := c.Classify(Event{Type: EventDiagnostic, Rendered: &rendered})
		require.Equal(t, DiagnosticText, got.Kind)
		require.Equal(t, rendered, got.Text)
	})

	t.Run("diagnostic without text", func(t *testing.T) {
		require.Equal(t, Ignore, c.Classify(Event{Type: EventDiagnostic}).Kind)
	})

	t.Run("other", func(t *testing.T) {
		require.Equal(t, Ignore, c.Classify(Event{Type: EventOther}).Kind)
	})

	t.Run("nil members accepts all", func(t *testing.T) {
		all := Classifier{Selector: Binary("serde")}
		ev := Event{Type: EventProductCompiled, Product: &Product{PackageID: "serde 1.0.0", Kind: KindBinary, Name: "serde"}}
		require.Equal(t, Candidate, all.Classify(ev).Kind)
	})
}

func TestShowDiagnostics(t *testing.T) {
	require.True(t, ShowDiagnostics(false, 0))
	require.False(t, ShowDiagnostics(true, 0))
	require.False(t, ShowDiagnostics(true, 1))
	require.True(t, ShowDiagnostics(true, 2))
}

func TestEventFromMessage(t *testing.T) {
	exe := "/t/debug/app"
	ev := EventFromMessage(cargo.Message{
		Reason:     cargo.ReasonCompilerArtifact,
		PackageID:  "app 0.1.0",
		Target:     &cargo.Target{Kind: []string{"bin"}, Name: "app"},
		Filenames:  []string{exe},
		Executable: &exe,
	})
	require.Equal(t, EventProductCompiled, ev.Type)
	require.Equal(t, exe, ev.Product.Path())
	require.Equal(t, KindBinary, ev.Product.Kind)

	require.Equal(t, EventOther, EventFromMessage(cargo.Message{Reason: cargo.ReasonBuildFinished}).Type)
	require.Equal(t, EventDiagnostic, EventFromMessage(cargo.Message{Reason: cargo.ReasonCompilerMessage}).Type)
}

func TestProduct_Path(t *testing.T) {
	require.Equal(t, "/t/debug/libapp.rlib", Product{Filenames: []string{"/t/debug/libapp.rlib", "/t/debug/libapp.rmeta"}}.Path())
	require.Equal(t, "", Product{}.Path())
}

func TestAmbiguousError_Listing(t *testing.T) {
	t.Run("single package", func(t *testing.T) {
		e := &AmbiguousError{Tool: "objdump", Candidates: []Product{
			{PackageID: "app", Kind: KindBinary, Name: "one"},
			{PackageID: "app", Kind: KindExample, Name: "demo"},
		}}
		require.Equal(t, "    cargo objdump --bin one\n    cargo objdump --example demo\n", e.Listing())
	})

	t.Run("grouped by package", func(t *testing.T) {
		names := map[string]string{"id-b": "beta", "id-a": "alpha"}
		e := &AmbiguousError{
			Tool: "size",
			Candidates: []Product{
				{PackageID: "id-b", Kind: KindBinary, Name: "b"},
				{PackageID: "id-a", Kind: KindBinary, Name: "a"},
			},
			PackageName: func(id string) string { return names[id] },
		}
		want := "  package `alpha`:\n" +
			"      cargo size --bin a --package alpha\n" +
			"  package `beta`:\n" +
			"      cargo size --bin b --package beta\n"
		require.Equal(t, want, e.Listing())
	})

	t.Run("build scripts are not offered as commands", func(t *testing.T) {
		names := map[string]string{"id-a": "alpha", "id-b": "beta"}
		e := &AmbiguousError{
			Tool: "nm",
			Candidates: []Product{
				{PackageID: "id-a", Kind: KindCustomBuildScript, Name: "build-script-build"},
				{PackageID: "id-b", Kind: KindCustomBuildScript, Name: "build-script-build"},
			},
			PackageName: func(id string) string { return names[id] },
		}
		want := "  package `alpha`:\n" +
			"      build script `build-script-build` of package `alpha` (not selectable from the command line)\n" +
			"  package `beta`:\n" +
			"      build script `build-script-build` of package `beta` (not selectable from the command line)\n"
		require.Equal(t, want, e.Listing())
		require.NotContains(t, e.Listing(), "cargo nm")
	})
}
