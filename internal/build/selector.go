package build

import "fmt"

type selectorKind int

const (
	selectAny selectorKind = iota
	selectBinary
	selectExample
	selectTest
	selectBench
	selectLibrary
	selectCustomBuildScript
)

// Selector is the user's declared target: a named binary, example, test or
// bench, the library, the build script, or Any when nothing was narrowed.
// The zero value is Any.
type Selector struct {
	kind selectorKind
	name string
}

func Any() Selector { return Selector{kind: selectAny} }
func Binary(name string) Selector { return Selector{kind: selectBinary, name: name} }
func Example(name string) Selector { return Selector{kind: selectExample, name: name} }
func Test(name string) Selector { return Selector{kind: selectTest, name: name} }
func Bench(name string) Selector { return Selector{kind: selectBench, name: name} }
func Library() Selector { return Selector{kind: selectLibrary} }
func CustomBuildScript() Selector { return Selector{kind: selectCustomBuildScript} }
func (s Selector) IsAny() bool { return s.kind == selectAny }
func (s Selector) Name() string { return s.name }

// Matches reports whether p is what the selector asks for.
func (s Selector) Matches(p Product) bool {
	switch s.kind {
	case selectBinary:
		return p.Kind == KindBinary && p.Name == s.name
	case selectExample:
		return p.Kind == KindExample && p.Name == s.name
	case selectTest:
		return p.Kind == KindTest && p.Name == s.name
	case selectBench:
		return p.Kind == KindBench && p.Name == s.name
	case selectLibrary:
		switch p.Kind {
		case KindBinary, KindExample, KindTest, KindBench, KindCustomBuildScript:
			return false
		}
		return true
	case selectCustomBuildScript:
		return p.Kind == KindCustomBuildScript
	default:
		// Build scripts and libraries are deliberately not picked up when
		// the user did not narrow the target.
		return p.Kind == KindBinary || p.Kind == KindExample
	}
}

// Args returns the cargo target-selection flags for the selector.
func (s Selector) Args() []string {
	switch s.kind {
	case selectBinary:
		return []string{"--bin", s.name}
	case selectExample:
		return []string{"--example", s.name}
	case selectTest:
		return []string{"--test", s.name}
	case selectBench:
		return []string{"--bench", s.name}
	case selectLibrary:
		return []string{"--lib"}
	default:
		return nil
	}
}

func (s Selector) String() string {
	switch s.kind {
	case selectBinary:
		return fmt.Sprintf("binary %q", s.name)
	case selectExample:
		return fmt.Sprintf("example %q", s.name)
	case selectTest:
		return fmt.Sprintf("test %q", s.name)
	case selectBench:
		return fmt.Sprintf("bench %q", s.name)
	case selectLibrary:
		return "library"
	case selectCustomBuildScript:
		return "build script"
	default:
		return "any binary or example"
	}
}

// SelectorFor returns the selector that picks exactly p, used to render
// disambiguating command lines.
func SelectorFor(p Product) Selector {
	switch p.Kind {
	case KindBinary:
		return Binary(p.Name)
	case KindExample:
		return Example(p.Name)
	case KindTest:
		return Test(p.Name)
	case KindBench:
		return Bench(p.Name)
	case KindCustomBuildScript:
		return CustomBuildScript()
	default:
		return Library()
	}
}
