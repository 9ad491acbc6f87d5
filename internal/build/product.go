package build

// Kind is the category of a compiled artifact. Values other than the named
// constants are kept verbatim from cargo.
type Kind string

const (
	KindBinary            Kind = "binary"
	KindExample           Kind = "example"
	KindTest              Kind = "test"
	KindBench             Kind = "bench"
	KindLibrary           Kind = "library"
	KindCustomBuildScript Kind = "custom-build-script"
)

// KindFromCargo maps the first entry of cargo's target.kind list.
func KindFromCargo(kinds []string) Kind {
	if len(kinds) == 0 {
		return ""
	}
	switch k := kinds[0]; k {
	case "bin":
		return KindBinary
	case "example":
		return KindExample
	case "test":
		return KindTest
	case "bench":
		return KindBench
	case "custom-build":
		return KindCustomBuildScript
	case "lib", "rlib", "dylib", "cdylib", "staticlib", "proc-macro":
		return KindLibrary
	default:
		return Kind(k)
	}
}

// Product is one compiled output unit reported by the build.
type Product struct {
	PackageID  string   `json:"package_id" yaml:"package_id"`
	Kind       Kind     `json:"kind" yaml:"kind"`
	Name       string   `json:"name" yaml:"name"`
	Executable string   `json:"executable,omitempty" yaml:"executable,omitempty"`
	Filenames  []string `json:"filenames" yaml:"filenames"`
}

// Path is the canonical file of the product: the executable when there is
// one, otherwise the first associated file.
func (p Product) Path() string {
	if p.Executable != "" {
		return p.Executable
	}
	if len(p.Filenames) > 0 {
		return p.Filenames[0]
	}
	return ""
}
