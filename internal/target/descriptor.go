package target

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/cargo-binutils/internal/toolchain"
)

// Endian is a target byte order.
type Endian string

const (
	Little Endian = "little"
	Big    Endian = "big"
)

// Descriptor is a fully resolved compilation target. It is only ever built
// complete; see NewDescriptor.
type Descriptor struct {
	Triple string `json:"triple" yaml:"triple"`
	// Arch is the rustc spelling of the architecture (target_arch).
	Arch   string `json:"arch" yaml:"arch"`
	Endian Endian `json:"endian" yaml:"endian"`
}

// NewDescriptor validates cfg and builds the descriptor for triple.
func NewDescriptor(triple string, cfg toolchain.Cfg) (Descriptor, error) {
	if triple == "" {
		return Descriptor{}, fmt.Errorf("empty target triple")
	}
	if cfg.Arch == "" {
		return Descriptor{}, fmt.Errorf("rustc reported no target_arch for %s", triple)
	}
	var endian Endian
	switch cfg.Endian {
	case string(Little):
		endian = Little
	case string(Big):
		endian = Big
	default:
		return Descriptor{}, fmt.Errorf("rustc reported invalid target_endian %q for %s", cfg.Endian, triple)
	}
	return Descriptor{Triple: triple, Arch: cfg.Arch, Endian: endian}, nil
}

// LLVMArch is the architecture name llvm-objdump understands.
func (d Descriptor) LLVMArch() string {
	return LLVMArchName(d.Arch, d.Endian, d.Triple)
}

// IsThumb reports whether the triple belongs to the thumb family, which
// `--print cfg` cannot tell apart from arm.
func (d Descriptor) IsThumb() bool {
	return strings.HasPrefix(d.Triple, "thumb")
}

// DisassemblerFlags selects the architecture for llvm-objdump. Thumb
// targets pass the raw triple; everything else passes the mapped arch name.
func (d Descriptor) DisassemblerFlags() []string {
	if d.IsThumb() {
		return []string{"--triple", d.Triple}
	}
	return []string{"--arch-name=" + d.LLVMArch()}
}

// LLVMArchName maps a rustc target_arch to the LLVM spelling.
func LLVMArchName(arch string, endian Endian, triple string) string {
	if strings.HasPrefix(triple, "thumb") {
		if endian == Big {
			return "thumbeb"
		}
		return "thumb"
	}

	switch {
	// non standard endianness
	case arch == "aarch64" && endian == Big:
		return "aarch64_be"
	case arch == "arm" && endian == Big:
		return "armeb"
	case arch == "mips" && endian == Little:
		return "mipsel"
	case arch == "mips64" && endian == Little:
		return "mips64el"
	case arch == "powerpc64" && endian == Little:
		return "ppc64le"
	case arch == "sparc" && endian == Little:
		return "sparcel"
	}

	switch arch {
	case "powerpc":
		return "ppc32"
	case "powerpc64":
		return "ppc64"
	case "sparc64":
		return "sparcv9"
	case "s390x":
		return "systemz"
	case "x86_64":
		return "x86-64"
	default:
		return arch
	}
}
