package postprocess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDemangle(t *testing.T) {
	in := []byte("0000000000001130 T _ZN4core3fmt5write17h0123456789abcdefE\n0000000000001200 T main\n")
	out := string(Demangle(in))
	require.Contains(t, out, "core::fmt::write")
	require.NotContains(t, out, "_ZN4core")
	require.Contains(t, out, "0000000000001200 T main\n")
}

func TestDemangle_LeavesUnknownSymbols(t *testing.T) {
	in := []byte("call _ZN99shortE here\n")
	require.Equal(t, string(in), string(Demangle(in)))
}

func TestDemangle_InvalidUTF8(t *testing.T) {
	in := []byte{0xff, '_', 'Z', 'N', 'E'}
	require.Equal(t, in, Demangle(in))
}

func TestSizeHex(t *testing.T) {
	in := "app  :\n" +
		"section            size        addr\n" +
		".text              1024      135168\n" +
		".data                16     1048576\n" +
		"Total              1040\n"
	want := "app  :\n" +
		"section            size        addr\n" +
		".text              1024     0x21000\n" +
		".data                16    0x100000\n" +
		"Total              1040\n"
	require.Equal(t, want, string(SizeHex([]byte(in))))
}

func TestSizeHex_NoTrailingNewline(t *testing.T) {
	require.Equal(t, ".bss  8  0x10\n", string(SizeHex([]byte(".bss  8  16"))))
}

func TestSizeHex_NarrowColumnWidens(t *testing.T) {
	require.Equal(t, ".a 1 0x0\n", string(SizeHex([]byte(".a 1 0\n"))))
}

func TestSizeHex_UntouchedInput(t *testing.T) {
	require.Empty(t, SizeHex(nil))
	bad := []byte{0xff, 0xfe}
	require.Equal(t, bad, SizeHex(bad))
}
