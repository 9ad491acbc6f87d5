// Package postprocess rewrites LLVM tool output for readability. Output that
// is not valid UTF-8 is returned untouched.
package postprocess

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ianlancetaylor/demangle"
)

// Filter transforms captured tool output.
type Filter func([]byte) []byte

// symbolPattern matches legacy (_ZN...E) and v0 (_R...) mangled Rust symbols.
var symbolPattern = regexp.MustCompile(`_Z.+?E\b|_R[0-9A-Za-z_]+`)

// Demangle replaces every mangled Rust symbol in out with its readable form.
// Symbols the demangler rejects are left as they are.
func Demangle(out []byte) []byte {
	if !utf8.Valid(out) {
		return out
	}
	return symbolPattern.ReplaceAllFunc(out, func(sym []byte) []byte {
		return []byte(demangle.Filter(string(sym)))
	})
}

// SizeHex rewrites the address column of `size -A` output in hexadecimal.
// Section lines look like ".text  1024  4096"; the third field is the
// address. The hex value stays right-aligned with the original column.
func SizeHex(out []byte) []byte {
	if !utf8.Valid(out) || len(out) == 0 {
		return out
	}
	text := strings.TrimSuffix(string(out), "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		lines[i] = hexAddress(line)
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

func hexAddress(line string) string {
	if !strings.HasPrefix(line, ".") {
		return line
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return line
	}
	needle := fields[2]
	addr, err := strconv.ParseUint(needle, 10, 64)
	if err != nil {
		return line
	}
	pos := strings.LastIndex(line, needle)
	hex := fmt.Sprintf("%#x", addr)
	end := pos + len(needle)
	start := end - len(hex)
	if start < 1 || strings.TrimSpace(line[start-1:pos]) != "" {
		// Not enough padding to keep the column; widen instead.
		start = pos
	}
	return line[:start] + hex + line[end:]
}
