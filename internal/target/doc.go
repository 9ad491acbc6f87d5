// Package target resolves the compilation target of an invocation into a
// Descriptor: the target triple plus the architecture and byte order the
// LLVM tools expect.
//
// Resolution order: the location of a built product inside the target
// directory, then an explicit --target, then `[build] target` from the
// nearest .cargo/config.toml (or legacy .cargo/config), then the host.
package target
