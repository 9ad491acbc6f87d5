// Package build runs `cargo build` on behalf of a binutils front-end and
// picks the one artifact the user wants to inspect.
//
// The Classifier buckets each decoded cargo message into a candidate
// artifact, a diagnostic to relay, or noise. The Orchestrator owns the cargo
// child process: it drains the message stream while cargo is still running,
// waits for the exit status, and applies the selection policy to the
// accumulated candidates.
//
// The package defines sentinel errors for the terminal failures. They are
// always wrapped with context at the call site.
package build
