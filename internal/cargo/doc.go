// Package cargo holds the cargo wire formats this tool consumes: the
// `cargo metadata` document, the line-delimited JSON build messages, and the
// mapping from build flags to `cargo build` arguments.
package cargo
