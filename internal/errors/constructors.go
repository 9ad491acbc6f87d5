package errors

// Convenience functions for common error patterns

// Config errors

func ConfigInvalid(path string, cause error) *BinutilsError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "invalid cargo configuration").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *BinutilsError {
	return New(CategoryValidation, SeverityFatal, reason).
		WithContext("field", field)
}

// Toolchain errors

func ResolutionFailed(target string, cause error) *BinutilsError {
	msg := "could not determine the compilation target"
	if target != "" {
		msg = "could not query target `" + target + "`"
	}
	return Wrap(cause, CategoryToolchain, SeverityFatal, msg).
		WithContext("target", target).
		WithHint("Make sure `rustc` is on your PATH (or set RUSTC) and that the target is installed, e.g. `rustup target add <target>`.")
}

func MetadataFailed(cause error) *BinutilsError {
	return Wrap(cause, CategoryToolchain, SeverityFatal, "failed to read the cargo workspace metadata").
		WithHint("Run the command inside a Cargo project or pass --manifest-path.")
}

// Build errors

// BuildFailed reports a failed cargo build; rerun is the command line the
// user can run to see cargo's verbose output.
func BuildFailed(command, rerun string, cause error) *BinutilsError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "failed to run `cargo build`").
		WithContext("command", command).
		WithHint("Re-run the build directly with verbose output to see what went wrong:\n    " + rerun)
}

func NoMatchingTargets(selector string, cause error) *BinutilsError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "could not determine the wanted artifact").
		WithContext("selector", selector).
		WithHint("The build produced no " + selector + ". Use --bin, --example, --test, --bench or --lib to pick one.")
}

func AmbiguousTargets(listing string, cause error) *BinutilsError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "can only have one matching artifact but found several").
		WithHint("Re-run with one of:\n" + listing)
}

// Invocation errors

func ToolNotFound(tool, path string, cause error) *BinutilsError {
	return Wrap(cause, CategoryInvocation, SeverityFatal, "could not find the llvm `"+tool+"` tool").
		WithContext("path", path).
		WithHint("Expected it at " + path + ".\nInstall it with `rustup component add llvm-tools` (or `llvm-tools-preview` on older toolchains).")
}

func SpawnFailed(command string, cause error) *BinutilsError {
	return Wrap(cause, CategoryInvocation, SeverityFatal, "failed to execute `"+command+"`").
		WithContext("command", command)
}

// Internal errors

func InternalError(message string, cause error) *BinutilsError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
