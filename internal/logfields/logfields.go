package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyInvocationID = "invocation_id"
	KeyTool         = "tool"
	KeyTarget       = "target"
	KeyPackageID    = "package_id"
	KeyArtifact     = "artifact"
	KeySelector     = "selector"
	KeyState        = "state"
	KeyStage        = "stage"
	KeyExitCode     = "exit_code"
	KeyCandidates   = "candidates"
	KeyCommand      = "command"
	KeyPath         = "path"
	KeyDurationMS   = "duration_ms"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func InvocationID(id string) slog.Attr { return slog.String(KeyInvocationID, id) }
func Tool(name string) slog.Attr       { return slog.String(KeyTool, name) }
func Target(triple string) slog.Attr   { return slog.String(KeyTarget, triple) }
func PackageID(id string) slog.Attr    { return slog.String(KeyPackageID, id) }
func Artifact(path string) slog.Attr   { return slog.String(KeyArtifact, path) }
func Selector(s string) slog.Attr      { return slog.String(KeySelector, s) }
func State(s string) slog.Attr         { return slog.String(KeyState, s) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func ExitCode(code int) slog.Attr      { return slog.Int(KeyExitCode, code) }
func Candidates(n int) slog.Attr       { return slog.Int(KeyCandidates, n) }
func Command(c string) slog.Attr       { return slog.String(KeyCommand, c) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
