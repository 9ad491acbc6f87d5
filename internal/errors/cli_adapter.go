package errors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FallbackExitCode is used for every failure that is not a child's own exit code.
const FallbackExitCode = 101

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// WithOutput redirects user-facing messages (stderr by default).
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	a.out = w
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var status *ExitStatus
	if stdErrors.As(err, &status) {
		return status.ExitCode()
	}
	return FallbackExitCode
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	prefix := color.New(color.FgRed, color.Bold).Sprint("error:")

	var be *BinutilsError
	if !stdErrors.As(err, &be) {
		return fmt.Sprintf("%s %v", prefix, err)
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(' ')
	b.WriteString(be.Message)
	if be.Cause != nil && (a.verbose || be.Category != CategoryBuild) {
		fmt.Fprintf(&b, ": %v", be.Cause)
	}
	if be.Hint != "" {
		b.WriteString("\n\n")
		b.WriteString(be.Hint)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Handle prints err (unless it is a pass-through exit status) and returns
// the exit code; main passes it to os.Exit.
func (a *CLIErrorAdapter) Handle(err error) int {
	if err == nil {
		return 0
	}
	code := a.ExitCodeFor(err)
	var status *ExitStatus
	if stdErrors.As(err, &status) {
		return code
	}
	if a.shouldLog(err) {
		a.logError(err)
	}
	fmt.Fprintln(a.out, a.FormatError(err))
	return code
}

// shouldLog determines if an error should be logged in addition to being printed.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}
	return GetCategory(err) == CategoryInternal
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	var be *BinutilsError
	if stdErrors.As(err, &be) {
		attrs := []slog.Attr{
			slog.String("category", string(be.Category)),
			slog.String("severity", string(be.Severity)),
		}
		for k, v := range be.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if be.Cause != nil {
			attrs = append(attrs, slog.String("cause", be.Cause.Error()))
		}
		a.logger.LogAttrs(context.Background(), a.slogLevel(be.Severity), be.Message, attrs...)
		return
	}
	a.logger.Error("Unclassified error", "error", err)
}

// slogLevel converts BinutilsError severity to slog level.
func (a *CLIErrorAdapter) slogLevel(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
