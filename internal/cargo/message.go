package cargo

import (
	"bytes"
	"encoding/json"
	"errors"
	"unicode/utf8"
)

// Message reasons emitted by `cargo build --message-format=json`.
const (
	ReasonCompilerArtifact    = "compiler-artifact"
	ReasonCompilerMessage     = "compiler-message"
	ReasonBuildScriptExecuted = "build-script-executed"
	ReasonBuildFinished       = "build-finished"
)

// ErrInvalidUTF8 is returned for a message line that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("cargo message is not valid UTF-8")

// Message is one line of cargo's JSON message stream. Only the fields for
// the reasons above are decoded.
type Message struct {
	Reason     string      `json:"reason"`
	PackageID  string      `json:"package_id"`
	Target     *Target     `json:"target,omitempty"`
	Filenames  []string    `json:"filenames,omitempty"`
	Executable *string     `json:"executable,omitempty"`
	Message    *Diagnostic `json:"message,omitempty"`
}

// Diagnostic is a compiler diagnostic; Rendered holds the human form.
type Diagnostic struct {
	Rendered *string `json:"rendered"`
}

// ParseMessage decodes one stream line. ok is false for lines that are not
// JSON objects (cargo passes some tool output through verbatim).
func ParseMessage(line []byte) (msg Message, ok bool, err error) {
	if !utf8.Valid(line) {
		return Message{}, false, ErrInvalidUTF8
	}
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Message{}, false, nil
	}
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		return Message{}, false, nil
	}
	return msg, true, nil
}
