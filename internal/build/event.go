package build

import "git.home.luguber.info/inful/cargo-binutils/internal/cargo"

// EventType tags a build Event.
type EventType int

const (
	EventOther EventType = iota
	EventProductCompiled
	EventDiagnostic
)

// Event is one decoded entry of the build progress stream.
type Event struct {
	Type EventType
	// Product is set for EventProductCompiled.
	Product *Product
	// Rendered is the displayable diagnostic text, when cargo provided one.
	Rendered *string
}

// EventFromMessage converts a cargo JSON message.
func EventFromMessage(msg cargo.Message) Event {
	switch msg.Reason {
	case cargo.ReasonCompilerArtifact:
		if msg.Target == nil {
			return Event{Type: EventOther}
		}
		p := &Product{
			PackageID: msg.PackageID,
			Kind:      KindFromCargo(msg.Target.Kind),
			Name:      msg.Target.Name,
			Filenames: msg.Filenames,
		}
		if msg.Executable != nil {
			p.Executable = *msg.Executable
		}
		return Event{Type: EventProductCompiled, Product: p}
	case cargo.ReasonCompilerMessage:
		ev := Event{Type: EventDiagnostic}
		if msg.Message != nil {
			ev.Rendered = msg.Message.Rendered
		}
		return ev
	default:
		return Event{Type: EventOther}
	}
}
