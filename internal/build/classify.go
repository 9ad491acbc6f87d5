package build

// ClassificationKind buckets an Event.
type ClassificationKind int

const (
	Ignore ClassificationKind = iota
	Candidate
	DiagnosticText
)

// Classification is the outcome of classifying one Event.
type Classification struct {
	Kind    ClassificationKind
	Product Product
	Text    string
}

// Classifier decides which build events matter for the current request.
type Classifier struct {
	// Members reports whether a package id belongs to the requested
	// workspace members. A nil Members accepts every package.
	Members  func(packageID string) bool
	Selector Selector
}

// Classify is pure: it has no side effects and depends only on ev.
func (c Classifier) Classify(ev Event) Classification {
	switch ev.Type {
	case EventProductCompiled:
		if ev.Product == nil {
			return Classification{Kind: Ignore}
		}
		if c.Members != nil && !c.Members(ev.Product.PackageID) {
			return Classification{Kind: Ignore}
		}
		if !c.Selector.Matches(*ev.Product) {
			return Classification{Kind: Ignore}
		}
		return Classification{Kind: Candidate, Product: *ev.Product}
	case EventDiagnostic:
		if ev.Rendered == nil {
			return Classification{Kind: Ignore}
		}
		return Classification{Kind: DiagnosticText, Text: *ev.Rendered}
	default:
		return Classification{Kind: Ignore}
	}
}

// ShowDiagnostics reports whether compiler diagnostics are relayed: always,
// unless quiet mode is on and verbosity is at most 1.
func ShowDiagnostics(quiet bool, verbose int) bool {
	return !quiet || verbose > 1
}
