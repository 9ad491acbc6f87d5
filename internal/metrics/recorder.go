package metrics

import "time"

// BuildOutcomeLabel enumerates how a cargo build ended.
type BuildOutcomeLabel string

const (
	OutcomeSelected   BuildOutcomeLabel = "selected"
	OutcomeFailed     BuildOutcomeLabel = "failed"
	OutcomeNoMatch    BuildOutcomeLabel = "no_match"
	OutcomeAmbiguous  BuildOutcomeLabel = "ambiguous"
	OutcomeSpawnError BuildOutcomeLabel = "spawn_error"
)

// Recorder defines observability hooks for one invocation.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetBuildCandidates(n int)
	ObserveToolDuration(tool string, d time.Duration)
	IncToolExit(tool string, code int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel) {}
func (NoopRecorder) SetBuildCandidates(int) {}
func (NoopRecorder) ObserveToolDuration(string, time.Duration) {}
func (NoopRecorder) IncToolExit(string, int) {}
