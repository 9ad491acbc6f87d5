package build

// State is the lifecycle position of one Build call.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateDraining
	StateCompletedSuccess
	StateCompletedFailure
	StateFailedSpawn
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateCompletedSuccess:
		return "completed_success"
	case StateCompletedFailure:
		return "completed_failure"
	case StateFailedSpawn:
		return "failed_spawn"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateCompletedSuccess || s == StateCompletedFailure || s == StateFailedSpawn
}
