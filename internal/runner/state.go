package runner

// State is the lifecycle phase of a Runner.
type State int

const (
	StateLoading    State = iota // Resolving the test
	StateInProgress              // Accepting answers
	StateCompleted               // Finished; review only
	StateNotFound                // Test missing or malformed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
