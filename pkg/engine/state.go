package engine

// State is a phase of the generational loop.
type State int

const (
	Initialized State = iota
	Evaluating
	Selecting
	Recombining
	Terminated
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Evaluating:
		return "evaluating"
	case Selecting:
		return "selecting"
	case Recombining:
		return "recombining"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// next lists the legal successors of every state.
var next = map[State][]State{
	Initialized: {Evaluating, Terminated},
	Evaluating:  {Selecting, Terminated},
	Selecting:   {Recombining},
	Recombining: {Evaluating},
}

// CanTransition reports whether the loop may move from one state to another.
func CanTransition(from, to State) bool {
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StopReason records why a run terminated.
type StopReason string

const (
	StopMaxGenerations StopReason = "max_generations"
	StopConverged      StopReason = "converged"
	StopEmptyPool      StopReason = "empty_pool"
)
