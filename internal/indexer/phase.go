package indexer

// Phase is a Sync Controller state.
type Phase int32

const (
	PhaseStarting Phase = iota
	PhaseHistorical
	PhaseLive
	PhaseShuttingDown
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseHistorical:
		return "historical"
	case PhaseLive:
		return "live"
	case PhaseShuttingDown:
		return "shutting_down"
	default:
		return "unknown"
	}
}

// validTransitions lists the phases reachable from each phase. ShuttingDown is terminal.
var validTransitions = map[Phase][]Phase{
	PhaseStarting:   {PhaseHistorical, PhaseShuttingDown},
	PhaseHistorical: {PhaseLive, PhaseShuttingDown},
	PhaseLive:       {PhaseShuttingDown},
}

// CanTransition reports whether the controller may move from one phase to another.
func CanTransition(from, to Phase) bool {
	for _, target := range validTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}
