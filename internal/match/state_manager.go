package match

// MatchState is the phase of the overall match.
type MatchState int

const (
	MatchStateInitial MatchState = iota
	MatchStateFirstHalf
	MatchStateHalfTime
	MatchStateSecondHalf
	MatchStateExtraTime
	MatchStatePenaltyShootout
	MatchStateEnd
)

func (s MatchState) String() string {
	switch s {
	case MatchStateInitial:
		return "initial"
	case MatchStateFirstHalf:
		return "first_half"
	case MatchStateHalfTime:
		return "half_time"
	case MatchStateSecondHalf:
		return "second_half"
	case MatchStateExtraTime:
		return "extra_time"
	case MatchStatePenaltyShootout:
		return "penalty_shootout"
	default:
		return "end"
	}
}

// IsPlayable reports whether ticks run in this phase.
func (s MatchState) IsPlayable() bool {
	return s == MatchStateFirstHalf || s == MatchStateSecondHalf || s == MatchStateExtraTime
}

// StateManager sequences the match phases. Extra time and penalties are
// reserved phases for cup formats; league play goes straight to End.
type StateManager struct {
	current MatchState
}

func NewStateManager() *StateManager {
	return &StateManager{current: MatchStateInitial}
}

func (m *StateManager) Current() MatchState {
	return m.current
}

// Advance moves to the next phase and returns it.
func (m *StateManager) Advance() MatchState {
	switch m.current {
	case MatchStateInitial:
		m.current = MatchStateFirstHalf
	case MatchStateFirstHalf:
		m.current = MatchStateHalfTime
	case MatchStateHalfTime:
		m.current = MatchStateSecondHalf
	case MatchStateSecondHalf:
		m.current = MatchStateEnd
	case MatchStateExtraTime:
		m.current = MatchStatePenaltyShootout
	case MatchStatePenaltyShootout:
		m.current = MatchStateEnd
	default:
		m.current = MatchStateEnd
	}
	return m.current
}
