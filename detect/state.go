package detect

// State is the detection cycle lifecycle state.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateAwaitingVerdict
	StateEvaluating
	StateAccepted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateArmed:
		return "ARMED"
	case StateAwaitingVerdict:
		return "AWAITING_VERDICT"
	case StateEvaluating:
		return "EVALUATING"
	case StateAccepted:
		return "ACCEPTED"
	default:
		return "UNKNOWN"
	}
}
