package narrate

// StateType represents the current state of the reader.
type StateType int

const (
	// StateInactive indicates the reader is off and listening to nothing.
	StateInactive StateType = iota
	// StateActive indicates the reader is narrating focus and hover events.
	StateActive
	// StateClosed indicates the reader has been shut down for good.
	StateClosed
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// stateMachine manages reader state transitions.
type stateMachine struct {
	current     StateType
	transitions map[StateType][]StateType
	onEnter     map[StateType]func()
	onExit      map[StateType]func()
}

func newStateMachine() *stateMachine {
	return &stateMachine{
		current: StateInactive,
		transitions: map[StateType][]StateType{
			StateInactive: {StateActive, StateClosed},
			StateActive:   {StateInactive, StateClosed},
			StateClosed:   {},
		},
		onEnter: make(map[StateType]func()),
		onExit:  make(map[StateType]func()),
	}
}

// transition attempts to move to the specified state. Invalid transitions,
// self-transitions included, return false and run no callbacks.
func (sm *stateMachine) transition(to StateType) bool {
	valid := false
	for _, state := range sm.transitions[sm.current] {
		if state == to {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}

	if exitFn := sm.onExit[sm.current]; exitFn != nil {
		exitFn()
	}
	sm.current = to
	if enterFn := sm.onEnter[to]; enterFn != nil {
		enterFn()
	}
	return true
}

// state returns the current state.
func (sm *stateMachine) state() StateType {
	return sm.current
}
