package domain

// The payment lifecycle is a small finite state machine. PAID,
// CANCELLED, and FAILED are terminal: no outgoing edges.

// IsTerminal reports whether the status accepts no further transition.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// NextStatuses returns the states reachable from s in one transition.
func (s PaymentStatus) NextStatuses() []PaymentStatus {
	switch s {
	case StatusPending:
		return []PaymentStatus{StatusRegistered}
	case StatusRegistered:
		return []PaymentStatus{StatusPaid, StatusCancelled}
	case StatusUnknown:
		return []PaymentStatus{StatusPending}
	default:
		return nil
	}
}

// CanTransition reports whether a single transition from→to exists.
func CanTransition(from, to PaymentStatus) bool {
	for _, next := range from.NextStatuses() {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionPath returns the shortest transition sequence from→to as
// the list of intermediate states ending in to, found by breadth-first
// search over the transition table. An empty slice means unreachable;
// from==to yields an empty path as well.
func TransitionPath(from, to PaymentStatus) []PaymentStatus {
	if from == to {
		return nil
	}

	type node struct {
		status PaymentStatus
		path   []PaymentStatus
	}

	visited := map[PaymentStatus]bool{from: true}
	queue := []node{{status: from}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range current.status.NextStatuses() {
			if visited[next] {
				continue
			}
			path := append(append([]PaymentStatus{}, current.path...), next)
			if next == to {
				return path
			}
			visited[next] = true
			queue = append(queue, node{status: next, path: path})
		}
	}

	return nil
}

// Action is a named payment operation whose applicability depends on
// the current status.
type Action string

const (
	ActionPay      Action = "pay"
	ActionCancel   Action = "cancel"
	ActionRegister Action = "register"
)

var actionStates = map[Action][]PaymentStatus{
	ActionPay:      {StatusPending, StatusRegistered},
	ActionCancel:   {StatusRegistered},
	ActionRegister: {StatusPending},
}

// ValidateAction checks that the named action exists and is allowed
// from the given status. An unknown action name is a distinct error
// from an action that is merely not valid for the state.
func ValidateAction(action Action, status PaymentStatus) error {
	allowed, ok := actionStates[action]
	if !ok {
		return ErrUnknownAction
	}
	for _, s := range allowed {
		if s == status {
			return nil
		}
	}
	return ErrActionNotAllowed
}
