package application

import (
	"fmt"

	"intersify/internal/common"
)

// forwardTransitions lists the allowed forward edges of the lifecycle graph.
// REJECTED, WITHDRAWN and COMPLETED have no entry here: the first two are
// reachable from everywhere and handled before the lookup, COMPLETED is
// terminal.
var forwardTransitions = map[Status][]Status{
	StatusApplied:            {StatusShortlisted, StatusAccepted},
	StatusShortlisted:        {StatusInterviewScheduled, StatusAccepted},
	StatusInterviewScheduled: {StatusInterviewCompleted, StatusAccepted},
	StatusInterviewCompleted: {StatusOfferMade, StatusAccepted},
	StatusOfferMade:          {StatusAccepted},
	StatusAccepted:           {StatusCompleted},
}

// ValidateTransition decides whether moving from current to requested is
// legal. It is a pure function; every denial names both states so the reason
// can be reconstructed from logs and asserted in tests.
//
// Rules, in priority order:
//  1. COMPLETED is terminal: nothing leaves it.
//  2. REJECTED and WITHDRAWN may be requested from any other state.
//  3. REJECTED and WITHDRAWN may be reactivated into any state except
//     APPLIED. This is deliberately loose (see DESIGN.md).
//  4. Otherwise the forward graph above decides.
func ValidateTransition(current, requested Status) error {
	if current == StatusCompleted {
		return denyTransition(current, requested)
	}
	if requested == StatusRejected || requested == StatusWithdrawn {
		return nil
	}
	if current == StatusRejected || current == StatusWithdrawn {
		if requested == StatusApplied {
			return common.NewError(common.CodeInvalidTransition,
				fmt.Sprintf("cannot move back to %s from %s", StatusApplied, current), nil)
		}
		return nil
	}
	for _, allowed := range forwardTransitions[current] {
		if requested == allowed {
			return nil
		}
	}
	return denyTransition(current, requested)
}

func denyTransition(current, requested Status) error {
	return common.NewError(common.CodeInvalidTransition,
		fmt.Sprintf("invalid transition from %s to %s", current, requested), nil)
}

// IsTerminal reports whether no further transitions may leave the status.
func IsTerminal(status Status) bool {
	return status == StatusCompleted
}
