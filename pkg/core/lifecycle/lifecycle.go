// Package lifecycle is the single authority on shift status transitions.
// No other component writes a shift's status directly: the assignment
// manager and the status-change service both route through Apply.
package lifecycle

import (
	"github.com/careops/careshift/pkg/core/fault"
	"github.com/careops/careshift/pkg/core/model"
)

// transitions enumerates every legal status move. Terminal states have no
// outgoing edges; cancelled is reachable from every non-terminal state.
var transitions = map[model.ShiftStatus][]model.ShiftStatus{
	model.ShiftDraft:      {model.ShiftPublished, model.ShiftAssigned, model.ShiftCancelled},
	model.ShiftPublished:  {model.ShiftDraft, model.ShiftAssigned, model.ShiftCancelled},
	model.ShiftAssigned:   {model.ShiftDraft, model.ShiftPublished, model.ShiftInProgress, model.ShiftCancelled},
	model.ShiftInProgress: {model.ShiftCompleted, model.ShiftCancelled},
	model.ShiftCompleted:  {},
	model.ShiftCancelled:  {},
}

// CanTransition reports whether moving a shift from one status to the other
// is legal
func CanTransition(from, to model.ShiftStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Apply validates the transition and returns the new status. Illegal moves,
// including any move out of a terminal state, come back as conflict faults.
func Apply(from, to model.ShiftStatus) (model.ShiftStatus, error) {
	if !to.IsValid() {
		return from, fault.Validation("unknown shift status %q", to)
	}
	if from == to {
		return from, nil
	}
	if from.IsTerminal() {
		return from, fault.Conflict("shift is %s; no further status changes are allowed", from)
	}
	if !CanTransition(from, to) {
		return from, fault.Conflict("illegal shift status transition %s -> %s", from, to)
	}
	return to, nil
}

// OnFirstActiveAssignment returns the status a shift takes when an
// assignment mutation leaves it with exactly one active assignment where it
// previously had none. Shifts already in progress or beyond keep their
// status.
func OnFirstActiveAssignment(current model.ShiftStatus) model.ShiftStatus {
	switch current {
	case model.ShiftDraft, model.ShiftPublished:
		return model.ShiftAssigned
	}
	return current
}

// OnLastActiveAssignmentRemoved returns the status a shift takes when its
// sole active assignment is removed. An assigned shift with nobody on it
// reverts to draft; anything else keeps its status.
func OnLastActiveAssignmentRemoved(current model.ShiftStatus) model.ShiftStatus {
	if current == model.ShiftAssigned {
		return model.ShiftDraft
	}
	return current
}
