package workflow

import (
	"fmt"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// Action identifies a workflow operation a caller may request on a ticket.
type Action string

const (
	ActionComment           Action = "comment"
	ActionStartProcessing   Action = "start_processing"
	ActionSubmitForApproval Action = "submit_for_approval"
	ActionApprove           Action = "approve"
	ActionReject            Action = "reject"
	ActionComplete          Action = "complete"
	ActionClose             Action = "close"
)

// targets maps transition actions to the status they produce.
var targets = map[Action]domain.TicketStatus{
	ActionStartProcessing:   domain.TicketStatusProcessing,
	ActionSubmitForApproval: domain.TicketStatusPendingApproval,
	ActionApprove:           domain.TicketStatusApproved,
	ActionReject:            domain.TicketStatusRejected,
	ActionComplete:          domain.TicketStatusCompleted,
	ActionClose:             domain.TicketStatusClosed,
}

// transitions lists the transition actions available from each status.
// Terminal statuses map to an empty set. Submit-for-approval is available
// from every non-terminal status except PendingApproval itself; whether the
// ticket is actually flagged for approval is a separate guard.
var transitions = map[domain.TicketStatus][]Action{
	domain.TicketStatusNew:             {ActionStartProcessing, ActionSubmitForApproval},
	domain.TicketStatusPendingApproval: {ActionApprove, ActionReject},
	domain.TicketStatusApproved:        {ActionStartProcessing, ActionSubmitForApproval},
	domain.TicketStatusRejected:        {ActionClose, ActionSubmitForApproval},
	domain.TicketStatusProcessing:      {ActionComplete, ActionSubmitForApproval},
	domain.TicketStatusCompleted:       {},
	domain.TicketStatusClosed:          {},
}

// Target returns the status an action transitions to. ActionComment has no
// direct target; its effect is resolved by NextOnComment.
func Target(action Action) (domain.TicketStatus, bool) {
	to, ok := targets[action]
	return to, ok
}

// CanTransition reports whether the action is defined from the given status,
// ignoring role and guard conditions.
func CanTransition(from domain.TicketStatus, action Action) bool {
	for _, candidate := range transitions[from] {
		if candidate == action {
			return true
		}
	}
	return false
}

// TransitionsFrom returns the transition actions defined from a status.
func TransitionsFrom(from domain.TicketStatus) []Action {
	return transitions[from]
}

// Next resolves the status an action produces from the current status, or an
// error when the transition is not defined.
func Next(from domain.TicketStatus, action Action) (domain.TicketStatus, error) {
	if !CanTransition(from, action) {
		return "", fmt.Errorf("no transition %q from status %s", action, from)
	}
	return targets[action], nil
}

// NextOnComment resolves the auto-transition triggered by adding a comment:
// the first comment on a New ticket, or any comment on an Approved ticket
// (the change-management path, where approval precedes work), moves it to
// Processing. The returned bool is false when the status is unchanged.
func NextOnComment(current domain.TicketStatus, commentCount int) (domain.TicketStatus, bool) {
	switch {
	case current == domain.TicketStatusNew && commentCount == 0:
		return domain.TicketStatusProcessing, true
	case current == domain.TicketStatusApproved:
		return domain.TicketStatusProcessing, true
	}
	return current, false
}
