package workflow

import "github.com/spec-kit/helpdesk-service/internal/domain"

// TicketContext carries the ticket facts authorization decisions depend on.
type TicketContext struct {
	Status           domain.TicketStatus
	CommentCount     int
	RequiresApproval bool
	IsAssignee       bool
}

// roleActions is the authorization matrix: which actions each canonical role
// may request. A data table keyed by role, not branching spread across call
// sites. Roles outside the table carry no workflow privileges beyond viewing.
var roleActions = map[domain.Role]map[Action]bool{
	domain.RoleTicketCreator: {
		ActionComment:           true,
		ActionSubmitForApproval: true,
		ActionClose:             true,
	},
	domain.RoleITTeam: {
		ActionComment:           true,
		ActionStartProcessing:   true,
		ActionSubmitForApproval: true,
		ActionComplete:          true,
		ActionClose:             true,
	},
	domain.RoleDepartmentHead: {
		ActionComment: true,
		ActionApprove: true,
		ActionReject:  true,
		ActionClose:   true,
	},
}

// noCommentStatuses lists statuses where the comment thread is closed
// entirely: the comment control must not be offered at all, not merely
// rejected on submit.
var noCommentStatuses = map[domain.TicketStatus]bool{
	domain.TicketStatusCompleted:       true,
	domain.TicketStatusPendingApproval: true,
	domain.TicketStatusRejected:        true,
	domain.TicketStatusClosed:          true,
}

// CanComment reports whether the comment thread accepts new entries in the
// given status.
func CanComment(status domain.TicketStatus) bool {
	return !noCommentStatuses[status]
}

// CanPerform decides whether a role may request an action given the ticket
// context. It combines the role matrix, the state machine and the per-action
// guards (comment count, approval flag). The ticket assignee may complete
// regardless of role.
func CanPerform(role domain.Role, action Action, tc TicketContext) bool {
	allowed := roleActions[domain.NormalizeRole(string(role))][action]
	if !allowed && !(action == ActionComplete && tc.IsAssignee) {
		return false
	}

	if action == ActionComment {
		return CanComment(tc.Status)
	}
	if !CanTransition(tc.Status, action) {
		return false
	}
	switch action {
	case ActionComplete:
		return tc.CommentCount >= 1
	case ActionSubmitForApproval:
		return tc.RequiresApproval
	}
	return true
}

// AllowedActions lists the actions a role may currently request; used to
// decide which controls a client should render for a ticket.
func AllowedActions(role domain.Role, tc TicketContext) []Action {
	all := []Action{
		ActionComment,
		ActionStartProcessing,
		ActionSubmitForApproval,
		ActionApprove,
		ActionReject,
		ActionComplete,
		ActionClose,
	}
	var out []Action
	for _, action := range all {
		if CanPerform(role, action, tc) {
			out = append(out, action)
		}
	}
	return out
}
