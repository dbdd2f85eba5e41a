package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated              EventType = "ticket_created"
	EventTicketStatusChanged        EventType = "ticket_status_changed"
	EventTicketAssigned             EventType = "ticket_assigned"
	EventTicketCommentAdded         EventType = "ticket_comment_added"
	EventTicketSubmittedForApproval EventType = "ticket_submitted_for_approval"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber  string               `json:"ticket_number"`
	CategoryID    string               `json:"category_id"`
	AssigneeID    *string              `json:"assignee_id,omitempty"`
	SeverityLevel domain.SeverityLevel `json:"severity_level"`
}

// TicketStatusChangedPayload payload. SendEmail marks the fire-and-forget
// notification requested alongside the transition.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	SendEmail bool                `json:"send_email"`
	Comment   string              `json:"comment,omitempty"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeID *string `json:"assignee_id,omitempty"`
	CategoryID string  `json:"category_id"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	AuthorID    string `json:"author_id"`
	BodyPreview string `json:"body_preview"`
}
