package domain

import (
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew             TicketStatus = "NEW"
	TicketStatusPendingApproval TicketStatus = "PENDING_APPROVAL"
	TicketStatusApproved        TicketStatus = "APPROVED"
	TicketStatusRejected        TicketStatus = "REJECTED"
	TicketStatusProcessing      TicketStatus = "PROCESSING"
	TicketStatusCompleted       TicketStatus = "COMPLETED"
	TicketStatusClosed          TicketStatus = "CLOSED"
)

// IsTerminal reports whether no further transitions exist from the status.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusCompleted || s == TicketStatusClosed
}

// ParseStatus resolves status tokens from query params, persisted rows or
// server summaries to a canonical TicketStatus. Matching is case-insensitive
// and tolerant of spaces, hyphens and underscores ("pending approval",
// "pendingapproval" and "PENDING_APPROVAL" collapse to one value).
func ParseStatus(token string) (TicketStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(token))
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	switch s {
	case "new", "open":
		return TicketStatusNew, true
	case "pendingapproval", "pending":
		return TicketStatusPendingApproval, true
	case "approved":
		return TicketStatusApproved, true
	case "rejected":
		return TicketStatusRejected, true
	case "processing", "inprogress":
		return TicketStatusProcessing, true
	case "completed", "complete":
		return TicketStatusCompleted, true
	case "closed":
		return TicketStatusClosed, true
	}
	return "", false
}

// SeverityLevel enumerates ticket urgency, independent of status.
type SeverityLevel string

const (
	SeverityLow      SeverityLevel = "LOW"
	SeverityMedium   SeverityLevel = "MEDIUM"
	SeverityHigh     SeverityLevel = "HIGH"
	SeverityCritical SeverityLevel = "CRITICAL"
)

// ParseSeverity resolves severity tokens case-insensitively.
func ParseSeverity(token string) (SeverityLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "LOW":
		return SeverityLow, true
	case "MEDIUM":
		return SeverityMedium, true
	case "HIGH":
		return SeverityHigh, true
	case "CRITICAL":
		return SeverityCritical, true
	}
	return "", false
}

// Ticket is the aggregate for helpdesk requests. Exactly one of IssueTypeID
// and RequestTypeID is set; the category, fixed at creation, scopes both of
// them plus the eligible assignee pool.
type Ticket struct {
	ID               string
	Number           string
	RequesterID      string
	FullName         string
	ContactNumber    string
	DepartmentID     string
	CompanyID        string
	CategoryID       string
	IssueTypeID      *string
	RequestTypeID    *string
	SeverityLevel    SeverityLevel
	AssigneeID       *string
	Status           TicketStatus
	RequiresApproval bool
	Description      string
	CommentCount     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	AssignedAt       *time.Time
}
