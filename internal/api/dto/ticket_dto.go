package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
)

// CreateTicketRequest captures the multipart form fields of ticket creation.
// File parts are read separately from the multipart form.
type CreateTicketRequest struct {
	FullName      string `json:"fullName" form:"fullName"`
	ContactNumber string `json:"contactNumber" form:"contactNumber"`
	DepartmentID  string `json:"department" form:"department"`
	CompanyID     string `json:"company" form:"company"`
	CategoryID    string `json:"category" form:"category"`
	AssigneeID    string `json:"assignedTo" form:"assignedTo"`
	IssueTypeID   string `json:"issueType" form:"issueType"`
	RequestTypeID string `json:"requestType" form:"requestType"`
	SeverityLevel string `json:"severityLevel" form:"severityLevel"`
	Description   string `json:"description" form:"description"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AssignToID string `json:"assignToId"`
}

// SetStatusRequest payload for the simple-path transition endpoint.
type SetStatusRequest struct {
	StatusID  string `json:"statusId"`
	SendEmail bool   `json:"sendEmail"`
}

// ProcessTicketRequest payload for the comment-triggered transition.
type ProcessTicketRequest struct {
	Comment   string `json:"comment"`
	SendEmail bool   `json:"sendEmail"`
}

// TransitionRequest payload for complete/approve/reject/close.
type TransitionRequest struct {
	SendEmail bool `json:"sendEmail"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body      string `json:"body"`
	SendEmail bool   `json:"sendEmail"`
}

// TicketSummary is the listing row.
type TicketSummary struct {
	ID            string               `json:"id"`
	TicketNumber  string               `json:"ticketNumber"`
	FullName      string               `json:"fullName"`
	CategoryID    string               `json:"category"`
	IssueTypeID   *string              `json:"issueType,omitempty"`
	RequestTypeID *string              `json:"requestType,omitempty"`
	SeverityLevel domain.SeverityLevel `json:"severityLevel"`
	AssigneeID    *string              `json:"assignedTo"`
	Status        domain.TicketStatus  `json:"status"`
	CommentCount  int                  `json:"commentCount"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// TicketDetailResponse provides full ticket info plus the actions the caller
// may currently take, so clients render only legal controls.
type TicketDetailResponse struct {
	TicketSummary
	RequesterID      string               `json:"requesterId"`
	ContactNumber    string               `json:"contactNumber"`
	DepartmentID     string               `json:"department"`
	CompanyID        string               `json:"company"`
	RequiresApproval bool                 `json:"requiresApproval"`
	Description      string               `json:"description"`
	AssignedAt       *time.Time           `json:"assignedAt,omitempty"`
	Comments         []CommentResponse    `json:"comments"`
	Attachments      []AttachmentResponse `json:"attachments"`
	AllowedActions   []workflow.Action    `json:"allowedActions"`
	CanComment       bool                 `json:"canComment"`
}

// CommentResponse represents a thread entry.
type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AttachmentResponse metadata. URL is derived from configuration; when no
// base URL is set it is omitted and clients use the download endpoint.
type AttachmentResponse struct {
	ID        string `json:"id"`
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
	URL       string `json:"url,omitempty"`
}

// TicketHistoryResponse is a single audit trail entry.
type TicketHistoryResponse struct {
	ID          string         `json:"id"`
	ChangeType  string         `json:"changeType"`
	ChangedByID *string        `json:"changedById,omitempty"`
	OldValue    map[string]any `json:"oldValue,omitempty"`
	NewValue    map[string]any `json:"newValue,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// PaginationResponse mirrors the listing pagination block.
type PaginationResponse struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// TicketListResponse is the listing envelope body.
type TicketListResponse struct {
	Tickets    []TicketSummary        `json:"tickets"`
	Pagination PaginationResponse     `json:"pagination"`
	Summary    workflow.StatusSummary `json:"summary"`
}
