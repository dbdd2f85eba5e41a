package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/storage"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates the ticket lifecycle: creation, assignment,
// comments and status transitions. All transition decisions go through the
// workflow package; this service adds persistence, ordering and side effects.
type TicketService struct {
	tickets     repository.TicketRepository
	comments    repository.CommentRepository
	attachments repository.AttachmentRepository
	lookups     repository.LookupRepository
	users       repository.UserRepository
	history     repository.TicketHistoryRepository
	store       storage.Store
	dispatcher  events.Dispatcher
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	CommentRepo    repository.CommentRepository
	AttachmentRepo repository.AttachmentRepository
	LookupRepo     repository.LookupRepository
	UserRepo       repository.UserRepository
	HistoryRepo    repository.TicketHistoryRepository
	Store          storage.Store
	Dispatcher     events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		comments:    deps.CommentRepo,
		attachments: deps.AttachmentRepo,
		lookups:     deps.LookupRepo,
		users:       deps.UserRepo,
		history:     deps.HistoryRepo,
		store:       deps.Store,
		dispatcher:  deps.Dispatcher,
	}
}

// AttachmentInput carries an uploaded file.
type AttachmentInput struct {
	FileName string
	MimeType string
	Content  io.Reader
}

// ListFilter captures ticket list query parameters.
type ListFilter struct {
	CategoryID string
	AssigneeID string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
	SortBy     string
	Order      string
	MineOnly   bool
}

// Pagination describes a page of results.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// TicketPage is a paginated listing with a locally computed summary.
type TicketPage struct {
	Tickets    []domain.Ticket
	Pagination Pagination
	Summary    workflow.StatusSummary
}

// CreateTicket validates the draft and persists a new ticket in status New.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, draft domain.TicketDraft, uploads []AttachmentInput) (*domain.Ticket, error) {
	if fieldErrs := draft.Validate(); fieldErrs != nil {
		details := make(map[string]any, len(fieldErrs))
		for field, msg := range fieldErrs {
			details[field] = msg
		}
		return nil, apperrors.NewValidationError("ticket validation failed", details)
	}

	category, err := s.lookups.GetCategory(ctx, draft.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": draft.CategoryID})
		}
		return nil, apperrors.NewLookupLoadError("category", err)
	}
	if !category.IsActive {
		return nil, apperrors.NewConflict("category inactive", map[string]any{"category_id": category.ID})
	}
	if err := s.validateClassification(ctx, &draft); err != nil {
		return nil, err
	}

	severity, _ := domain.ParseSeverity(draft.SeverityLevel)
	ticket := &domain.Ticket{
		Number:           generateTicketNumber(),
		RequesterID:      actor.ID,
		FullName:         strings.TrimSpace(draft.FullName),
		ContactNumber:    strings.TrimSpace(draft.ContactNumber),
		DepartmentID:     draft.DepartmentID,
		CompanyID:        draft.CompanyID,
		CategoryID:       draft.CategoryID,
		SeverityLevel:    severity,
		Status:           domain.TicketStatusNew,
		RequiresApproval: category.RequiresApproval,
		Description:      strings.TrimSpace(draft.Description),
	}
	if draft.IssueTypeID != "" {
		id := draft.IssueTypeID
		ticket.IssueTypeID = &id
	}
	if draft.RequestTypeID != "" {
		id := draft.RequestTypeID
		ticket.RequestTypeID = &id
	}
	if draft.AssigneeID != "" {
		if err := s.checkAssigneeEligible(ctx, draft.AssigneeID, draft.CategoryID); err != nil {
			return nil, err
		}
		id := draft.AssigneeID
		now := time.Now()
		ticket.AssigneeID = &id
		ticket.AssignedAt = &now
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	for _, upload := range uploads {
		if err := s.saveAttachment(ctx, ticket.ID, upload); err != nil {
			return nil, err
		}
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actorFor(actor),
		Payload: events.TicketCreatedPayload{
			TicketNumber:  ticket.Number,
			CategoryID:    ticket.CategoryID,
			AssigneeID:    ticket.AssigneeID,
			SeverityLevel: ticket.SeverityLevel,
		},
	})
	return ticket, nil
}

// ListTickets returns a scoped, paginated listing. The summary is recomputed
// locally from an unpaginated fetch rather than trusting any precomputed
// figure, so bucket counts always sum to the reported total.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter ListFilter) (*TicketPage, error) {
	repoFilter, err := s.buildFilter(actor, filter)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	repoFilter.Limit = limit
	repoFilter.Offset = (page - 1) * limit

	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	total, err := s.tickets.CountWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	summarySet, err := s.tickets.ListForSummary(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &TicketPage{
		Tickets: tickets,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
		Summary: workflow.Tally(summarySet, filter.Status),
	}, nil
}

// GetTicket fetches a ticket with its thread and attachments. Any
// authenticated role may view.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, []domain.TicketComment, []domain.AttachmentReference, error) {
	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, nil, err
	}
	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		// partial failure degrades: the ticket renders without its thread
		comments = nil
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		attachments = nil
	}
	return ticket, comments, attachments, nil
}

// ListComments returns the comment thread.
func (s *TicketService) ListComments(ctx context.Context, ticketID string) ([]domain.TicketComment, error) {
	if _, err := s.fetchTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.NewCommentError(err)
	}
	return comments, nil
}

// AddComment appends to the thread and applies the comment-triggered
// auto-transition: the first comment on a New ticket, or any comment on an
// Approved one, moves it to Processing. The comment is persisted before the
// status write is attempted; if the status write fails the comment stands
// and a transition error is returned alongside the pre-transition ticket.
func (s *TicketService) AddComment(ctx context.Context, actor *domain.User, ticketID, body string, sendEmail bool) (*domain.TicketComment, *domain.Ticket, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, nil, apperrors.NewValidationError("comment body required", nil)
	}
	if len(body) > domain.MaxCommentLength {
		return nil, nil, apperrors.NewValidationError("comment exceeds maximum length", map[string]any{"max": domain.MaxCommentLength})
	}

	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	if !workflow.CanComment(ticket.Status) {
		return nil, nil, apperrors.NewConflict("comments are closed for this ticket", map[string]any{"status": ticket.Status})
	}
	if !s.canTouchThread(actor, ticket) {
		return nil, nil, apperrors.NewForbidden("not a participant on this ticket")
	}

	comment := &domain.TicketComment{
		TicketID: ticket.ID,
		AuthorID: actor.ID,
		Body:     body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		// comment and status have independent failure domains; nothing to
		// roll back because no transition has been attempted yet
		return nil, nil, apperrors.NewCommentError(err)
	}
	comment.AuthorName = actor.Name
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		Actor:    actorFor(actor),
		Payload: events.TicketCommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    actor.ID,
			BodyPreview: preview(body, 120),
		},
	})

	next, changed := workflow.NextOnComment(ticket.Status, ticket.CommentCount)
	if changed {
		if err := s.persistTransition(ctx, actor, ticket, next, sendEmail, body); err != nil {
			// the comment is already durable; only the transition failed
			return comment, ticket, err
		}
	}

	refreshed, err := s.fetchTicket(ctx, ticket.ID)
	if err != nil {
		return comment, ticket, nil
	}
	return comment, refreshed, nil
}

// ProcessTicket is the canonical transition-to-Processing path. With a
// comment it behaves as the comment-triggered transition; without one it is
// the direct status set available to the IT team on non-approval tickets.
func (s *TicketService) ProcessTicket(ctx context.Context, actor *domain.User, ticketID, comment string, sendEmail bool) (*domain.Ticket, error) {
	if strings.TrimSpace(comment) != "" {
		_, ticket, err := s.AddComment(ctx, actor, ticketID, comment, sendEmail)
		if err != nil {
			return ticket, err
		}
		if ticket.Status == domain.TicketStatusProcessing {
			return ticket, nil
		}
		// the comment did not trigger the transition (e.g. second comment on
		// a Processing ticket); fall through to the direct set
		return s.applyAction(ctx, actor, ticketID, workflow.ActionStartProcessing, sendEmail, "")
	}
	return s.applyAction(ctx, actor, ticketID, workflow.ActionStartProcessing, sendEmail, "")
}

// SubmitForApproval routes an approval-flagged ticket to the department head.
func (s *TicketService) SubmitForApproval(ctx context.Context, actor *domain.User, ticketID string, sendEmail bool) (*domain.Ticket, error) {
	return s.applyAction(ctx, actor, ticketID, workflow.ActionSubmitForApproval, sendEmail, "")
}

// ApproveTicket approves a pending ticket (department head only).
func (s *TicketService) ApproveTicket(ctx context.Context, actor *domain.User, ticketID string, sendEmail bool) (*domain.Ticket, error) {
	return s.applyAction(ctx, actor, ticketID, workflow.ActionApprove, sendEmail, "")
}

// RejectTicket rejects a pending ticket (department head only).
func (s *TicketService) RejectTicket(ctx context.Context, actor *domain.User, ticketID string, sendEmail bool) (*domain.Ticket, error) {
	return s.applyAction(ctx, actor, ticketID, workflow.ActionReject, sendEmail, "")
}

// CompleteTicket marks a processing ticket completed.
func (s *TicketService) CompleteTicket(ctx context.Context, actor *domain.User, ticketID string, sendEmail bool) (*domain.Ticket, error) {
	return s.applyAction(ctx, actor, ticketID, workflow.ActionComplete, sendEmail, "")
}

// CloseTicket closes a rejected ticket.
func (s *TicketService) CloseTicket(ctx context.Context, actor *domain.User, ticketID string, sendEmail bool) (*domain.Ticket, error) {
	return s.applyAction(ctx, actor, ticketID, workflow.ActionClose, sendEmail, "")
}

// SetStatus implements the simple-path transition endpoint: the requested
// status token is resolved to the corresponding workflow action, so the
// same guards apply as for the dedicated endpoints.
func (s *TicketService) SetStatus(ctx context.Context, actor *domain.User, ticketID, statusToken string, sendEmail bool) (*domain.Ticket, error) {
	status, ok := domain.ParseStatus(statusToken)
	if !ok {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": statusToken})
	}
	action, ok := actionForStatus(status)
	if !ok {
		return nil, apperrors.NewValidationError("status cannot be set directly", map[string]any{"status": status})
	}
	return s.applyAction(ctx, actor, ticketID, action, sendEmail, "")
}

// AssignTicket routes the ticket to an eligible category assignee.
func (s *TicketService) AssignTicket(ctx context.Context, actor *domain.User, ticketID, assignToID string) (*domain.Ticket, error) {
	if actor.Role != domain.RoleITTeam && actor.Role != domain.RoleDepartmentHead {
		return nil, apperrors.NewForbidden("insufficient role for assignment")
	}
	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status.IsTerminal() {
		return nil, apperrors.NewConflict("ticket is closed", map[string]any{"status": ticket.Status})
	}
	if err := s.checkAssigneeEligible(ctx, assignToID, ticket.CategoryID); err != nil {
		return nil, err
	}

	oldAssignee := ticket.AssigneeID
	now := time.Now()
	ticket.AssigneeID = &assignToID
	ticket.AssignedAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.recordHistory(ctx, actor, ticket.ID, domain.ChangeTypeAssignee,
		map[string]any{"assignee_id": oldAssignee},
		map[string]any{"assignee_id": ticket.AssigneeID},
	)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    actorFor(actor),
		Payload: events.TicketAssignedPayload{
			AssigneeID: ticket.AssigneeID,
			CategoryID: ticket.CategoryID,
		},
	})
	return ticket, nil
}

// AllowedActions lists what the actor may currently do with the ticket,
// so clients can render only legal controls.
func (s *TicketService) AllowedActions(actor *domain.User, ticket *domain.Ticket) []workflow.Action {
	return workflow.AllowedActions(actor.Role, ticketContext(actor, ticket))
}

// GetAttachment opens an attachment for download.
func (s *TicketService) GetAttachment(ctx context.Context, attachmentID string) (*domain.AttachmentReference, io.ReadCloser, error) {
	att, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("attachment", map[string]any{"attachment_id": attachmentID})
		}
		return nil, nil, apperrors.MapError(err)
	}
	content, err := s.store.Open(att.StorageKey)
	if err != nil {
		return nil, nil, apperrors.NewNotFound("attachment content", map[string]any{"attachment_id": attachmentID})
	}
	return att, content, nil
}

// ListHistory returns the audit trail for a ticket.
func (s *TicketService) ListHistory(ctx context.Context, ticketID string, limit, offset int) ([]domain.TicketHistory, error) {
	if s.history == nil {
		return []domain.TicketHistory{}, nil
	}
	if _, err := s.fetchTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	entries, err := s.history.ListByTicket(ctx, ticketID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *TicketService) applyAction(ctx context.Context, actor *domain.User, ticketID string, action workflow.Action, sendEmail bool, comment string) (*domain.Ticket, error) {
	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	tc := ticketContext(actor, ticket)
	if !workflow.CanTransition(ticket.Status, action) {
		return nil, apperrors.NewTransitionError("transition not allowed from current status", nil)
	}
	if !workflow.CanPerform(actor.Role, action, tc) {
		return nil, apperrors.NewForbidden("role may not perform this action")
	}
	next, err := workflow.Next(ticket.Status, action)
	if err != nil {
		return nil, apperrors.NewTransitionError("transition not allowed from current status", err)
	}
	if err := s.persistTransition(ctx, actor, ticket, next, sendEmail, comment); err != nil {
		return nil, err
	}
	return ticket, nil
}

// persistTransition writes the status change, records history and publishes
// the change event. On a failed write the in-memory ticket keeps its
// pre-transition status so callers always see server truth.
func (s *TicketService) persistTransition(ctx context.Context, actor *domain.User, ticket *domain.Ticket, next domain.TicketStatus, sendEmail bool, comment string) error {
	old := ticket.Status
	if err := s.tickets.UpdateStatus(ctx, ticket.ID, next); err != nil {
		return apperrors.NewTransitionError("failed to persist status change", err)
	}
	ticket.Status = next
	s.recordHistory(ctx, actor, ticket.ID, domain.ChangeTypeStatus,
		map[string]any{"status": old},
		map[string]any{"status": next},
	)
	eventType := events.EventTicketStatusChanged
	if next == domain.TicketStatusPendingApproval {
		eventType = events.EventTicketSubmittedForApproval
	}
	s.publishEvent(ctx, events.Event{
		Type:     eventType,
		TicketID: ticket.ID,
		Actor:    actorFor(actor),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: old,
			NewStatus: next,
			SendEmail: sendEmail,
			Comment:   preview(comment, 120),
		},
	})
	return nil
}

func (s *TicketService) buildFilter(actor *domain.User, filter ListFilter) (repository.TicketFilter, error) {
	repoFilter := repository.TicketFilter{
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
		SortBy:   filter.SortBy,
		Order:    filter.Order,
	}
	if filter.MineOnly || actor.Role == domain.RoleTicketCreator {
		requesterID := actor.ID
		repoFilter.RequesterID = &requesterID
	}
	if filter.CategoryID != "" {
		categoryID := filter.CategoryID
		repoFilter.CategoryID = &categoryID
	}
	if filter.AssigneeID != "" {
		assigneeID := filter.AssigneeID
		repoFilter.AssigneeID = &assigneeID
	}
	if filter.Status != "" {
		status, ok := domain.ParseStatus(filter.Status)
		if !ok {
			return repository.TicketFilter{}, apperrors.NewValidationError("unknown status filter", map[string]any{"status": filter.Status})
		}
		repoFilter.Status = &status
	}
	return repoFilter, nil
}

func (s *TicketService) fetchTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) checkAssigneeEligible(ctx context.Context, assigneeID, categoryID string) error {
	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("assignee", map[string]any{"user_id": assigneeID})
		}
		return apperrors.MapError(err)
	}
	if assignee.Status != domain.UserStatusActive {
		return apperrors.NewConflict("assignee inactive", map[string]any{"user_id": assigneeID})
	}
	if domain.NormalizeRole(string(assignee.Role)) != domain.RoleITTeam {
		return apperrors.NewConflict("assignee is not an IT team member", map[string]any{"user_id": assigneeID})
	}
	if assignee.CategoryID == nil || *assignee.CategoryID != categoryID {
		return apperrors.NewConflict("assignee outside ticket category", map[string]any{"user_id": assigneeID})
	}
	return nil
}

func (s *TicketService) saveAttachment(ctx context.Context, ticketID string, upload AttachmentInput) error {
	key, size, err := s.store.Save(upload.FileName, upload.Content)
	if err != nil {
		return apperrors.MapError(err)
	}
	record := &domain.AttachmentReference{
		TicketID:   ticketID,
		StorageKey: key,
		FileName:   upload.FileName,
		MimeType:   upload.MimeType,
		SizeBytes:  size,
	}
	if err := s.attachments.Create(ctx, record); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) canTouchThread(actor *domain.User, ticket *domain.Ticket) bool {
	if ticket.RequesterID == actor.ID {
		return true
	}
	if ticket.AssigneeID != nil && *ticket.AssigneeID == actor.ID {
		return true
	}
	return actor.Role == domain.RoleITTeam || actor.Role == domain.RoleDepartmentHead
}

func (s *TicketService) recordHistory(ctx context.Context, actor *domain.User, ticketID string, changeType domain.TicketChangeType, oldValue, newValue map[string]any) {
	if s.history == nil {
		return
	}
	actorID := actor.ID
	_ = s.history.Create(ctx, &domain.TicketHistory{
		TicketID:    ticketID,
		ChangedByID: &actorID,
		ChangeType:  changeType,
		OldValue:    oldValue,
		NewValue:    newValue,
	})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *TicketService) validateClassification(ctx context.Context, draft *domain.TicketDraft) error {
	if draft.IssueTypeID != "" {
		types, err := s.lookups.ListIssueTypes(ctx, draft.CategoryID)
		if err != nil {
			return apperrors.NewLookupLoadError("issue types", err)
		}
		if !containsIssueType(types, draft.IssueTypeID) {
			return apperrors.NewValidationError("issue type not valid for category", map[string]any{"issueType": draft.IssueTypeID})
		}
	}
	if draft.RequestTypeID != "" {
		types, err := s.lookups.ListRequestTypes(ctx, draft.CategoryID)
		if err != nil {
			return apperrors.NewLookupLoadError("request types", err)
		}
		if !containsRequestType(types, draft.RequestTypeID) {
			return apperrors.NewValidationError("request type not valid for category", map[string]any{"requestType": draft.RequestTypeID})
		}
	}
	return nil
}

func containsIssueType(types []domain.IssueType, id string) bool {
	for _, t := range types {
		if t.ID == id {
			return true
		}
	}
	return false
}

func containsRequestType(types []domain.RequestType, id string) bool {
	for _, t := range types {
		if t.ID == id {
			return true
		}
	}
	return false
}

func ticketContext(actor *domain.User, ticket *domain.Ticket) workflow.TicketContext {
	return workflow.TicketContext{
		Status:           ticket.Status,
		CommentCount:     ticket.CommentCount,
		RequiresApproval: ticket.RequiresApproval,
		IsAssignee:       ticket.AssigneeID != nil && *ticket.AssigneeID == actor.ID,
	}
}

// actionForStatus maps a requested target status to the workflow action that
// produces it, so the simple status endpoint shares guards with the
// dedicated ones.
func actionForStatus(status domain.TicketStatus) (workflow.Action, bool) {
	switch status {
	case domain.TicketStatusProcessing:
		return workflow.ActionStartProcessing, true
	case domain.TicketStatusPendingApproval:
		return workflow.ActionSubmitForApproval, true
	case domain.TicketStatusApproved:
		return workflow.ActionApprove, true
	case domain.TicketStatusRejected:
		return workflow.ActionReject, true
	case domain.TicketStatusCompleted:
		return workflow.ActionComplete, true
	case domain.TicketStatusClosed:
		return workflow.ActionClose, true
	}
	return "", false
}

func generateTicketNumber() string {
	return "HD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func actorFor(actor *domain.User) events.Actor {
	return events.Actor{UserID: actor.ID, Role: actor.Role}
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
