package handlers

import (
	"context"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/storage"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
	store   storage.Store
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, store storage.Store) *TicketsHandler {
	return &TicketsHandler{service: ticketService, store: store}
}

// CreateTicket POST /tickets. Accepts a multipart form so attachments ride
// along with the ticket fields.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	// build through the draft so cascade rules apply in order: category
	// first, then the category-scoped selections
	draft := domain.TicketDraft{
		FullName:      req.FullName,
		ContactNumber: req.ContactNumber,
		DepartmentID:  req.DepartmentID,
		CompanyID:     req.CompanyID,
		SeverityLevel: req.SeverityLevel,
		Description:   req.Description,
	}
	draft.SetCategory(req.CategoryID)
	draft.AssigneeID = req.AssigneeID
	if req.IssueTypeID != "" {
		draft.SetIssueType(req.IssueTypeID)
	}
	if req.RequestTypeID != "" {
		draft.SetRequestType(req.RequestTypeID)
	}

	uploads, closeFiles, err := collectUploads(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	ticket, err := h.service.CreateTicket(c.Context(), principal.User, draft, uploads)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListTickets GET /tickets. Requesters only ever see their own tickets even
// on the shared endpoint.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	return h.listTickets(c, false)
}

// ListMyTickets GET /tickets/my-tickets.
func (h *TicketsHandler) ListMyTickets(c *fiber.Ctx) error {
	return h.listTickets(c, true)
}

func (h *TicketsHandler) listTickets(c *fiber.Ctx, mineOnly bool) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := parseTicketQuery(c)
	filter.MineOnly = mineOnly

	page, err := h.service.ListTickets(c.Context(), principal.User, filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(page.Tickets))
	for i := range page.Tickets {
		items = append(items, ticketSummary(&page.Tickets[i]))
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{
		Tickets: items,
		Pagination: dto.PaginationResponse{
			CurrentPage:  page.Pagination.CurrentPage,
			TotalPages:   page.Pagination.TotalPages,
			TotalItems:   page.Pagination.TotalItems,
			ItemsPerPage: page.Pagination.ItemsPerPage,
		},
		Summary: page.Summary,
	}})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, comments, attachments, err := h.service.GetTicket(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.ticketDetail(principal.User, ticket, comments, attachments)})
}

// AssignTicket PUT /tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AssignToID == "" {
		return apperrors.NewValidationError("assignToId required", nil)
	}
	ticket, err := h.service.AssignTicket(c.Context(), principal.User, c.Params("id"), req.AssignToID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// SetStatus PUT /tickets/:id/status.
func (h *TicketsHandler) SetStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.StatusID == "" {
		return apperrors.NewValidationError("statusId required", nil)
	}
	ticket, err := h.service.SetStatus(c.Context(), principal.User, c.Params("id"), req.StatusID, req.SendEmail)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ProcessTicket PUT /tickets/:id/processing.
func (h *TicketsHandler) ProcessTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ProcessTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.ProcessTicket(c.Context(), principal.User, c.Params("id"), req.Comment, req.SendEmail)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// SubmitForApproval PUT /tickets/:id/submit-approval.
func (h *TicketsHandler) SubmitForApproval(c *fiber.Ctx) error {
	return h.transition(c, h.service.SubmitForApproval)
}

// CompleteTicket PUT /tickets/:id/complete.
func (h *TicketsHandler) CompleteTicket(c *fiber.Ctx) error {
	return h.transition(c, h.service.CompleteTicket)
}

// ApproveTicket PUT /tickets/:id/approve.
func (h *TicketsHandler) ApproveTicket(c *fiber.Ctx) error {
	return h.transition(c, h.service.ApproveTicket)
}

// RejectTicket PUT /tickets/:id/reject.
func (h *TicketsHandler) RejectTicket(c *fiber.Ctx) error {
	return h.transition(c, h.service.RejectTicket)
}

// CloseTicket PUT /tickets/:id/close.
func (h *TicketsHandler) CloseTicket(c *fiber.Ctx) error {
	return h.transition(c, h.service.CloseTicket)
}

type transitionFunc func(ctx context.Context, actor *domain.User, ticketID string, sendEmail bool) (*domain.Ticket, error)

func (h *TicketsHandler) transition(c *fiber.Ctx, apply transitionFunc) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := apply(c.Context(), principal.User, c.Params("id"), req.SendEmail)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListComments GET /tickets/:id/comments.
func (h *TicketsHandler) ListComments(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	comments, err := h.service.ListComments(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddComment POST /tickets/:id/comments. The response carries the persisted
// comment plus the ticket's post-transition state; on a failed transition the
// comment still stands and the error surfaces with the conflict code.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, ticket, err := h.service.AddComment(c.Context(), principal.User, c.Params("id"), req.Body, req.SendEmail)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"comment": commentResponse(comment),
		"ticket":  ticketSummary(ticket),
	}})
}

// ListHistory GET /tickets/:id/history.
func (h *TicketsHandler) ListHistory(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	entries, err := h.service.ListHistory(c.Context(), c.Params("id"),
		parseInt(c.Query("limit"), 50), parseInt(c.Query("offset"), 0))
	if err != nil {
		return err
	}
	items := make([]dto.TicketHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.TicketHistoryResponse{
			ID:          entry.ID,
			ChangeType:  string(entry.ChangeType),
			ChangedByID: entry.ChangedByID,
			OldValue:    entry.OldValue,
			NewValue:    entry.NewValue,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// DownloadAttachment GET /tickets/attachments/:id/download.
func (h *TicketsHandler) DownloadAttachment(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	att, content, err := h.service.GetAttachment(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, att.MimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+att.FileName+`"`)
	return c.SendStream(content, int(att.SizeBytes))
}

func collectUploads(c *fiber.Ctx) ([]service.AttachmentInput, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		// plain JSON bodies have no files to collect
		return nil, func() {}, nil
	}
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	var uploads []service.AttachmentInput
	for _, header := range form.File["attachments"] {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperrors.NewValidationError("unreadable attachment", map[string]any{"fileName": header.Filename})
		}
		opened = append(opened, f)
		uploads = append(uploads, service.AttachmentInput{
			FileName: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Content:  f,
		})
	}
	return uploads, closeAll, nil
}

func parseTicketQuery(c *fiber.Ctx) service.ListFilter {
	filter := service.ListFilter{
		CategoryID: c.Query("category"),
		AssigneeID: c.Query("assignedTo"),
		Status:     c.Query("status"),
		SortBy:     c.Query("sort"),
		Order:      c.Query("order"),
		Page:       parseInt(c.Query("page"), 1),
		Limit:      parseInt(c.Query("limit"), 20),
	}
	filter.DateFrom = parseTime(c.Query("dateFrom"))
	filter.DateTo = parseTime(c.Query("dateTo"))
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		// date-only filters come from the list page's date pickers
		t, err = time.Parse("2006-01-02", val)
		if err != nil {
			return nil
		}
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:            ticket.ID,
		TicketNumber:  ticket.Number,
		FullName:      ticket.FullName,
		CategoryID:    ticket.CategoryID,
		IssueTypeID:   ticket.IssueTypeID,
		RequestTypeID: ticket.RequestTypeID,
		SeverityLevel: ticket.SeverityLevel,
		AssigneeID:    ticket.AssigneeID,
		Status:        ticket.Status,
		CommentCount:  ticket.CommentCount,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}

func (h *TicketsHandler) ticketDetail(actor *domain.User, ticket *domain.Ticket, comments []domain.TicketComment, attachments []domain.AttachmentReference) dto.TicketDetailResponse {
	commentItems := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		commentItems = append(commentItems, commentResponse(&comments[i]))
	}
	attachmentItems := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, att := range attachments {
		attachmentItems = append(attachmentItems, dto.AttachmentResponse{
			ID:        att.ID,
			FileName:  att.FileName,
			MimeType:  att.MimeType,
			SizeBytes: att.SizeBytes,
			URL:       h.store.URL(att.ID),
		})
	}
	return dto.TicketDetailResponse{
		TicketSummary:    ticketSummary(ticket),
		RequesterID:      ticket.RequesterID,
		ContactNumber:    ticket.ContactNumber,
		DepartmentID:     ticket.DepartmentID,
		CompanyID:        ticket.CompanyID,
		RequiresApproval: ticket.RequiresApproval,
		Description:      ticket.Description,
		AssignedAt:       ticket.AssignedAt,
		Comments:         commentItems,
		Attachments:      attachmentItems,
		AllowedActions:   h.service.AllowedActions(actor, ticket),
		CanComment:       workflow.CanComment(ticket.Status),
	}
}

func commentResponse(comment *domain.TicketComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		Body:       comment.Body,
		CreatedAt:  comment.CreatedAt,
	}
}
