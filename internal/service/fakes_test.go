package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// In-memory fakes for the repository interfaces. Reads return copies so the
// fakes behave like row scans rather than shared pointers.

type fakeTicketRepo struct {
	tickets          map[string]*domain.Ticket
	nextID           int
	failUpdateStatus bool
	statusWrites     []domain.TicketStatus
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", r.nextID)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *ticket
	stored.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) error {
	if r.failUpdateStatus {
		return errors.New("status write refused")
	}
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	r.statusWrites = append(r.statusWrites, status)
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return r.matching(filter), nil
}

func (r *fakeTicketRepo) CountWithFilter(_ context.Context, filter repository.TicketFilter) (int, error) {
	return len(r.matching(filter)), nil
}

func (r *fakeTicketRepo) ListForSummary(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return r.matching(filter), nil
}

func (r *fakeTicketRepo) matching(filter repository.TicketFilter) []domain.Ticket {
	var out []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.RequesterID != nil && ticket.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.CategoryID != nil && ticket.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		out = append(out, *ticket)
	}
	return out
}

type fakeCommentRepo struct {
	comments   []domain.TicketComment
	nextID     int
	failCreate bool
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.TicketComment) error {
	if r.failCreate {
		return errors.New("comment write refused")
	}
	r.nextID++
	comment.ID = fmt.Sprintf("comment-%d", r.nextID)
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketComment, error) {
	var out []domain.TicketComment
	for _, comment := range r.comments {
		if comment.TicketID == ticketID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) CountByTicket(_ context.Context, ticketID string) (int, error) {
	list, _ := r.ListByTicket(context.Background(), ticketID)
	return len(list), nil
}

type fakeAttachmentRepo struct {
	attachments []domain.AttachmentReference
	nextID      int
}

func (r *fakeAttachmentRepo) Create(_ context.Context, attachment *domain.AttachmentReference) error {
	r.nextID++
	attachment.ID = fmt.Sprintf("attachment-%d", r.nextID)
	attachment.CreatedAt = time.Now()
	r.attachments = append(r.attachments, *attachment)
	return nil
}

func (r *fakeAttachmentRepo) GetByID(_ context.Context, id string) (*domain.AttachmentReference, error) {
	for i := range r.attachments {
		if r.attachments[i].ID == id {
			copied := r.attachments[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAttachmentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.AttachmentReference, error) {
	var out []domain.AttachmentReference
	for _, att := range r.attachments {
		if att.TicketID == ticketID {
			out = append(out, att)
		}
	}
	return out, nil
}

type fakeLookupRepo struct {
	categories   map[string]domain.Category
	issueTypes   map[string][]domain.IssueType
	requestTypes map[string][]domain.RequestType
	failWith     error
}

func newFakeLookupRepo() *fakeLookupRepo {
	return &fakeLookupRepo{
		categories:   map[string]domain.Category{},
		issueTypes:   map[string][]domain.IssueType{},
		requestTypes: map[string][]domain.RequestType{},
	}
}

func (r *fakeLookupRepo) ListCategories(_ context.Context) ([]domain.Category, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []domain.Category
	for _, cat := range r.categories {
		out = append(out, cat)
	}
	return out, nil
}

func (r *fakeLookupRepo) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	cat, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &cat, nil
}

func (r *fakeLookupRepo) ListDepartments(_ context.Context) ([]domain.Department, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return []domain.Department{{ID: "dep-1", Name: "Operations"}}, nil
}

func (r *fakeLookupRepo) ListCompanies(_ context.Context) ([]domain.Company, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return []domain.Company{{ID: "com-1", Name: "Acme"}}, nil
}

func (r *fakeLookupRepo) ListIssueTypes(_ context.Context, categoryID string) ([]domain.IssueType, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.issueTypes[categoryID], nil
}

func (r *fakeLookupRepo) ListRequestTypes(_ context.Context, categoryID string) ([]domain.RequestType, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.requestTypes[categoryID], nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) add(user domain.User) {
	r.users[user.ID] = &user
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListAssigneesByCategory(_ context.Context, categoryID string) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if user.Role == domain.RoleITTeam && user.Status == domain.UserStatusActive &&
			user.CategoryID != nil && *user.CategoryID == categoryID {
			out = append(out, *user)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct {
	entries []domain.TicketHistory
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.TicketHistory) error {
	entry.ID = fmt.Sprintf("history-%d", len(r.entries)+1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByTicket(_ context.Context, ticketID string, _, _ int) ([]domain.TicketHistory, error) {
	var out []domain.TicketHistory
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeStore struct {
	files  map[string][]byte
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string][]byte{}}
}

func (s *fakeStore) Save(_ string, content io.Reader) (string, int64, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", 0, err
	}
	s.nextID++
	key := fmt.Sprintf("key-%d", s.nextID)
	s.files[key] = data
	return key, int64(len(data)), nil
}

func (s *fakeStore) Open(storageKey string) (io.ReadCloser, error) {
	data, ok := s.files[storageKey]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) URL(attachmentID string) string {
	return "https://files.example.com/tickets/attachments/" + attachmentID + "/download"
}
