package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

type ticketServiceFixture struct {
	service  *TicketService
	tickets  *fakeTicketRepo
	comments *fakeCommentRepo
	users    *fakeUserRepo
	lookups  *fakeLookupRepo
	history  *fakeHistoryRepo
	store    *fakeStore

	requester *domain.User
	agent     *domain.User
	head      *domain.User
}

func newTicketServiceFixture(t *testing.T) *ticketServiceFixture {
	t.Helper()
	f := &ticketServiceFixture{
		tickets:  newFakeTicketRepo(),
		comments: &fakeCommentRepo{},
		users:    newFakeUserRepo(),
		lookups:  newFakeLookupRepo(),
		history:  &fakeHistoryRepo{},
		store:    newFakeStore(),
	}
	f.lookups.categories["cat-1"] = domain.Category{ID: "cat-1", Name: "Hardware", IsActive: true}
	f.lookups.categories["cat-2"] = domain.Category{ID: "cat-2", Name: "Access", RequiresApproval: true, IsActive: true}
	f.lookups.issueTypes["cat-1"] = []domain.IssueType{{ID: "it-1", CategoryID: "cat-1", Name: "Broken device"}}
	f.lookups.requestTypes["cat-2"] = []domain.RequestType{{ID: "rt-1", CategoryID: "cat-2", Name: "New account"}}

	catID := "cat-1"
	f.requester = &domain.User{ID: "user-req", Name: "Rey Fields", Role: domain.RoleTicketCreator, Status: domain.UserStatusActive}
	f.agent = &domain.User{ID: "user-agent", Name: "Ana Ito", Role: domain.RoleITTeam, CategoryID: &catID, Status: domain.UserStatusActive}
	f.head = &domain.User{ID: "user-head", Name: "Io Park", Role: domain.RoleDepartmentHead, Status: domain.UserStatusActive}
	f.users.add(*f.requester)
	f.users.add(*f.agent)
	f.users.add(*f.head)

	f.service = NewTicketService(TicketDependencies{
		TicketRepo:     f.tickets,
		CommentRepo:    f.comments,
		AttachmentRepo: &fakeAttachmentRepo{},
		LookupRepo:     f.lookups,
		UserRepo:       f.users,
		HistoryRepo:    f.history,
		Store:          f.store,
		Dispatcher:     events.NewInMemoryDispatcher(),
	})
	return f
}

func (f *ticketServiceFixture) draft() domain.TicketDraft {
	return domain.TicketDraft{
		FullName:      "Rey Fields",
		ContactNumber: "555-0101",
		DepartmentID:  "dep-1",
		CompanyID:     "com-1",
		CategoryID:    "cat-1",
		IssueTypeID:   "it-1",
		SeverityLevel: "MEDIUM",
		Description:   "laptop will not boot",
	}
}

func (f *ticketServiceFixture) createTicket(t *testing.T) *domain.Ticket {
	t.Helper()
	ticket, err := f.service.CreateTicket(context.Background(), f.requester, f.draft(), nil)
	require.NoError(t, err)
	return ticket
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestCreateTicketStartsNew(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)

	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
	assert.False(t, ticket.RequiresApproval)
	assert.True(t, strings.HasPrefix(ticket.Number, "HD-"))
	require.NotNil(t, ticket.IssueTypeID)
	assert.Nil(t, ticket.RequestTypeID)
}

func TestCreateTicketCopiesApprovalFlagFromCategory(t *testing.T) {
	f := newTicketServiceFixture(t)
	draft := f.draft()
	draft.SetCategory("cat-2")
	draft.SetRequestType("rt-1")

	ticket, err := f.service.CreateTicket(context.Background(), f.requester, draft, nil)
	require.NoError(t, err)
	assert.True(t, ticket.RequiresApproval)
}

func TestCreateTicketRejectsInvalidDraft(t *testing.T) {
	f := newTicketServiceFixture(t)
	draft := f.draft()
	draft.Description = ""

	_, err := f.service.CreateTicket(context.Background(), f.requester, draft, nil)
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestCreateTicketRejectsIssueTypeFromOtherCategory(t *testing.T) {
	f := newTicketServiceFixture(t)
	draft := f.draft()
	draft.IssueTypeID = "it-unrelated"

	_, err := f.service.CreateTicket(context.Background(), f.requester, draft, nil)
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestCreateTicketRejectsIneligibleAssignee(t *testing.T) {
	f := newTicketServiceFixture(t)
	draft := f.draft()
	draft.AssigneeID = f.head.ID // not it_team

	_, err := f.service.CreateTicket(context.Background(), f.requester, draft, nil)
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestFirstCommentMovesNewTicketToProcessing(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)

	comment, updated, err := f.service.AddComment(context.Background(), f.agent, ticket.ID, "taking a look", false)
	require.NoError(t, err)
	require.NotNil(t, comment)
	assert.Equal(t, domain.TicketStatusProcessing, updated.Status)
	assert.Equal(t, []domain.TicketStatus{domain.TicketStatusProcessing}, f.tickets.statusWrites)
}

func TestSecondCommentDoesNotTransition(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)

	_, _, err := f.service.AddComment(context.Background(), f.agent, ticket.ID, "first", false)
	require.NoError(t, err)
	_, updated, err := f.service.AddComment(context.Background(), f.agent, ticket.ID, "second", false)
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusProcessing, updated.Status)
	assert.Len(t, f.tickets.statusWrites, 1)
}

func TestCommentSurvivesFailedTransition(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)
	f.tickets.failUpdateStatus = true

	comment, stale, err := f.service.AddComment(context.Background(), f.agent, ticket.ID, "taking a look", false)
	assert.Equal(t, "TRANSITION_FAILED", errCode(t, err))

	// the comment is durable and the reported ticket keeps its server status
	require.NotNil(t, comment)
	assert.Len(t, f.comments.comments, 1)
	require.NotNil(t, stale)
	assert.Equal(t, domain.TicketStatusNew, stale.Status)

	stored, getErr := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.TicketStatusNew, stored.Status)
}

func TestFailedCommentNeverAttemptsTransition(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)
	f.comments.failCreate = true

	_, _, err := f.service.AddComment(context.Background(), f.agent, ticket.ID, "will fail", false)
	assert.Equal(t, "COMMENT_FAILED", errCode(t, err))
	assert.Empty(t, f.tickets.statusWrites)
}

func TestCommentRejectedWhenThreadClosed(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)
	require.NoError(t, f.tickets.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusCompleted))

	_, _, err := f.service.AddComment(context.Background(), f.agent, ticket.ID, "too late", false)
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestCommentRejectedForNonParticipant(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)

	outsider := &domain.User{ID: "user-x", Role: domain.Role("contractor"), Status: domain.UserStatusActive}
	_, _, err := f.service.AddComment(context.Background(), outsider, ticket.ID, "hi", false)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestProcessTicketWithCommentIsCanonicalPath(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)

	updated, err := f.service.ProcessTicket(context.Background(), f.agent, ticket.ID, "on it", true)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusProcessing, updated.Status)
	assert.Len(t, f.comments.comments, 1)
}

func TestCompleteRequiresComment(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)
	require.NoError(t, f.tickets.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusProcessing))
	f.tickets.statusWrites = nil

	_, err := f.service.CompleteTicket(context.Background(), f.agent, ticket.ID, false)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	f.tickets.tickets[ticket.ID].CommentCount = 1
	updated, err := f.service.CompleteTicket(context.Background(), f.agent, ticket.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCompleted, updated.Status)
}

func TestApprovalFlow(t *testing.T) {
	f := newTicketServiceFixture(t)
	draft := f.draft()
	draft.SetCategory("cat-2")
	draft.SetRequestType("rt-1")
	ticket, err := f.service.CreateTicket(context.Background(), f.requester, draft, nil)
	require.NoError(t, err)

	// only approval-flagged tickets may be submitted
	updated, err := f.service.SubmitForApproval(context.Background(), f.requester, ticket.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPendingApproval, updated.Status)

	// it_team cannot approve
	_, err = f.service.ApproveTicket(context.Background(), f.agent, ticket.ID, false)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	updated, err = f.service.ApproveTicket(context.Background(), f.head, ticket.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusApproved, updated.Status)
}

func TestSubmitForApprovalRejectedWithoutFlag(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)

	_, err := f.service.SubmitForApproval(context.Background(), f.requester, ticket.ID, false)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestRejectedTicketCanBeClosed(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)
	require.NoError(t, f.tickets.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusRejected))

	updated, err := f.service.CloseTicket(context.Background(), f.requester, ticket.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, updated.Status)
}

func TestTerminalTicketRejectsTransitions(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)
	require.NoError(t, f.tickets.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusCompleted))

	_, err := f.service.SetStatus(context.Background(), f.agent, ticket.ID, "processing", false)
	assert.Equal(t, "TRANSITION_FAILED", errCode(t, err))
}

func TestSetStatusResolvesTokens(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)

	updated, err := f.service.SetStatus(context.Background(), f.agent, ticket.ID, "In Progress", false)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusProcessing, updated.Status)

	_, err = f.service.SetStatus(context.Background(), f.agent, ticket.ID, "bogus", false)
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestAssignTicketChecksEligibility(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)

	// agent affiliated with another category is rejected
	otherCat := "cat-2"
	f.users.add(domain.User{ID: "user-other", Role: domain.RoleITTeam, CategoryID: &otherCat, Status: domain.UserStatusActive})
	_, err := f.service.AssignTicket(context.Background(), f.head, ticket.ID, "user-other")
	assert.Equal(t, "CONFLICT", errCode(t, err))

	updated, err := f.service.AssignTicket(context.Background(), f.head, ticket.ID, f.agent.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, f.agent.ID, *updated.AssigneeID)
	assert.NotNil(t, updated.AssignedAt)

	// assignment recorded in the audit trail
	require.NotEmpty(t, f.history.entries)
	assert.Equal(t, domain.ChangeTypeAssignee, f.history.entries[len(f.history.entries)-1].ChangeType)
}

func TestAssignTicketForbiddenForRequester(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)

	_, err := f.service.AssignTicket(context.Background(), f.requester, ticket.ID, f.agent.ID)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestListTicketsScopesRequesters(t *testing.T) {
	f := newTicketServiceFixture(t)
	f.createTicket(t)

	other := &domain.User{ID: "user-2", Name: "Sam", Role: domain.RoleTicketCreator, Status: domain.UserStatusActive}
	f.users.add(*other)
	_, err := f.service.CreateTicket(context.Background(), other, f.draft(), nil)
	require.NoError(t, err)

	page, err := f.service.ListTickets(context.Background(), f.requester, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.TotalItems)
	require.Len(t, page.Tickets, 1)
	assert.Equal(t, f.requester.ID, page.Tickets[0].RequesterID)

	// it_team sees everything
	page, err = f.service.ListTickets(context.Background(), f.agent, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.TotalItems)
}

func TestListTicketsSummaryReconciles(t *testing.T) {
	f := newTicketServiceFixture(t)
	first := f.createTicket(t)
	f.createTicket(t)
	require.NoError(t, f.tickets.UpdateStatus(context.Background(), first.ID, domain.TicketStatusProcessing))

	page, err := f.service.ListTickets(context.Background(), f.agent, ListFilter{})
	require.NoError(t, err)
	summary := page.Summary
	assert.Equal(t, 1, summary.New)
	assert.Equal(t, 1, summary.Processing)
	assert.Equal(t, summary.Total,
		summary.New+summary.PendingApproval+summary.Approved+summary.Rejected+summary.Processing+summary.Completed)
}

func TestListTicketsStatusFilterShortCircuitsSummary(t *testing.T) {
	f := newTicketServiceFixture(t)
	first := f.createTicket(t)
	f.createTicket(t)
	require.NoError(t, f.tickets.UpdateStatus(context.Background(), first.ID, domain.TicketStatusProcessing))

	page, err := f.service.ListTickets(context.Background(), f.agent, ListFilter{Status: "processing"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Summary.Processing)
	assert.Equal(t, 1, page.Summary.Total)
	assert.Zero(t, page.Summary.New)
}

func TestGetTicketUnknownID(t *testing.T) {
	f := newTicketServiceFixture(t)
	_, _, _, err := f.service.GetTicket(context.Background(), f.agent, "missing")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestAllowedActionsForDetailView(t *testing.T) {
	f := newTicketServiceFixture(t)
	ticket := f.createTicket(t)

	actions := f.service.AllowedActions(f.agent, ticket)
	assert.Contains(t, actions, workflow.ActionComment)
	assert.Contains(t, actions, workflow.ActionStartProcessing)
	assert.NotContains(t, actions, workflow.ActionApprove)
}
