package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func ticketsWithStatuses(statuses ...domain.TicketStatus) []domain.Ticket {
	out := make([]domain.Ticket, len(statuses))
	for i, s := range statuses {
		out[i] = domain.Ticket{Status: s}
	}
	return out
}

func bucketSum(s StatusSummary) int {
	return s.New + s.PendingApproval + s.Approved + s.Rejected + s.Processing + s.Completed
}

func TestTallyUnfiltered(t *testing.T) {
	tickets := ticketsWithStatuses(
		domain.TicketStatusNew,
		domain.TicketStatusNew,
		domain.TicketStatusProcessing,
		domain.TicketStatusCompleted,
		domain.TicketStatusPendingApproval,
	)
	summary := Tally(tickets, "")
	assert.Equal(t, 2, summary.New)
	assert.Equal(t, 1, summary.Processing)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 1, summary.PendingApproval)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, summary.Total, bucketSum(summary))
}

func TestTallyNormalizesStatusTokens(t *testing.T) {
	tickets := []domain.Ticket{
		{Status: domain.TicketStatus("pending approval")},
		{Status: domain.TicketStatus("In-Progress")},
		{Status: domain.TicketStatus("open")},
	}
	summary := Tally(tickets, "")
	assert.Equal(t, 1, summary.PendingApproval)
	assert.Equal(t, 1, summary.Processing)
	assert.Equal(t, 1, summary.New)
	assert.Equal(t, 3, summary.Total)
}

func TestTallyDropsUnknownStatuses(t *testing.T) {
	tickets := []domain.Ticket{
		{Status: domain.TicketStatusNew},
		{Status: domain.TicketStatus("archived")},
	}
	summary := Tally(tickets, "")
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, summary.Total, bucketSum(summary))
}

func TestTallyStatusFilterShortCircuits(t *testing.T) {
	// the collection is already scoped by the filter; every ticket counts
	// toward the single filtered bucket
	tickets := ticketsWithStatuses(
		domain.TicketStatusProcessing,
		domain.TicketStatusProcessing,
		domain.TicketStatusProcessing,
	)
	summary := Tally(tickets, "processing")
	assert.Equal(t, 3, summary.Processing)
	assert.Equal(t, 3, summary.Total)
	assert.Zero(t, summary.New)
	assert.Zero(t, summary.Completed)
}

func TestTallyFilterTokenNormalized(t *testing.T) {
	tickets := ticketsWithStatuses(domain.TicketStatusPendingApproval, domain.TicketStatusPendingApproval)
	summary := Tally(tickets, "Pending Approval")
	assert.Equal(t, 2, summary.PendingApproval)
	assert.Equal(t, 2, summary.Total)
}

func TestTallyClosedStaysOutOfBucketsAndTotal(t *testing.T) {
	tickets := ticketsWithStatuses(domain.TicketStatusNew, domain.TicketStatusClosed)
	summary := Tally(tickets, "")
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, summary.Total, bucketSum(summary))
}

func TestTallyEmptyCollection(t *testing.T) {
	summary := Tally(nil, "")
	assert.Zero(t, summary.Total)
	assert.Equal(t, StatusSummary{}, summary)
}
