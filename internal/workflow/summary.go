package workflow

import "github.com/spec-kit/helpdesk-service/internal/domain"

// StatusSummary holds per-status counts for dashboard tiles. Total is always
// the sum of the buckets, never an independently reported figure, so the
// displayed categories reconcile even when upstream data is inconsistent.
type StatusSummary struct {
	New             int `json:"new"`
	PendingApproval int `json:"pendingApproval"`
	Approved        int `json:"approved"`
	Rejected        int `json:"rejected"`
	Processing      int `json:"processing"`
	Completed       int `json:"completed"`
	Total           int `json:"total"`
}

// Tally derives status counts from a ticket collection. When a status filter
// is active the whole collection is already scoped to that status, so the
// tally short-circuits: the filtered count lands in that single bucket and
// every other bucket is zero ("you're looking at N Processing tickets"
// semantics rather than global counts). Status strings are normalized via
// ParseStatus; unparseable statuses are dropped so Total stays the bucket sum.
func Tally(tickets []domain.Ticket, statusFilter string) StatusSummary {
	var summary StatusSummary
	if statusFilter != "" {
		if status, ok := domain.ParseStatus(statusFilter); ok && summary.add(status, len(tickets)) {
			summary.Total = len(tickets)
		}
		return summary
	}
	for i := range tickets {
		status, ok := domain.ParseStatus(string(tickets[i].Status))
		if !ok {
			continue
		}
		if summary.add(status, 1) {
			summary.Total++
		}
	}
	return summary
}

// add places n into the status bucket, reporting whether the status has one.
// Closed tickets have no dashboard tile and stay out of the total too.
func (s *StatusSummary) add(status domain.TicketStatus, n int) bool {
	switch status {
	case domain.TicketStatusNew:
		s.New += n
	case domain.TicketStatusPendingApproval:
		s.PendingApproval += n
	case domain.TicketStatusApproved:
		s.Approved += n
	case domain.TicketStatusRejected:
		s.Rejected += n
	case domain.TicketStatusProcessing:
		s.Processing += n
	case domain.TicketStatusCompleted:
		s.Completed += n
	default:
		return false
	}
	return true
}
