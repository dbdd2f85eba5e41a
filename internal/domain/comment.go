package domain

import "time"

// TicketComment captures an entry in a ticket's comment thread.
type TicketComment struct {
	ID         string
	TicketID   string
	AuthorID   string
	AuthorName string
	Body       string
	CreatedAt  time.Time
}

// AttachmentReference stores metadata for ticket attachments. StorageKey
// points into the configured attachment store; the download URL is derived
// from injected configuration, never hard-coded.
type AttachmentReference struct {
	ID         string
	TicketID   string
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}
