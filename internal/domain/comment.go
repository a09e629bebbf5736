package domain

import "time"

// Comment is a message in a ticket's thread. AuthorRole is a snapshot of the
// author's role at creation time and is not re-resolved afterwards.
type Comment struct {
	ID         string
	TicketID   string
	AuthorID   string
	AuthorRole Role
	Body       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
