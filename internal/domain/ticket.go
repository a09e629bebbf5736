package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusCreated TicketStatus = "created"
	TicketStatusClosed  TicketStatus = "closed"
)

// ValidTicketStatus reports whether s is a known lifecycle state. Status
// updates are rejected at the transition boundary for anything else.
func ValidTicketStatus(s TicketStatus) bool {
	return s == TicketStatusCreated || s == TicketStatusClosed
}

// Ticket is the aggregate for customer support requests.
//
// SupportResponded is a one-way latch: false at creation, flipped to true by
// the first comment whose author's current role is support, never reset.
// Version backs optimistic updates at the store boundary and is omitted from
// API representations.
type Ticket struct {
	ID               string
	Issue            string
	OwnerID          string
	Status           TicketStatus
	SupportResponded bool
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
