package policy

import (
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// Lifecycle errors surfaced by the pure transition functions.
var (
	ErrEmptyIssue    = errors.New("issue is required")
	ErrUnknownStatus = errors.New("unknown ticket status")
)

// NewTicket builds the initial state of a ticket: status created, latch down,
// submitter becomes the owner. The store assigns the id on create.
func NewTicket(ownerID, issue string, now time.Time) (domain.Ticket, error) {
	issue = strings.TrimSpace(issue)
	if issue == "" {
		return domain.Ticket{}, ErrEmptyIssue
	}
	return domain.Ticket{
		Issue:            issue,
		OwnerID:          ownerID,
		Status:           domain.TicketStatusCreated,
		SupportResponded: false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// TransitionStatus returns a copy of the ticket with the new status applied.
// The status enum is enforced here; the store used to accept any string, which
// was a validation gap.
func TransitionStatus(t domain.Ticket, next domain.TicketStatus, now time.Time) (domain.Ticket, error) {
	if !domain.ValidTicketStatus(next) {
		return domain.Ticket{}, ErrUnknownStatus
	}
	t.Status = next
	t.UpdatedAt = now
	return t, nil
}

// LatchSupportResponded returns a copy with the latch raised. Idempotent; no
// transition function ever lowers it.
func LatchSupportResponded(t domain.Ticket, now time.Time) domain.Ticket {
	if !t.SupportResponded {
		t.SupportResponded = true
		t.UpdatedAt = now
	}
	return t
}
