package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/persistence"
	"github.com/spec-kit/support-desk/internal/policy"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// OwnTicketsPageSize is the fixed page size for a customer's ticket listing.
const OwnTicketsPageSize = 10

// ClosedReportWindowDays is the trailing window of the closed-ticket report.
const ClosedReportWindowDays = 30

// TicketService coordinates ticket workflows. Every operation resolves the
// actor's current role from the store before consulting the policy evaluator.
type TicketService struct {
	users       repository.UserRepository
	tickets     repository.TicketRepository
	reportCache *persistence.ReportCache
	dispatcher  events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	UserRepo    repository.UserRepository
	TicketRepo  repository.TicketRepository
	ReportCache *persistence.ReportCache
	Dispatcher  events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		users:       deps.UserRepo,
		tickets:     deps.TicketRepo,
		reportCache: deps.ReportCache,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateTicket raises a ticket for the actor. Any authenticated role may
// create one; the actor becomes the owner.
func (s *TicketService) CreateTicket(ctx context.Context, actorID, issue string) (*domain.Ticket, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if d := policy.Authorize(actor, policy.OpTicketCreate, policy.Target{}); !d.Allowed {
		return nil, denialError(policy.OpTicketCreate, d)
	}

	ticket, err := policy.NewTicket(actor.ID, issue, time.Now())
	if err != nil {
		if errors.Is(err, policy.ErrEmptyIssue) {
			return nil, apperrors.NewValidationError("Issue is required", nil)
		}
		return nil, err
	}
	if err := s.tickets.Create(ctx, &ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload:  events.TicketCreatedPayload{Issue: ticket.Issue},
	})
	return &ticket, nil
}

// GetTicket fetches a single ticket. Customers may only read their own;
// support and admin read any.
func (s *TicketService) GetTicket(ctx context.Context, actorID, ticketID string) (*domain.Ticket, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, ticketLookupError(err)
	}
	if d := policy.Authorize(actor, policy.OpTicketView, policy.Target{Ticket: ticket}); !d.Allowed {
		return nil, denialError(policy.OpTicketView, d)
	}
	return ticket, nil
}

// ListOwnTickets returns the actor's tickets, newest first, ten per page.
// Pages are 1-based.
func (s *TicketService) ListOwnTickets(ctx context.Context, actorID string, page int) ([]domain.Ticket, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * OwnTicketsPageSize
	tickets, err := s.tickets.ListByOwner(ctx, actor.ID, OwnTicketsPageSize, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// UpdateStatus overwrites the ticket status. Support and admin only; the
// owner's own customer role does not help. The status enum is enforced.
func (s *TicketService) UpdateStatus(ctx context.Context, actorID, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if d := policy.Authorize(actor, policy.OpTicketUpdateStatus, policy.Target{}); !d.Allowed {
		return nil, denialError(policy.OpTicketUpdateStatus, d)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, ticketLookupError(err)
	}
	oldStatus := ticket.Status
	next, err := policy.TransitionStatus(*ticket, newStatus, time.Now())
	if err != nil {
		if errors.Is(err, policy.ErrUnknownStatus) {
			return nil, apperrors.NewValidationError("ticket status must be one of: created, closed", nil)
		}
		return nil, err
	}
	if err := s.tickets.Update(ctx, &next); err != nil {
		return nil, ticketUpdateError(err)
	}
	s.invalidateReport(ctx)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: next.ID,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: next.Status,
		},
	})
	return &next, nil
}

// DeleteTicket removes a ticket and its thread. Admin only.
func (s *TicketService) DeleteTicket(ctx context.Context, actorID, ticketID string) (*domain.Ticket, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if d := policy.Authorize(actor, policy.OpTicketDelete, policy.Target{}); !d.Allowed {
		return nil, denialError(policy.OpTicketDelete, d)
	}
	ticket, err := s.tickets.Delete(ctx, ticketID)
	if err != nil {
		return nil, ticketLookupError(err)
	}
	s.invalidateReport(ctx)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload:  events.TicketDeletedPayload{OwnerID: ticket.OwnerID},
	})
	return ticket, nil
}

// ClosedTicketsReport returns tickets closed within the trailing report
// window: start of day (UTC) ClosedReportWindowDays back through now, both
// ends inclusive. Intentionally open to any authenticated actor.
func (s *TicketService) ClosedTicketsReport(ctx context.Context, actorID string) ([]domain.Ticket, error) {
	if _, err := s.resolveActor(ctx, actorID); err != nil {
		return nil, err
	}

	if cached, ok := s.reportCache.Get(ctx); ok {
		return cached, nil
	}

	to := time.Now()
	from := to.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -ClosedReportWindowDays)
	tickets, err := s.tickets.ListClosedBetween(ctx, from, to)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.reportCache.Set(ctx, tickets)
	return tickets, nil
}

func (s *TicketService) resolveActor(ctx context.Context, actorID string) (*domain.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, actorLookupError(err)
	}
	return actor, nil
}

func (s *TicketService) invalidateReport(ctx context.Context) {
	s.reportCache.Invalidate(ctx)
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

func actorLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewDomainError(apperrors.CodeNotFound, "user does not exist", http.StatusNotFound, nil)
	}
	return apperrors.MapError(err)
}

func ticketLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewDomainError(apperrors.CodeNotFound, "ticket not found", http.StatusNotFound, nil)
	}
	return apperrors.MapError(err)
}

func ticketUpdateError(err error) error {
	if errors.Is(err, repository.ErrVersionConflict) {
		return apperrors.NewConflict("ticket was modified concurrently, retry the request", 0)
	}
	return ticketLookupError(err)
}

// denialError converts an evaluator denial into the wire-contract error. The
// legacy statuses are uneven: the ownership check on ticket reads answers 400,
// the staff and admin gates answer 401, and the comment latch is a 400
// validation failure.
func denialError(op policy.Operation, d policy.Decision) error {
	switch d.Reason {
	case policy.ReasonAwaitingSupport:
		return apperrors.NewValidationError(d.Message, nil)
	case policy.ReasonNotOwner:
		if op == policy.OpTicketView {
			return apperrors.NewAuthorizationDenied(d.Message, http.StatusBadRequest)
		}
		return apperrors.NewAuthorizationDenied(d.Message, http.StatusUnauthorized)
	case policy.ReasonStaffOnly, policy.ReasonAdminOnly:
		return apperrors.NewAuthorizationDenied(d.Message, http.StatusUnauthorized)
	}
	return apperrors.NewAuthorizationDenied(d.Message, http.StatusForbidden)
}
