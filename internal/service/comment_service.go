package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/policy"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// CommentService owns the comment thread and the workflow gate around it.
type CommentService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles collaborators for the comment service.
type CommentDependencies struct {
	UserRepo    repository.UserRepository
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	Dispatcher  events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		users:      deps.UserRepo,
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CommentWithAuthor is a comment with the author identity denormalized for
// thread listings.
type CommentWithAuthor struct {
	domain.Comment
	AuthorEmail string
}

// EditCommentInput carries partial-update fields; nil fields are untouched.
type EditCommentInput struct {
	Body *string
}

// CreateComment appends a comment to a ticket's thread after the gate passes.
//
// Customers may only comment on tickets they raised, and only once support
// has responded. A support comment raises the ticket's one-way latch
// atomically at the store boundary, so the very next gate check anywhere
// observes it.
func (s *CommentService) CreateComment(ctx context.Context, actorID, ticketID, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("comment is required", nil)
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, actorLookupError(err)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, commentTicketLookupError(err)
	}

	if d := policy.Authorize(actor, policy.OpCommentCreate, policy.Target{Ticket: ticket}); !d.Allowed {
		return nil, denialError(policy.OpCommentCreate, d)
	}

	comment := &domain.Comment{
		TicketID:   ticket.ID,
		AuthorID:   actor.ID,
		AuthorRole: actor.Role,
		Body:       body,
		CreatedAt:  time.Now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	if actor.Role == domain.RoleSupport {
		if err := s.tickets.SetSupportResponded(ctx, ticket.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.MapError(err)
		}
		s.publishEvent(ctx, events.Event{
			Type:     events.EventSupportResponded,
			TicketID: ticket.ID,
			Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
			Payload:  events.SupportRespondedPayload{CommentID: comment.ID},
		})
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			AuthorRole:  comment.AuthorRole,
			BodyPreview: bodyPreview(comment.Body, 120),
		},
	})
	return comment, nil
}

// ListComments returns the full thread of a ticket, oldest first, with author
// identities resolved. Any authenticated actor may read a thread.
func (s *CommentService) ListComments(ctx context.Context, actorID, ticketID string) ([]CommentWithAuthor, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, actorLookupError(err)
	}
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, commentTicketLookupError(err)
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := make([]CommentWithAuthor, 0, len(comments))
	for _, comment := range comments {
		entry := CommentWithAuthor{Comment: comment}
		if author, err := s.users.GetByID(ctx, comment.AuthorID); err == nil {
			entry.AuthorEmail = author.Email
		}
		result = append(result, entry)
	}
	return result, nil
}

// GetCommentByID fetches one comment. The route is mounted under the admin
// prefix but requires authentication only; tightening it to admin would break
// the published contract.
func (s *CommentService) GetCommentByID(ctx context.Context, actorID, commentID string) (*domain.Comment, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, actorLookupError(err)
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, commentLookupError(err)
	}
	return comment, nil
}

// EditComment applies a partial update to a comment. Admin only, regardless
// of original authorship.
func (s *CommentService) EditComment(ctx context.Context, actorID, commentID string, input EditCommentInput) (*domain.Comment, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, actorLookupError(err)
	}
	if d := policy.Authorize(actor, policy.OpCommentEdit, policy.Target{}); !d.Allowed {
		return nil, denialError(policy.OpCommentEdit, d)
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, commentLookupError(err)
	}
	if input.Body != nil {
		body := strings.TrimSpace(*input.Body)
		if body == "" {
			return nil, apperrors.NewValidationError("comment is required", nil)
		}
		comment.Body = body
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, commentLookupError(err)
	}
	return comment, nil
}

// DeleteComment removes a comment and returns the removed record. Admin only.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID string) (*domain.Comment, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, actorLookupError(err)
	}
	if d := policy.Authorize(actor, policy.OpCommentDelete, policy.Target{}); !d.Allowed {
		return nil, denialError(policy.OpCommentDelete, d)
	}
	comment, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		return nil, commentLookupError(err)
	}
	return comment, nil
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
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

func commentTicketLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewDomainError(apperrors.CodeNotFound, "ticket does not exist", http.StatusNotFound, nil)
	}
	return apperrors.MapError(err)
}

// commentLookupError answers 400 for a missing comment, the status the admin
// comment routes have always used.
func commentLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewDomainError(apperrors.CodeNotFound, "comment not found", http.StatusBadRequest, nil)
	}
	return apperrors.MapError(err)
}

func bodyPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
