package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository/memory"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// fixture bundles the full service stack over an in-memory store.
type fixture struct {
	store    *memory.Store
	auth     *AuthService
	tickets  *TicketService
	comments *CommentService
	events   *recordingDispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	dispatcher := &recordingDispatcher{}

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 15
	cfg.Auth.BcryptCost = 4

	return &fixture{
		store: store,
		auth:  NewAuthService(cfg, store.Users()),
		tickets: NewTicketService(TicketDependencies{
			UserRepo:   store.Users(),
			TicketRepo: store.Tickets(),
			Dispatcher: dispatcher,
		}),
		comments: NewCommentService(CommentDependencies{
			UserRepo:    store.Users(),
			TicketRepo:  store.Tickets(),
			CommentRepo: store.Comments(),
			Dispatcher:  dispatcher,
		}),
		events: dispatcher,
	}
}

// newUser registers an account with the given role and returns it.
func (f *fixture) newUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	user, _, _, err := f.auth.SignUp(context.Background(), email, "hunter22", role)
	require.NoError(t, err)
	return user
}

func (f *fixture) newTicket(t *testing.T, ownerID, issue string) *domain.Ticket {
	t.Helper()
	ticket, err := f.tickets.CreateTicket(context.Background(), ownerID, issue)
	require.NoError(t, err)
	return ticket
}

// recordingDispatcher captures every published event.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	var out []events.Event
	for _, e := range d.published {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// requireDomainError asserts the error is a DomainError with the given
// message and HTTP status.
func requireDomainError(t *testing.T, err error, message string, status int) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, message, domainErr.Message)
	require.Equal(t, status, domainErr.HTTPStatus)
	return domainErr
}
