package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
)

func TestUserStore_DuplicateEmailCaseInsensitive(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Users().Create(ctx, &domain.User{Email: "Alice@Example.com", Role: domain.RoleUser}))

	err := store.Users().Create(ctx, &domain.User{Email: "alice@example.com", Role: domain.RoleUser})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestTicketStore_VersionConflict(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	ticket := &domain.Ticket{Issue: "broken", OwnerID: "u1", Status: domain.TicketStatusCreated}
	require.NoError(t, store.Tickets().Create(ctx, ticket))
	require.Equal(t, int64(1), ticket.Version)

	stale := *ticket

	fresh := *ticket
	fresh.Status = domain.TicketStatusClosed
	require.NoError(t, store.Tickets().Update(ctx, &fresh))
	assert.Equal(t, int64(2), fresh.Version)

	stale.Status = domain.TicketStatusCreated
	err := store.Tickets().Update(ctx, &stale)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
}

// A stale writer that read the ticket before the latch was raised cannot
// lower it: the store keeps the latch on any successful update.
func TestTicketStore_LatchSurvivesStaleWrite(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	ticket := &domain.Ticket{Issue: "broken", OwnerID: "u1", Status: domain.TicketStatusCreated}
	require.NoError(t, store.Tickets().Create(ctx, ticket))

	// Snapshot before the latch; latch raised out of band.
	snapshot := *ticket
	require.NoError(t, store.Tickets().SetSupportResponded(ctx, ticket.ID))

	snapshot.Status = domain.TicketStatusClosed
	snapshot.SupportResponded = false
	require.NoError(t, store.Tickets().Update(ctx, &snapshot))

	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, got.SupportResponded)
	assert.Equal(t, domain.TicketStatusClosed, got.Status)
}

func TestTicketStore_SetSupportRespondedIdempotent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	ticket := &domain.Ticket{Issue: "broken", OwnerID: "u1", Status: domain.TicketStatusCreated}
	require.NoError(t, store.Tickets().Create(ctx, ticket))

	require.NoError(t, store.Tickets().SetSupportResponded(ctx, ticket.ID))
	require.NoError(t, store.Tickets().SetSupportResponded(ctx, ticket.ID))

	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, got.SupportResponded)

	assert.ErrorIs(t, store.Tickets().SetSupportResponded(ctx, "nope"), repository.ErrNotFound)
}

func TestTicketStore_DeleteCascadesComments(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	ticket := &domain.Ticket{Issue: "broken", OwnerID: "u1", Status: domain.TicketStatusCreated}
	require.NoError(t, store.Tickets().Create(ctx, ticket))

	comment := &domain.Comment{TicketID: ticket.ID, AuthorID: "s1", AuthorRole: domain.RoleSupport, Body: "hi"}
	require.NoError(t, store.Comments().Create(ctx, comment))

	other := &domain.Ticket{Issue: "other", OwnerID: "u1", Status: domain.TicketStatusCreated}
	require.NoError(t, store.Tickets().Create(ctx, other))
	keep := &domain.Comment{TicketID: other.ID, AuthorID: "s1", AuthorRole: domain.RoleSupport, Body: "keep"}
	require.NoError(t, store.Comments().Create(ctx, keep))

	_, err := store.Tickets().Delete(ctx, ticket.ID)
	require.NoError(t, err)

	_, err = store.Comments().GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.Comments().GetByID(ctx, keep.ID)
	assert.NoError(t, err)
}

func TestTicketStore_ListByOwnerNewestFirst(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ticket := &domain.Ticket{Issue: "issue", OwnerID: "u1", Status: domain.TicketStatusCreated}
		require.NoError(t, store.Tickets().Create(ctx, ticket))
	}

	listed, err := store.Tickets().ListByOwner(ctx, "u1", 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i := 1; i < len(listed); i++ {
		assert.False(t, listed[i-1].CreatedAt.Before(listed[i].CreatedAt))
	}

	listed, err = store.Tickets().ListByOwner(ctx, "u1", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
