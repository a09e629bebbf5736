package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/policy"
)

func TestCreateTicket(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)

	ticket, err := f.tickets.CreateTicket(context.Background(), owner.ID, "my laptop screen flickers")
	require.NoError(t, err)

	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, owner.ID, ticket.OwnerID)
	assert.Equal(t, domain.TicketStatusCreated, ticket.Status)
	assert.False(t, ticket.SupportResponded)

	created := f.events.byType(events.EventTicketCreated)
	require.Len(t, created, 1)
	assert.Equal(t, ticket.ID, created[0].TicketID)
}

func TestCreateTicket_EmptyIssue(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)

	_, err := f.tickets.CreateTicket(context.Background(), owner.ID, "   ")
	requireDomainError(t, err, "Issue is required", http.StatusBadRequest)
}

func TestCreateTicket_UnknownActor(t *testing.T) {
	f := newFixture(t)

	_, err := f.tickets.CreateTicket(context.Background(), "ghost", "issue")
	requireDomainError(t, err, "user does not exist", http.StatusNotFound)
}

func TestGetTicket_OwnerReadsOwn(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	ticket := f.newTicket(t, owner.ID, "vpn drops every hour")

	got, err := f.tickets.GetTicket(context.Background(), owner.ID, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, got.ID)
}

func TestGetTicket_NonOwnerCustomerDenied(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	other := f.newUser(t, "bob@example.com", domain.RoleUser)
	ticket := f.newTicket(t, owner.ID, "vpn drops every hour")

	_, err := f.tickets.GetTicket(context.Background(), other.ID, ticket.ID)
	requireDomainError(t, err, policy.MsgTicketViewNotAuthored, http.StatusBadRequest)
}

func TestGetTicket_StaffReadAnyTicket(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	support := f.newUser(t, "sam@example.com", domain.RoleSupport)
	admin := f.newUser(t, "root@example.com", domain.RoleAdmin)
	ticket := f.newTicket(t, owner.ID, "vpn drops every hour")

	for _, actor := range []*domain.User{support, admin} {
		_, err := f.tickets.GetTicket(context.Background(), actor.ID, ticket.ID)
		require.NoError(t, err)
	}
}

func TestGetTicket_NotFound(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)

	_, err := f.tickets.GetTicket(context.Background(), owner.ID, "nope")
	requireDomainError(t, err, "ticket not found", http.StatusNotFound)
}

func TestListOwnTickets_Pagination(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	other := f.newUser(t, "bob@example.com", domain.RoleUser)

	for i := 0; i < 12; i++ {
		f.newTicket(t, owner.ID, "issue")
	}
	f.newTicket(t, other.ID, "someone else's issue")

	page1, err := f.tickets.ListOwnTickets(context.Background(), owner.ID, 1)
	require.NoError(t, err)
	assert.Len(t, page1, OwnTicketsPageSize)

	page2, err := f.tickets.ListOwnTickets(context.Background(), owner.ID, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	page3, err := f.tickets.ListOwnTickets(context.Background(), owner.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, page3)

	for _, ticket := range append(page1, page2...) {
		assert.Equal(t, owner.ID, ticket.OwnerID)
	}
}

func TestListOwnTickets_PageBelowOneTreatedAsFirst(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	f.newTicket(t, owner.ID, "issue")

	tickets, err := f.tickets.ListOwnTickets(context.Background(), owner.ID, 0)
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestUpdateStatus_CustomerDeniedEvenOnOwnTicket(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	ticket := f.newTicket(t, owner.ID, "issue")

	_, err := f.tickets.UpdateStatus(context.Background(), owner.ID, ticket.ID, domain.TicketStatusClosed)
	requireDomainError(t, err, policy.MsgStaffOnlyOperation, http.StatusUnauthorized)
}

func TestUpdateStatus_SupportClosesTicket(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	support := f.newUser(t, "sam@example.com", domain.RoleSupport)
	ticket := f.newTicket(t, owner.ID, "issue")

	updated, err := f.tickets.UpdateStatus(context.Background(), support.ID, ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, updated.Status)

	changed := f.events.byType(events.EventTicketStatusChanged)
	require.Len(t, changed, 1)

	// The owner reads the new status back.
	got, err := f.tickets.GetTicket(context.Background(), owner.ID, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, got.Status)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	support := f.newUser(t, "sam@example.com", domain.RoleSupport)
	ticket := f.newTicket(t, owner.ID, "issue")

	_, err := f.tickets.UpdateStatus(context.Background(), support.ID, ticket.ID, domain.TicketStatus("archived"))
	requireDomainError(t, err, "ticket status must be one of: created, closed", http.StatusBadRequest)
}

func TestUpdateStatus_PreservesLatch(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	support := f.newUser(t, "sam@example.com", domain.RoleSupport)
	ticket := f.newTicket(t, owner.ID, "issue")

	_, err := f.comments.CreateComment(context.Background(), support.ID, ticket.ID, "looking into it")
	require.NoError(t, err)

	updated, err := f.tickets.UpdateStatus(context.Background(), support.ID, ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.True(t, updated.SupportResponded)
}

func TestDeleteTicket_AdminOnly(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	support := f.newUser(t, "sam@example.com", domain.RoleSupport)
	admin := f.newUser(t, "root@example.com", domain.RoleAdmin)
	ticket := f.newTicket(t, owner.ID, "issue")

	for _, actor := range []*domain.User{owner, support} {
		_, err := f.tickets.DeleteTicket(context.Background(), actor.ID, ticket.ID)
		requireDomainError(t, err, policy.MsgAdminOnlyOperation, http.StatusUnauthorized)
	}

	deleted, err := f.tickets.DeleteTicket(context.Background(), admin.ID, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, deleted.ID)

	_, err = f.tickets.GetTicket(context.Background(), admin.ID, ticket.ID)
	requireDomainError(t, err, "ticket not found", http.StatusNotFound)
}

func TestDeleteTicket_RemovesThread(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	support := f.newUser(t, "sam@example.com", domain.RoleSupport)
	admin := f.newUser(t, "root@example.com", domain.RoleAdmin)
	ticket := f.newTicket(t, owner.ID, "issue")

	comment, err := f.comments.CreateComment(context.Background(), support.ID, ticket.ID, "on it")
	require.NoError(t, err)

	_, err = f.tickets.DeleteTicket(context.Background(), admin.ID, ticket.ID)
	require.NoError(t, err)

	_, err = f.comments.GetCommentByID(context.Background(), admin.ID, comment.ID)
	requireDomainError(t, err, "comment not found", http.StatusBadRequest)
}

func TestClosedTicketsReport(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	support := f.newUser(t, "sam@example.com", domain.RoleSupport)

	open := f.newTicket(t, owner.ID, "still open")
	closed := f.newTicket(t, owner.ID, "resolved")
	_, err := f.tickets.UpdateStatus(context.Background(), support.ID, closed.ID, domain.TicketStatusClosed)
	require.NoError(t, err)

	// Open to any authenticated actor, including plain customers.
	report, err := f.tickets.ClosedTicketsReport(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, closed.ID, report[0].ID)
	assert.NotEqual(t, open.ID, report[0].ID)
}

// Role changes act on the next request because the store, not the token, is
// the source of truth for roles.
func TestRoleDemotion_TakesEffectImmediately(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "alice@example.com", domain.RoleUser)
	support := f.newUser(t, "sam@example.com", domain.RoleSupport)
	ticket := f.newTicket(t, owner.ID, "issue")

	_, err := f.tickets.UpdateStatus(context.Background(), support.ID, ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)

	require.NoError(t, f.store.Users().UpdateRole(context.Background(), support.ID, domain.RoleUser))

	_, err = f.tickets.UpdateStatus(context.Background(), support.ID, ticket.ID, domain.TicketStatusCreated)
	requireDomainError(t, err, policy.MsgStaffOnlyOperation, http.StatusUnauthorized)
}
