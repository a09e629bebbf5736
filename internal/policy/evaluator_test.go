package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/support-desk/internal/domain"
)

func TestAuthorize_TicketCreate_AnyRole(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleSupport, domain.RoleAdmin} {
		d := Authorize(gateUser("x", role), OpTicketCreate, Target{})
		assert.True(t, d.Allowed, "role %s", role)
	}
}

func TestAuthorize_TicketView_OwnerAllowed(t *testing.T) {
	d := Authorize(gateUser("u1", domain.RoleUser), OpTicketView, Target{Ticket: gateTicket("u1", false)})
	assert.True(t, d.Allowed)
}

func TestAuthorize_TicketView_NonOwnerUserDenied(t *testing.T) {
	d := Authorize(gateUser("u2", domain.RoleUser), OpTicketView, Target{Ticket: gateTicket("u1", true)})

	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotOwner, d.Reason)
	assert.Equal(t, MsgTicketViewNotAuthored, d.Message)
}

func TestAuthorize_TicketView_StaffSeeAnyTicket(t *testing.T) {
	target := Target{Ticket: gateTicket("u1", false)}
	assert.True(t, Authorize(gateUser("s1", domain.RoleSupport), OpTicketView, target).Allowed)
	assert.True(t, Authorize(gateUser("a1", domain.RoleAdmin), OpTicketView, target).Allowed)
}

func TestAuthorize_UpdateStatus_UserDenied(t *testing.T) {
	d := Authorize(gateUser("u1", domain.RoleUser), OpTicketUpdateStatus, Target{Ticket: gateTicket("u1", true)})

	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonStaffOnly, d.Reason)
	assert.Equal(t, MsgStaffOnlyOperation, d.Message)
}

func TestAuthorize_UpdateStatus_OwnershipIrrelevantForStaff(t *testing.T) {
	// Support may close a ticket it does not own.
	d := Authorize(gateUser("s1", domain.RoleSupport), OpTicketUpdateStatus, Target{Ticket: gateTicket("u1", false)})
	assert.True(t, d.Allowed)
}

func TestAuthorize_TicketDelete_AdminOnly(t *testing.T) {
	target := Target{Ticket: gateTicket("u1", true)}

	assert.True(t, Authorize(gateUser("a1", domain.RoleAdmin), OpTicketDelete, target).Allowed)

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleSupport} {
		d := Authorize(gateUser("x", role), OpTicketDelete, target)
		assert.False(t, d.Allowed, "role %s", role)
		assert.Equal(t, ReasonAdminOnly, d.Reason)
		assert.Equal(t, MsgAdminOnlyOperation, d.Message)
	}
}

func TestAuthorize_CommentCreate_DelegatesToGate(t *testing.T) {
	d := Authorize(gateUser("u1", domain.RoleUser), OpCommentCreate, Target{Ticket: gateTicket("u1", false)})

	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAwaitingSupport, d.Reason)
}

func TestAuthorize_CommentEditDelete_AdminOnly(t *testing.T) {
	for _, op := range []Operation{OpCommentEdit, OpCommentDelete} {
		assert.True(t, Authorize(gateUser("a1", domain.RoleAdmin), op, Target{}).Allowed)

		d := Authorize(gateUser("s1", domain.RoleSupport), op, Target{})
		assert.False(t, d.Allowed, "op %s", op)
		assert.Equal(t, ReasonAdminOnly, d.Reason)
	}
}

func TestAuthorize_UnknownOperation(t *testing.T) {
	d := Authorize(gateUser("u1", domain.RoleUser), Operation("ticket.transmogrify"), Target{})

	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnknownOp, d.Reason)
}
