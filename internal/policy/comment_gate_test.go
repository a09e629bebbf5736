package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/support-desk/internal/domain"
)

func gateUser(id string, role domain.Role) *domain.User {
	return &domain.User{ID: id, Email: id + "@example.com", Role: role}
}

func gateTicket(owner string, responded bool) *domain.Ticket {
	return &domain.Ticket{ID: "t1", Issue: "printer on fire", OwnerID: owner, Status: domain.TicketStatusCreated, SupportResponded: responded}
}

func TestGateComment_OwnerBlockedBeforeSupport(t *testing.T) {
	d := GateComment(gateUser("u1", domain.RoleUser), gateTicket("u1", false))

	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAwaitingSupport, d.Reason)
	assert.Equal(t, MsgCommentBeforeSupport, d.Message)
}

func TestGateComment_OwnerAllowedAfterSupport(t *testing.T) {
	d := GateComment(gateUser("u1", domain.RoleUser), gateTicket("u1", true))

	assert.True(t, d.Allowed)
	assert.Empty(t, d.Message)
}

func TestGateComment_NonOwnerDeniedRegardlessOfLatch(t *testing.T) {
	for _, responded := range []bool{false, true} {
		d := GateComment(gateUser("u2", domain.RoleUser), gateTicket("u1", responded))

		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonNotOwner, d.Reason)
		assert.Equal(t, MsgCommentNotOwner, d.Message)
	}
}

func TestGateComment_OwnershipCheckedBeforeLatch(t *testing.T) {
	// A non-owner on an unresponded ticket gets the ownership message,
	// not the latch message.
	d := GateComment(gateUser("u2", domain.RoleUser), gateTicket("u1", false))
	assert.Equal(t, ReasonNotOwner, d.Reason)
}

func TestGateComment_SupportBypassesBothChecks(t *testing.T) {
	d := GateComment(gateUser("s1", domain.RoleSupport), gateTicket("u1", false))
	assert.True(t, d.Allowed)
}

func TestGateComment_AdminBypassesBothChecks(t *testing.T) {
	d := GateComment(gateUser("a1", domain.RoleAdmin), gateTicket("u1", false))
	assert.True(t, d.Allowed)
}

func TestGateComment_NilTicketDeniedForUser(t *testing.T) {
	d := GateComment(gateUser("u1", domain.RoleUser), nil)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotOwner, d.Reason)
}
