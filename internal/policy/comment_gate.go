package policy

import "github.com/spec-kit/support-desk/internal/domain"

// Gate messages are consumed verbatim by clients and the test suite.
const (
	MsgCommentNotOwner       = "you can only comment on tickets raised by you"
	MsgCommentBeforeSupport  = "you can't comment on a ticket before support does"
	MsgStaffOnlyOperation    = "customers are not allowed to perform this role"
	MsgAdminOnlyOperation    = "Only admins are allowed to perform this operation"
	MsgTicketViewNotAuthored = "You're not authorized"
)

// GateComment decides whether the actor may comment on the ticket.
//
// Ownership and the support latch are checked only for plain users: a customer
// may comment solely on their own tickets, and only after a support comment
// has raised SupportResponded. Support and admin bypass both checks.
func GateComment(actor *domain.User, ticket *domain.Ticket) Decision {
	if actor.Role != domain.RoleUser {
		return allow
	}
	if ticket == nil || ticket.OwnerID != actor.ID {
		return deny(ReasonNotOwner, MsgCommentNotOwner)
	}
	if !ticket.SupportResponded {
		return deny(ReasonAwaitingSupport, MsgCommentBeforeSupport)
	}
	return allow
}
