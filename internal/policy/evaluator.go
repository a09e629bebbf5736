package policy

import "github.com/spec-kit/support-desk/internal/domain"

// Operation identifies the action being authorized.
type Operation string

const (
	OpTicketCreate       Operation = "ticket.create"
	OpTicketView         Operation = "ticket.view"
	OpTicketUpdateStatus Operation = "ticket.update_status"
	OpTicketDelete       Operation = "ticket.delete"
	OpCommentCreate      Operation = "comment.create"
	OpCommentView        Operation = "comment.view"
	OpCommentEdit        Operation = "comment.edit"
	OpCommentDelete      Operation = "comment.delete"
)

// Reason classifies a denial.
type Reason string

const (
	ReasonNotOwner        Reason = "not_owner"
	ReasonAwaitingSupport Reason = "awaiting_support"
	ReasonStaffOnly       Reason = "staff_only"
	ReasonAdminOnly       Reason = "admin_only"
	ReasonUnknownOp       Reason = "unknown_operation"
)

// Decision is the outcome of an authorization check. Message texts are part of
// the external contract and must stay stable.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

// Target carries the entity state a decision depends on. Only the fields the
// operation needs have to be set.
type Target struct {
	Ticket *domain.Ticket
}

var allow = Decision{Allowed: true}

func deny(reason Reason, message string) Decision {
	return Decision{Reason: reason, Message: message}
}

// Authorize is the single decision entry point invoked before every mutation
// or privileged read. The actor must have been freshly loaded from the store
// by the caller: role claims baked into tokens are never consulted, so a role
// change takes effect on the actor's next request.
func Authorize(actor *domain.User, op Operation, target Target) Decision {
	switch op {
	case OpTicketCreate:
		// Any authenticated role may raise a ticket.
		return allow

	case OpTicketView:
		if HasCapability(actor.Role, CapViewAnyTicket) {
			return allow
		}
		if target.Ticket != nil && target.Ticket.OwnerID == actor.ID {
			return allow
		}
		return deny(ReasonNotOwner, MsgTicketViewNotAuthored)

	case OpTicketUpdateStatus:
		if HasCapability(actor.Role, CapUpdateTicketStatus) {
			return allow
		}
		return deny(ReasonStaffOnly, MsgStaffOnlyOperation)

	case OpTicketDelete:
		if HasCapability(actor.Role, CapDeleteTicket) {
			return allow
		}
		return deny(ReasonAdminOnly, MsgAdminOnlyOperation)

	case OpCommentCreate:
		return GateComment(actor, target.Ticket)

	case OpCommentView:
		if HasCapability(actor.Role, CapViewComments) {
			return allow
		}
		return deny(ReasonAdminOnly, MsgAdminOnlyOperation)

	case OpCommentEdit:
		if HasCapability(actor.Role, CapEditAnyComment) {
			return allow
		}
		return deny(ReasonAdminOnly, MsgAdminOnlyOperation)

	case OpCommentDelete:
		if HasCapability(actor.Role, CapDeleteAnyComment) {
			return allow
		}
		return deny(ReasonAdminOnly, MsgAdminOnlyOperation)
	}
	return deny(ReasonUnknownOp, "operation not recognized")
}
