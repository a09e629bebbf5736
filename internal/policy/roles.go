package policy

import "github.com/spec-kit/support-desk/internal/domain"

// Capability names a single permitted action. Capabilities are static per
// role; ownership and ticket state are layered on top by the evaluator.
type Capability string

const (
	CapCreateTicket       Capability = "ticket:create"
	CapViewOwnTicket      Capability = "ticket:view_own"
	CapViewAnyTicket      Capability = "ticket:view_any"
	CapUpdateTicketStatus Capability = "ticket:update_status"
	CapDeleteTicket       Capability = "ticket:delete"
	CapCreateComment      Capability = "comment:create"
	CapViewComments       Capability = "comment:view"
	CapEditAnyComment     Capability = "comment:edit_any"
	CapDeleteAnyComment   Capability = "comment:delete_any"
)

// roleCapabilities is the full role model. Admin is listed explicitly wherever
// support is privileged; there is no inheritance between roles.
var roleCapabilities = map[domain.Role]map[Capability]struct{}{
	domain.RoleUser: capSet(
		CapCreateTicket,
		CapViewOwnTicket,
		CapCreateComment,
		CapViewComments,
	),
	domain.RoleSupport: capSet(
		CapCreateTicket,
		CapViewOwnTicket,
		CapViewAnyTicket,
		CapUpdateTicketStatus,
		CapCreateComment,
		CapViewComments,
	),
	domain.RoleAdmin: capSet(
		CapCreateTicket,
		CapViewOwnTicket,
		CapViewAnyTicket,
		CapUpdateTicketStatus,
		CapDeleteTicket,
		CapCreateComment,
		CapViewComments,
		CapEditAnyComment,
		CapDeleteAnyComment,
	),
}

func capSet(caps ...Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// HasCapability reports whether the role holds the capability.
func HasCapability(role domain.Role, cap Capability) bool {
	_, ok := roleCapabilities[role][cap]
	return ok
}

// Capabilities returns the static capability set for a role.
func Capabilities(role domain.Role) []Capability {
	set := roleCapabilities[role]
	caps := make([]Capability, 0, len(set))
	for c := range set {
		caps = append(caps, c)
	}
	return caps
}
