package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/support-desk/internal/domain"
)

func TestHasCapability_User(t *testing.T) {
	assert.True(t, HasCapability(domain.RoleUser, CapCreateTicket))
	assert.True(t, HasCapability(domain.RoleUser, CapViewOwnTicket))
	assert.True(t, HasCapability(domain.RoleUser, CapCreateComment))
	assert.True(t, HasCapability(domain.RoleUser, CapViewComments))

	assert.False(t, HasCapability(domain.RoleUser, CapViewAnyTicket))
	assert.False(t, HasCapability(domain.RoleUser, CapUpdateTicketStatus))
	assert.False(t, HasCapability(domain.RoleUser, CapDeleteTicket))
	assert.False(t, HasCapability(domain.RoleUser, CapEditAnyComment))
	assert.False(t, HasCapability(domain.RoleUser, CapDeleteAnyComment))
}

func TestHasCapability_Support(t *testing.T) {
	assert.True(t, HasCapability(domain.RoleSupport, CapViewAnyTicket))
	assert.True(t, HasCapability(domain.RoleSupport, CapUpdateTicketStatus))
	assert.True(t, HasCapability(domain.RoleSupport, CapCreateComment))

	// Support does not inherit admin powers.
	assert.False(t, HasCapability(domain.RoleSupport, CapDeleteTicket))
	assert.False(t, HasCapability(domain.RoleSupport, CapEditAnyComment))
	assert.False(t, HasCapability(domain.RoleSupport, CapDeleteAnyComment))
}

func TestHasCapability_Admin(t *testing.T) {
	for _, cap := range []Capability{
		CapCreateTicket, CapViewOwnTicket, CapViewAnyTicket,
		CapUpdateTicketStatus, CapDeleteTicket,
		CapCreateComment, CapViewComments, CapEditAnyComment, CapDeleteAnyComment,
	} {
		assert.True(t, HasCapability(domain.RoleAdmin, cap), "admin should hold %s", cap)
	}
}

func TestHasCapability_UnknownRole(t *testing.T) {
	assert.False(t, HasCapability(domain.Role("superuser"), CapCreateTicket))
}

func TestCapabilities_Counts(t *testing.T) {
	assert.Len(t, Capabilities(domain.RoleUser), 4)
	assert.Len(t, Capabilities(domain.RoleSupport), 6)
	assert.Len(t, Capabilities(domain.RoleAdmin), 9)
	assert.Empty(t, Capabilities(domain.Role("ghost")))
}
