package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Issue string `json:"issue" validate:"required"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TicketResponse is the public ticket representation. The internal version
// counter is omitted.
type TicketResponse struct {
	ID               string              `json:"id"`
	Issue            string              `json:"issue"`
	OwnerID          string              `json:"ownerId"`
	TicketStatus     domain.TicketStatus `json:"ticketStatus"`
	SupportResponded bool                `json:"supportResponded"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}
