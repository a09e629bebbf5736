package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// EditCommentRequest carries partial-update fields; absent fields are left
// untouched.
type EditCommentRequest struct {
	Body *string `json:"body"`
}

// CommentResponse is the public comment representation.
type CommentResponse struct {
	ID         string      `json:"id"`
	TicketID   string      `json:"ticketId"`
	AuthorID   string      `json:"authorId"`
	AuthorRole domain.Role `json:"authorRole"`
	Body       string      `json:"body"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ThreadCommentResponse is a comment in a ticket thread listing, with the
// author identity denormalized.
type ThreadCommentResponse struct {
	CommentResponse
	AuthorEmail string `json:"authorEmail,omitempty"`
}
