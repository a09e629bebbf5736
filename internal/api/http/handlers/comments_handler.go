package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// CommentsHandler manages comment thread endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

var createCommentMessages = map[string]string{
	"Body": "comment is required",
}

// CreateComment POST /api/comments/:ticketId.
func (h *CommentsHandler) CreateComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("you are not signed in")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateRequest(req, createCommentMessages); err != nil {
		return err
	}

	comment, err := h.service.CreateComment(c.Context(), principal.UserID, c.Params("ticketId"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// ListComments GET /api/comments/:ticketId.
func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("you are not signed in")
	}
	comments, err := h.service.ListComments(c.Context(), principal.UserID, c.Params("ticketId"))
	if err != nil {
		return err
	}
	items := make([]dto.ThreadCommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.ThreadCommentResponse{
			CommentResponse: commentResponse(&comments[i].Comment),
			AuthorEmail:     comments[i].AuthorEmail,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetComment GET /api/comments/admin/:id. Authentication only; the admin
// prefix notwithstanding, no role gate applies here.
func (h *CommentsHandler) GetComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("you are not signed in")
	}
	comment, err := h.service.GetCommentByID(c.Context(), principal.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": commentResponse(comment)})
}

// EditComment PATCH /api/comments/admin/:id.
func (h *CommentsHandler) EditComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("you are not signed in")
	}
	var req dto.EditCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.service.EditComment(c.Context(), principal.UserID, c.Params("id"), service.EditCommentInput{Body: req.Body})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": commentResponse(comment)})
}

// DeleteComment DELETE /api/comments/admin/:id.
func (h *CommentsHandler) DeleteComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("you are not signed in")
	}
	comment, err := h.service.DeleteComment(c.Context(), principal.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": commentResponse(comment)})
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		TicketID:   comment.TicketID,
		AuthorID:   comment.AuthorID,
		AuthorRole: comment.AuthorRole,
		Body:       comment.Body,
		CreatedAt:  comment.CreatedAt,
	}
}
