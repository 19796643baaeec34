package server

import (
	"fmt"

	"inkwell/internal/auth"
	"inkwell/internal/featureflags"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /post/:id. Any authenticated user may comment; an
// anonymous visitor is flashed and sent to the login page with nothing
// persisted.
func (s *Server) AddComment(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if !principal.Identified() {
		s.flash(c, "You need to login or register to comment.")
		return c.Redirect("/login", fiber.StatusFound)
	}

	if !s.flags.Enabled(featureflags.FlagComments, principal.UserID()) {
		s.flash(c, "Commenting is temporarily disabled.")
		return c.Redirect(fmt.Sprintf("/post/%d", postID), fiber.StatusFound)
	}

	var req struct {
		Text string `json:"comment_text" form:"comment_text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err = s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		Text:     req.Text,
		AuthorID: principal.UserID(),
		PostID:   postID,
	})
	if err != nil {
		return s.failToward(c, err, fmt.Sprintf("/post/%d", postID))
	}

	return c.Redirect(fmt.Sprintf("/post/%d", postID), fiber.StatusFound)
}

// DeleteComment handles GET /delete_comment/:commentId/:postId. The route
// needs a logged-in user and, on top of that, the administrator role.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)

	if guardErr := auth.RequireIdentified(principal); guardErr != nil {
		s.flash(c, guardErr.Message)
		return c.Redirect("/login", fiber.StatusFound)
	}
	if guardErr := auth.RequireAdmin(principal); guardErr != nil {
		return models.RespondWithError(c, fiber.StatusForbidden, guardErr)
	}

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), commentID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Redirect(fmt.Sprintf("/post/%d", postID), fiber.StatusFound)
}
