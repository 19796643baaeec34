package server

import (
	"fmt"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postForm is the shared request shape for creating and editing posts.
type postForm struct {
	Title    string `json:"title" form:"title"`
	Subtitle string `json:"subtitle" form:"subtitle"`
	Body     string `json:"body" form:"body"`
	ImageURL string `json:"img_url" form:"img_url"`
}

func (f postForm) input() service.PostInput {
	return service.PostInput{
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Body:     f.Body,
		ImageURL: f.ImageURL,
	}
}

// ShowPost handles GET /post/:id and renders the post with its comments.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"page":         "post",
		"post":         post,
		"current_user": principalView(principal),
		"flashes":      s.takeFlashes(c),
	})
}

// NewPostForm handles GET /new-post (admin only).
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)
	if guardErr := auth.RequireAdmin(principal); guardErr != nil {
		return models.RespondWithError(c, fiber.StatusForbidden, guardErr)
	}

	return c.JSON(fiber.Map{
		"page":         "make-post",
		"is_edit":      false,
		"current_user": principalView(principal),
		"flashes":      s.takeFlashes(c),
	})
}

// CreatePost handles POST /new-post (admin only). Success redirects to the
// index; a duplicate title or invalid field flashes and returns to the form.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)
	if guardErr := auth.RequireAdmin(principal); guardErr != nil {
		return models.RespondWithError(c, fiber.StatusForbidden, guardErr)
	}

	var req postForm
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.postService.CreatePost(c.UserContext(), req.input(), principal.UserID()); err != nil {
		return s.failToward(c, err, "/new-post")
	}

	return c.Redirect("/", fiber.StatusFound)
}

// EditPostForm handles GET /edit-post/:id (admin only), returning the current
// field values for the edit form.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)
	if guardErr := auth.RequireAdmin(principal); guardErr != nil {
		return models.RespondWithError(c, fiber.StatusForbidden, guardErr)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"page":         "make-post",
		"is_edit":      true,
		"post":         post,
		"current_user": principalView(principal),
		"flashes":      s.takeFlashes(c),
	})
}

// UpdatePost handles POST /edit-post/:id (admin only). All editable fields
// are overwritten wholesale; the id and original date stay put.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)
	if guardErr := auth.RequireAdmin(principal); guardErr != nil {
		return models.RespondWithError(c, fiber.StatusForbidden, guardErr)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postForm
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id, req.input())
	if err != nil {
		return s.failToward(c, err, fmt.Sprintf("/edit-post/%d", id))
	}

	return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusFound)
}

// DeletePost handles GET /delete/:id (admin only). Deleting a post removes
// its comments with it.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)
	if guardErr := auth.RequireAdmin(principal); guardErr != nil {
		return models.RespondWithError(c, fiber.StatusForbidden, guardErr)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Redirect("/", fiber.StatusFound)
}
