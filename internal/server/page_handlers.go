package server

import (
	"github.com/gofiber/fiber/v2"

	"inkwell/internal/models"
)

// Index handles GET / and lists every post, oldest first.
func (s *Server) Index(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)

	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"page":         "index",
		"all_posts":    posts,
		"current_user": principalView(principal),
		"flashes":      s.takeFlashes(c),
	})
}

// About handles GET /about.
func (s *Server) About(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)
	return c.JSON(fiber.Map{
		"page":         "about",
		"current_user": principalView(principal),
		"flashes":      s.takeFlashes(c),
	})
}

// Contact handles GET /contact.
func (s *Server) Contact(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)
	return c.JSON(fiber.Map{
		"page":         "contact",
		"current_user": principalView(principal),
		"flashes":      s.takeFlashes(c),
	})
}
