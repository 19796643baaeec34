package server

import (
	"context"
	"errors"
	"log/slog"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// sessionID returns the request's session id as established by SessionCookie.
func (s *Server) sessionID(c *fiber.Ctx) string {
	if sid, ok := c.Locals("sessionID").(string); ok {
		return sid
	}
	return ""
}

// resolvePrincipal resolves the session to a principal, exactly once per
// request. Identified users are synced into the request context so the
// logging middleware can attribute the request.
func (s *Server) resolvePrincipal(c *fiber.Ctx) auth.Principal {
	principal := s.sessions.Resolve(c.UserContext(), s.sessionID(c))
	if principal.Identified() {
		c.Locals("userID", principal.UserID())
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, principal.UserID())
		c.SetUserContext(ctx)
	}
	return principal
}

// flash queues a one-shot message for the session's next page. A failing
// flash write is logged, never fatal.
func (s *Server) flash(c *fiber.Ctx, message string) {
	if err := s.sessions.Store().Flash(c.UserContext(), s.sessionID(c), message); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "flash write failed",
			slog.String("error", err.Error()))
	}
}

// takeFlashes drains the session's pending flash messages for rendering.
func (s *Server) takeFlashes(c *fiber.Ctx) []string {
	flashes, err := s.sessions.Store().TakeFlashes(c.UserContext(), s.sessionID(c))
	if err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "flash read failed",
			slog.String("error", err.Error()))
		return nil
	}
	return flashes
}

// failToward surfaces err per the error taxonomy: recoverable errors become a
// flash plus a redirect back to the given route, everything else terminates
// the request with its mapped HTTP status.
func (s *Server) failToward(c *fiber.Ctx, err error, fallback string) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Recoverable() {
		s.flash(c, appErr.Message)
		return c.Redirect(fallback, fiber.StatusFound)
	}
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// principalView is the representation of the requester shipped with every
// rendered page payload.
func principalView(p auth.Principal) fiber.Map {
	if !p.Identified() {
		return fiber.Map{"authenticated": false}
	}
	return fiber.Map{
		"authenticated": true,
		"id":            p.User.ID,
		"name":          p.User.Name,
		"email":         p.User.Email,
		"role":          p.Role,
	}
}
