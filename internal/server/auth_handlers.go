package server

import (
	"log/slog"

	"inkwell/internal/featureflags"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterForm handles GET /register.
func (s *Server) RegisterForm(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)
	return c.JSON(fiber.Map{
		"page":         "register",
		"current_user": principalView(principal),
		"flashes":      s.takeFlashes(c),
	})
}

// Register handles POST /register: create the account, log the new user in,
// and send them to the index.
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if !s.flags.Enabled(featureflags.FlagRegistration, 0) {
		s.flash(c, "Registration is currently closed.")
		return c.Redirect("/", fiber.StatusFound)
	}

	var req struct {
		Email    string `json:"email" form:"email"`
		Name     string `json:"name" form:"name"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.Register(ctx, service.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		// A taken email steers the visitor to the login page instead of
		// back to the registration form.
		if models.IsCode(err, models.CodeDuplicateEmail) {
			return s.failToward(c, err, "/login")
		}
		return s.failToward(c, err, "/register")
	}

	if err := s.sessions.Login(ctx, s.sessionID(c), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Redirect("/", fiber.StatusFound)
}

// LoginForm handles GET /login.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	principal := s.resolvePrincipal(c)
	return c.JSON(fiber.Map{
		"page":         "login",
		"current_user": principalView(principal),
		"flashes":      s.takeFlashes(c),
	})
}

// Login handles POST /login. Unknown email and wrong password flash distinct
// messages; both redirect back to the login form.
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.Authenticate(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return s.failToward(c, err, "/login")
	}

	if err := s.sessions.Login(ctx, s.sessionID(c), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(ctx, "user logged in", slog.Any("user_id", user.ID))
	return c.Redirect("/", fiber.StatusFound)
}

// Logout handles GET /logout. Logging out an anonymous session is a no-op,
// not an error.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.sessions.Logout(c.UserContext(), s.sessionID(c)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.Redirect("/", fiber.StatusFound)
}
