package auth

import "inkwell/internal/models"

// RequireAdmin gates content-management routes. It returns nil only when the
// principal is identified and holds the administrator role; any other
// principal gets a Forbidden error, which is terminal for the request.
func RequireAdmin(p Principal) *models.AppError {
	if !p.IsAdmin() {
		return models.NewForbiddenError()
	}
	return nil
}

// RequireIdentified gates routes that need any authenticated user.
func RequireIdentified(p Principal) *models.AppError {
	if !p.Identified() {
		return models.NewInvalidCredentialsError("You need to login or register first.")
	}
	return nil
}
