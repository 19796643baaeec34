package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorRecoverable(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		recoverable bool
	}{
		{"DuplicateTitle", NewDuplicateTitleError("Hello"), true},
		{"DuplicateEmail", NewDuplicateEmailError(), true},
		{"InvalidCredentials", NewInvalidCredentialsError("nope"), true},
		{"Validation", NewValidationError("blank"), true},
		{"Forbidden", NewForbiddenError(), false},
		{"NotFound", NewNotFoundError("Post", 3), false},
		{"Internal", NewInternalError(errors.New("boom")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.recoverable, tt.err.Recoverable())
		})
	}
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, fiber.StatusForbidden, StatusForError(NewForbiddenError()))
	assert.Equal(t, fiber.StatusNotFound, StatusForError(NewNotFoundError("Post", 1)))
	assert.Equal(t, fiber.StatusConflict, StatusForError(NewDuplicateTitleError("x")))
	assert.Equal(t, fiber.StatusConflict, StatusForError(NewDuplicateEmailError()))
	assert.Equal(t, fiber.StatusUnauthorized, StatusForError(NewInvalidCredentialsError("x")))
	assert.Equal(t, fiber.StatusBadRequest, StatusForError(NewValidationError("x")))
	assert.Equal(t, fiber.StatusInternalServerError, StatusForError(NewInternalError(errors.New("boom"))))
	assert.Equal(t, fiber.StatusInternalServerError, StatusForError(errors.New("plain")))
}

func TestStatusForErrorUnwrapsWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading post: %w", NewNotFoundError("Post", 9))
	assert.Equal(t, fiber.StatusNotFound, StatusForError(wrapped))
	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(wrapped, CodeForbidden))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
