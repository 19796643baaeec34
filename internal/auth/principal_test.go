package auth

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAnonymousPrincipal(t *testing.T) {
	assert.False(t, Anonymous.Identified())
	assert.False(t, Anonymous.IsAdmin())
	assert.Equal(t, uint(0), Anonymous.UserID())
}

func TestIdentifyComputesRole(t *testing.T) {
	admin := Identify(&models.User{ID: 1, Email: "admin@example.com"}, 1)
	assert.True(t, admin.Identified())
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, RoleAdministrator, admin.Role)
	assert.Equal(t, uint(1), admin.UserID())

	reader := Identify(&models.User{ID: 2, Email: "reader@example.com"}, 1)
	assert.True(t, reader.Identified())
	assert.False(t, reader.IsAdmin())
	assert.Equal(t, RoleReader, reader.Role)
}

func TestIdentifyRespectsConfiguredAdminID(t *testing.T) {
	// The distinguished id is configuration, not a hardcoded 1.
	p := Identify(&models.User{ID: 7}, 7)
	assert.True(t, p.IsAdmin())

	p = Identify(&models.User{ID: 1}, 7)
	assert.False(t, p.IsAdmin())
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		wantErr   bool
	}{
		{"Anonymous", Anonymous, true},
		{"Reader", Identify(&models.User{ID: 2}, 1), true},
		{"Administrator", Identify(&models.User{ID: 1}, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAdmin(tt.principal)
			if tt.wantErr {
				assert.NotNil(t, err)
				assert.Equal(t, models.CodeForbidden, err.Code)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestRequireIdentified(t *testing.T) {
	err := RequireIdentified(Anonymous)
	assert.NotNil(t, err)
	assert.Equal(t, models.CodeInvalidCredentials, err.Code)
	assert.Equal(t, "You need to login or register first.", err.Message)

	assert.Nil(t, RequireIdentified(Identify(&models.User{ID: 2}, 1)))
}
