package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "user@example.com", false},
		{"Valid with plus", "user+tag@example.com", false},
		{"Empty", "", true},
		{"Missing at", "userexample.com", true},
		{"Missing domain dot", "user@example", true},
		{"Contains space", "us er@example.com", true},
		{"Too long", strings.Repeat("a", 95) + "@ex.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
	assert.NoError(t, ValidatePassword("longenough"))
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"Valid https", "https://example.com/image.png", false},
		{"Valid http", "http://example.com/a", false},
		{"Empty", "", true},
		{"Relative", "/static/image.png", true},
		{"No host", "https://", true},
		{"Wrong scheme", "ftp://example.com/a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRequired(t *testing.T) {
	assert.Error(t, ValidateRequired("title", ""))
	assert.Error(t, ValidateRequired("title", "   "))
	assert.NoError(t, ValidateRequired("title", "A Title"))
}
