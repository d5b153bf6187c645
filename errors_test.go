package newsroom_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/newsroom"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "sqlite unique violation",
			err:  fmt.Errorf("constraint failed: UNIQUE constraint failed: users.email (2067)"),
			want: true,
		},
		{
			name: "postgres unique violation",
			err:  fmt.Errorf(`ERROR: duplicate key value violates unique constraint "users_email_key"`),
			want: true,
		},
		{
			name: "unrelated error",
			err:  fmt.Errorf("connection refused"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newsroom.IsUniqueViolation(tt.err))
		})
	}
}

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", newsroom.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"token expired", newsroom.ErrTokenExpired, fiber.StatusUnauthorized},
		{"user not found", newsroom.ErrUserNotFound, fiber.StatusNotFound},
		{"theme not found", newsroom.ErrThemeNotFound, fiber.StatusNotFound},
		{"already subscribed", newsroom.ErrAlreadySubscribed, fiber.StatusBadRequest},
		{"not subscribed", newsroom.ErrNotSubscribed, fiber.StatusBadRequest},
		{"duplicate email", newsroom.ErrDuplicateEmail, fiber.StatusBadRequest},
		{"plain error", fmt.Errorf("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newsroom.MapErrorToStatus(tt.err))
		})
	}
}

func TestDomainErrorTextCodes(t *testing.T) {
	assert.Equal(t, newsroom.TextCodeDuplicateEmail, newsroom.ErrDuplicateEmail.TextCode)
	assert.Equal(t, newsroom.TextCodeInvalidCredentials, newsroom.ErrInvalidCredentials.TextCode)
	assert.Equal(t, newsroom.TextCodeTokenExpired, newsroom.ErrTokenExpired.TextCode)
	assert.Equal(t, newsroom.TextCodeAlreadySubscribed, newsroom.ErrAlreadySubscribed.TextCode)
	assert.Equal(t, newsroom.TextCodeNotSubscribed, newsroom.ErrNotSubscribed.TextCode)
}
