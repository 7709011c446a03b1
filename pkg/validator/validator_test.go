package validator_test

import (
	"testing"

	"github.com/mgregerson/sharebnb/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		email     string
		badFields []string
	}{
		{"valid", "john_doe", "password123", "john@example.com", nil},
		{"missing everything", "", "", "", []string{"username", "password", "email"}},
		{"bad username chars", "john doe!", "password123", "john@example.com", []string{"username"}},
		{"short password", "john_doe", "abc", "john@example.com", []string{"password"}},
		{"bad email", "john_doe", "password123", "not-an-email", []string{"email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validator.ValidateSignup(tt.username, tt.password, tt.email)
			assert.Equal(t, len(tt.badFields) > 0, errs.HasErrors())
			for _, field := range tt.badFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.False(t, validator.ValidateLogin("john_doe", "pw").HasErrors())

	errs := validator.ValidateLogin("", "")
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")
}

func TestValidateMessage(t *testing.T) {
	assert.False(t, validator.ValidateMessage("john_doe", "jane_doe", "hi").HasErrors())

	errs := validator.ValidateMessage("", "jane_doe", "")
	assert.Contains(t, errs, "sender")
	assert.Contains(t, errs, "content")
	assert.NotContains(t, errs, "recipient")
}

func TestValidateConversation(t *testing.T) {
	assert.False(t, validator.ValidateConversation("john_doe", "jane_doe").HasErrors())

	errs := validator.ValidateConversation("john_doe", "john_doe")
	assert.Contains(t, errs, "user2")

	errs = validator.ValidateConversation("", "")
	assert.Contains(t, errs, "user1")
	assert.Contains(t, errs, "user2")
}

func TestValidateRental(t *testing.T) {
	assert.False(t, validator.ValidateRental("Cozy backyard", "Oakland", "120").HasErrors())

	errs := validator.ValidateRental("", "Oakland", "cheap")
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "price")

	errs = validator.ValidateRental("Cozy backyard", "Oakland", "-5")
	assert.Contains(t, errs, "price")
}

func TestValidateReservation(t *testing.T) {
	assert.False(t, validator.ValidateReservation("2024-06-01", "2024-06-03", 1).HasErrors())

	errs := validator.ValidateReservation("", "", 0)
	assert.Contains(t, errs, "start_date")
	assert.Contains(t, errs, "end_date")
	assert.Contains(t, errs, "rental_id")
}
