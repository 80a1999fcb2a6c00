package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagedUser(status string) TempUser {
	return TempUser{
		FirstName:    "Asha",
		LastName:     "Nair",
		Username:     "ash451",
		Gender:       "Female",
		MobileNumber: "9876543210",
		Email:        "asha@example.com",
		Role:         RoleCustomer,
		Password:     "$2a$10$hash",
		TempStatus:   status,
		CreatedAt:    time.Now(),
	}
}

func TestPromoteRequiresVerifiedStatus(t *testing.T) {
	for _, status := range []string{TempStatusPending, TempStatusExpired, ""} {
		_, err := stagedUser(status).Promote(time.Now())
		assert.Error(t, err, "status %q should not promote", status)
	}
}

func TestPromoteBuildsActiveUser(t *testing.T) {
	staged := stagedUser(TempStatusVerified)
	now := time.Now()

	user, err := staged.Promote(now)
	require.NoError(t, err)

	assert.Equal(t, staged.FirstName, user.FirstName)
	assert.Equal(t, staged.LastName, user.LastName)
	assert.Equal(t, staged.Username, user.Username)
	assert.Equal(t, staged.MobileNumber, user.MobileNumber)
	assert.Equal(t, staged.Email, user.Email)
	assert.Equal(t, staged.Password, user.Password)
	assert.Equal(t, staged.Role, user.Role)
	assert.Equal(t, StatusActive, user.Status)
	assert.Equal(t, now, user.CreatedAt)
	assert.Equal(t, now, user.UpdatedAt)
}
