package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	userID := uuid.New()
	tenantID := uuid.New().String()

	token, err := GenerateJWT(userID, tenantID, "test-secret", 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tenantID, claims.TenantID)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT(uuid.New(), "", "test-secret", 1)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "garage-centrale", NormalizeSlug("Garage Centrale"))
	assert.Equal(t, "location-atlas", NormalizeSlug("  Location_Atlas  "))
	assert.Equal(t, "agence-2", NormalizeSlug("Agence  #2"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
}
