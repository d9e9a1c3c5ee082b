package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/auth"
	"github.com/hauptbau/fieldops-api/internal/config"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T, secret, issuer string) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(&config.AuthConfig{
		JWTSecret: secret,
		TokenTTL:  60,
		Issuer:    issuer,
	})
	require.NoError(t, err)
	return tokens
}

func testUser() *domain.User {
	employeeID := uuid.New()
	user := &domain.User{
		Email:       "polier@hauptbau.de",
		DisplayName: "Max Bauer",
		Role:        domain.RoleSiteManager,
		EmployeeID:  &employeeID,
	}
	user.ID = uuid.New()
	return user
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "fieldops-test")
	user := testUser()

	signed, expiresAt, err := tokens.IssueToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.False(t, expiresAt.IsZero())

	userCtx, err := tokens.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userCtx.UserID)
	assert.Equal(t, "polier@hauptbau.de", userCtx.Email)
	assert.Equal(t, "Max Bauer", userCtx.DisplayName)
	assert.Equal(t, domain.RoleSiteManager, userCtx.Role)
	require.NotNil(t, userCtx.EmployeeID)
	assert.Equal(t, *user.EmployeeID, *userCtx.EmployeeID)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "fieldops-test")
	other := newTokenService(t, "different-secret", "fieldops-test")

	signed, _, err := tokens.IssueToken(testUser())
	require.NoError(t, err)

	_, err = other.ValidateToken(signed)
	assert.Error(t, err)
}

func TestTokenService_RejectsWrongIssuer(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "somewhere-else")
	validator := newTokenService(t, "test-secret", "fieldops-test")

	signed, _, err := tokens.IssueToken(testUser())
	require.NoError(t, err)

	_, err = validator.ValidateToken(signed)
	assert.Error(t, err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "fieldops-test")

	_, err := tokens.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := auth.NewTokenService(&config.AuthConfig{TokenTTL: 60})
	assert.Error(t, err)
}
