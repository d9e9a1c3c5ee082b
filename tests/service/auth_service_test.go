package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/auth"
	"github.com/hauptbau/fieldops-api/internal/config"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"github.com/hauptbau/fieldops-api/internal/service"
	"github.com/hauptbau/fieldops-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createAuthService(t *testing.T, db *gorm.DB) *service.AuthService {
	t.Helper()
	tokens, err := auth.NewTokenService(&config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  60,
		Issuer:    "fieldops-test",
	})
	require.NoError(t, err)
	return service.NewAuthService(repository.NewUserRepository(db), tokens, zap.NewNop())
}

func TestAuthService_Login(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)

	hash, err := service.HashPassword("geheim123")
	require.NoError(t, err)
	user := testutil.CreateTestUser(t, db, "polier@hauptbau.de", hash, domain.RoleSiteManager)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "polier@hauptbau.de",
		Password: "geheim123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, domain.RoleSiteManager, resp.User.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)

	hash, err := service.HashPassword("geheim123")
	require.NoError(t, err)
	testutil.CreateTestUser(t, db, "polier@hauptbau.de", hash, domain.RoleSiteManager)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "polier@hauptbau.de",
		Password: "falsch",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "niemand@hauptbau.de",
		Password: "geheim123",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_CurrentUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)

	hash, err := service.HashPassword("geheim123")
	require.NoError(t, err)
	user := testutil.CreateTestUser(t, db, "polier@hauptbau.de", hash, domain.RoleAdmin)

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})

	dto, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "polier@hauptbau.de", dto.Email)
	assert.Equal(t, domain.RoleAdmin, dto.Role)
}

func TestAuthService_CurrentUser_Unauthenticated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)

	_, err := svc.CurrentUser(context.Background())
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAuthService_CurrentUser_DeletedUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID: uuid.New(),
		Role:   domain.RoleSiteManager,
	})

	_, err := svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
