package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/auth"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext_RoundTrip(t *testing.T) {
	user := &auth.UserContext{
		UserID: uuid.New(),
		Email:  "polier@hauptbau.de",
		Role:   domain.RoleWorker,
	}

	ctx := auth.WithUserContext(context.Background(), user)

	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user.UserID, got.UserID)
	assert.Equal(t, user.Email, got.Email)
}

func TestFromContext_Missing(t *testing.T) {
	_, ok := auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestMustFromContext_Panics(t *testing.T) {
	assert.Panics(t, func() {
		auth.MustFromContext(context.Background())
	})
}

func TestUserContext_Roles(t *testing.T) {
	admin := &auth.UserContext{Role: domain.RoleAdmin}
	manager := &auth.UserContext{Role: domain.RoleSiteManager}
	worker := &auth.UserContext{Role: domain.RoleWorker}

	assert.True(t, admin.IsAdmin())
	assert.False(t, manager.IsAdmin())

	assert.True(t, admin.CanManageProjects())
	assert.True(t, manager.CanManageProjects())
	assert.False(t, worker.CanManageProjects())

	assert.True(t, worker.HasRole(domain.RoleWorker))
	assert.False(t, worker.HasAnyRole(domain.RoleAdmin, domain.RoleSiteManager))
}
