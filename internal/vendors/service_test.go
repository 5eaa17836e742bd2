package vendors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() *Service {
	s := NewService(NewMemoryRepository())
	s.cost = bcrypt.MinCost
	return s
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	v, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: " Asha@Example.com ", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, v.ID)
	require.Equal(t, "asha@example.com", v.Email)
	require.Equal(t, models.RoleVendor, v.Role)
	require.True(t, v.IsActive)
	require.NotEqual(t, "s3cret-pass", v.PasswordHash)

	got, err := svc.Authenticate(ctx, "ASHA@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, v.ID, got.ID)

	_, err = svc.Authenticate(ctx, "asha@example.com", "wrong-pass")
	require.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret-pass")
	require.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.in", Password: "longenough"})
	require.ErrorIs(t, err, models.ErrValidation)
	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "not-an-email", Password: "longenough"})
	require.ErrorIs(t, err, models.ErrValidation)
	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.in", Password: "short"})
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.in", Password: "longenough"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "A@B.in", Password: "longenough"})
	require.ErrorIs(t, err, models.ErrConflict)
}

func TestToggleActiveBlocksLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	v, err := svc.Register(ctx, RegisterInput{Name: "Ravi", Email: "ravi@example.com", Password: "password1"})
	require.NoError(t, err)

	active, err := svc.ToggleActive(ctx, v.ID)
	require.NoError(t, err)
	require.False(t, active)

	_, err = svc.Authenticate(ctx, "ravi@example.com", "password1")
	require.True(t, errors.Is(err, models.ErrForbidden))

	active, err = svc.ToggleActive(ctx, v.ID)
	require.NoError(t, err)
	require.True(t, active)
	_, err = svc.Authenticate(ctx, "ravi@example.com", "password1")
	require.NoError(t, err)
}

func TestUpsertFromClaims(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	claims := map[string]interface{}{
		"sub":   "google-123",
		"email": "x@example.com",
		"name":  "X User",
	}

	v, err := svc.UpsertFromClaims(ctx, claims)
	require.NoError(t, err)
	require.NotEmpty(t, v.ID)
	require.Equal(t, "X User", v.Name)
	require.Equal(t, models.RoleVendor, v.Role)
	require.False(t, v.CreatedAt.IsZero())

	claims["name"] = "Renamed"
	v2, err := svc.UpsertFromClaims(ctx, claims)
	require.NoError(t, err)
	require.Equal(t, v.ID, v2.ID)
	require.Equal(t, "Renamed", v2.Name)

	_, err = svc.UpsertFromClaims(ctx, map[string]interface{}{"email": "y@e.com"})
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin", "admin@businessgurujee.com", "admin-password")
	require.NoError(t, err)
	require.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "Admin", "admin@businessgurujee.com", "admin-password")
	require.NoError(t, err)
	require.False(t, created)

	a, err := svc.Authenticate(ctx, "admin@businessgurujee.com", "admin-password")
	require.NoError(t, err)
	require.True(t, a.IsAdmin())

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), n, "admins are not counted as vendors")
}

func TestListNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "mid", "new"} {
		v := &models.Vendor{Name: name, Email: name + "@example.com", Role: models.RoleVendor}
		require.NoError(t, repo.Create(ctx, v))
		stored := repo.store[v.ID]
		stored.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		repo.store[v.ID] = stored
	}

	first, err := svc.List(ctx, models.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), first.Total)
	require.Len(t, first.Items, 2)
	require.Equal(t, "new", first.Items[0].Name)
	require.Equal(t, "mid", first.Items[1].Name)

	second, err := svc.List(ctx, models.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	require.Equal(t, "old", second.Items[0].Name)
}
