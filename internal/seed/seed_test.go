package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/categories"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/subscriptions"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/vendors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `
admin:
  name: Site Admin
  email: admin@businessgurujee.com
  password: ${SEED_ADMIN_PASSWORD}
categories:
  - name: Sweet Shops
    icon: cake
    order: 1
  - name: Gyms
plans:
  - name: Basic
    price: 49900
    durationDays: 30
    maxBusinesses: 3
    features: [Verified badge]
`

func TestParseAndApplyIsIdempotent(t *testing.T) {
	t.Setenv("SEED_ADMIN_PASSWORD", "s3cret-password")
	f, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, "s3cret-password", f.Admin.Password)
	require.Len(t, f.Categories, 2)
	require.Equal(t, 30, f.Plans[0].DurationDays)

	cats := categories.NewService(categories.NewMemoryRepository())
	plans := subscriptions.NewMemoryService(1)
	admins := vendors.NewService(vendors.NewMemoryRepository())
	ctx := context.Background()

	rep, err := Apply(ctx, f, cats, plans, admins)
	require.NoError(t, err)
	assert.Equal(t, Report{Categories: 2, Plans: 1, Admin: true}, rep)

	rep, err = Apply(ctx, f, cats, plans, admins)
	require.NoError(t, err)
	assert.Equal(t, Report{}, rep)

	v, err := admins.Authenticate(ctx, "admin@businessgurujee.com", "s3cret-password")
	require.NoError(t, err)
	assert.True(t, v.IsAdmin())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("categorys:\n  - name: typo\n"))
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: Doctors\n"), 0o600))
	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Categories, 1)
	assert.Nil(t, f.Admin)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
