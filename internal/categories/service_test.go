package categories

import (
	"context"
	"testing"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/stretchr/testify/require"
)

type countStub map[string]int64

func (c countStub) CountByCategory(ctx context.Context, id string) (int64, error) { return c[id], nil }

func TestCreateListAndSlug(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	c, err := s.Create(ctx, Input{Name: "Sweet Shops", Order: 2})
	require.NoError(t, err)
	require.Equal(t, "sweet-shops", c.Slug)
	require.True(t, c.IsActive)

	off := false
	_, err = s.Create(ctx, Input{Name: "Gyms", Order: 1})
	require.NoError(t, err)
	_, err = s.Create(ctx, Input{Name: "Hidden", IsActive: &off})
	require.NoError(t, err)

	_, err = s.Create(ctx, Input{Name: "sweet shops"})
	require.ErrorIs(t, err, models.ErrConflict)
	_, err = s.Create(ctx, Input{Name: "  "})
	require.ErrorIs(t, err, models.ErrValidation)

	public, err := s.List(ctx, false)
	require.NoError(t, err)
	require.Equal(t, []string{"Gyms", "Sweet Shops"}, names(public))

	all, err := s.List(ctx, true)
	require.NoError(t, err)
	require.Equal(t, []string{"Hidden", "Gyms", "Sweet Shops"}, names(all))

	_, err = s.GetBySlug(ctx, "hidden")
	require.ErrorIs(t, err, models.ErrNotFound)

	id, err := s.ResolveID(ctx, "sweet-shops")
	require.NoError(t, err)
	require.Equal(t, c.ID, id)
	id, err = s.ResolveID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, id)
}

func TestUpdateReslugs(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	c, _ := s.Create(ctx, Input{Name: "Tailors"})
	_, _ = s.Create(ctx, Input{Name: "Bakers"})

	name := "Tailors & Boutiques"
	up, err := s.Update(ctx, c.ID, Patch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "tailors-and-boutiques", up.Slug)

	clash := "bakers"
	_, err = s.Update(ctx, c.ID, Patch{Name: &clash})
	require.ErrorIs(t, err, models.ErrConflict)

	// same slug as Bakers under a different name
	_, err = s.Create(ctx, Input{Name: "Bakers!"})
	require.ErrorIs(t, err, models.ErrConflict)
	punct := "Bakers!!"
	_, err = s.Update(ctx, c.ID, Patch{Name: &punct})
	require.ErrorIs(t, err, models.ErrConflict)
}

func TestUpdateRejectsNameWithoutSlug(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	c, err := s.Create(ctx, Input{Name: "Sweets"})
	require.NoError(t, err)

	hindi := "मिठाई"
	_, err = s.Update(ctx, c.ID, Patch{Name: &hindi})
	require.ErrorIs(t, err, models.ErrValidation)

	got, err := s.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "sweets", got.Slug)
}

func TestDeleteGuardedByListings(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	used, _ := s.Create(ctx, Input{Name: "Used"})
	unused, _ := s.Create(ctx, Input{Name: "Unused"})
	s.SetBusinessCounter(countStub{used.ID: 3})

	require.ErrorIs(t, s.Delete(ctx, used.ID), models.ErrConflict)
	require.NoError(t, s.Delete(ctx, unused.ID))

	list, _ := s.List(ctx, true)
	require.Equal(t, []string{"Used"}, names(list))
	require.ErrorIs(t, s.Delete(ctx, unused.ID), models.ErrNotFound)
}

func TestToggleActiveTwice(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	c, _ := s.Create(ctx, Input{Name: "Flip"})
	v, err := s.ToggleActive(ctx, c.ID)
	require.NoError(t, err)
	require.False(t, v)
	v, err = s.ToggleActive(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, v)
}

func TestEnsureBySlug(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	created, err := s.EnsureBySlug(ctx, Input{Name: "Doctors"})
	require.NoError(t, err)
	require.True(t, created)
	created, err = s.EnsureBySlug(ctx, Input{Name: "Doctors"})
	require.NoError(t, err)
	require.False(t, created)
	n, _ := s.Count(ctx)
	require.Equal(t, int64(1), n)
}

func names(cs []Category) []string {
	out := []string{}
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}
