package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	s := NewMemoryService(1)
	s.now = func() time.Time { return now }
	return s
}

func TestCreatePlanValidation(t *testing.T) {
	s := newTestService(t, time.Now())
	ctx := context.Background()

	_, err := s.CreatePlan(ctx, PlanInput{Name: "Gold"})
	require.ErrorIs(t, err, models.ErrValidation)
	_, err = s.CreatePlan(ctx, PlanInput{DurationDays: 30})
	require.ErrorIs(t, err, models.ErrValidation)

	p, err := s.CreatePlan(ctx, PlanInput{Name: "Gold Plus", DurationDays: 30, Price: 49900, Features: []string{" top ", ""}})
	require.NoError(t, err)
	assert.Equal(t, "gold-plus", p.Slug)
	assert.True(t, p.IsActive)
	assert.Equal(t, []string{"top"}, p.Features)

	_, err = s.CreatePlan(ctx, PlanInput{Name: "gold plus", DurationDays: 7})
	require.ErrorIs(t, err, models.ErrConflict)
}

func TestSubscribeReplacesActive(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestService(t, now)
	ctx := context.Background()

	basic, _ := s.CreatePlan(ctx, PlanInput{Name: "Basic", DurationDays: 30, MaxBusinesses: 3})
	pro, _ := s.CreatePlan(ctx, PlanInput{Name: "Pro", DurationDays: 365})

	limit, err := s.BusinessLimit(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, limit)

	first, err := s.Subscribe(ctx, "v1", basic.ID, "pay_1")
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 30), first.EndsAt)

	limit, _ = s.BusinessLimit(ctx, "v1")
	assert.Equal(t, 3, limit)

	second, err := s.Subscribe(ctx, "v1", pro.ID, "")
	require.NoError(t, err)

	active, err := s.Active(ctx, "v1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	hist, _ := s.History(ctx, "v1")
	require.Len(t, hist, 2)
	statuses := map[string]string{}
	for _, h := range hist {
		statuses[h.ID] = h.Status
	}
	assert.Equal(t, StatusCancelled, statuses[first.ID])
	assert.Equal(t, StatusActive, statuses[second.ID])

	limit, _ = s.BusinessLimit(ctx, "v1")
	assert.Equal(t, 0, limit, "unlimited plan")
}

func TestSubscribeInactivePlan(t *testing.T) {
	s := newTestService(t, time.Now())
	ctx := context.Background()
	p, _ := s.CreatePlan(ctx, PlanInput{Name: "Retired", DurationDays: 10})
	on, err := s.TogglePlan(ctx, p.ID)
	require.NoError(t, err)
	require.False(t, on)

	_, err = s.Subscribe(ctx, "v1", p.ID, "")
	require.ErrorIs(t, err, models.ErrValidation)

	public, _ := s.ListPlans(ctx, false)
	assert.Empty(t, public)
	all, _ := s.ListPlans(ctx, true)
	assert.Len(t, all, 1)
}

func TestExpireDueAndCancel(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestService(t, start)
	ctx := context.Background()
	p, _ := s.CreatePlan(ctx, PlanInput{Name: "Month", DurationDays: 30, MaxBusinesses: 5})

	_, err := s.Subscribe(ctx, "v1", p.ID, "")
	require.NoError(t, err)
	_, err = s.Subscribe(ctx, "v2", p.ID, "")
	require.NoError(t, err)

	n, _ := s.CountActive(ctx)
	assert.Equal(t, int64(2), n)

	require.NoError(t, s.Cancel(ctx, "v2"))
	require.ErrorIs(t, s.Cancel(ctx, "v2"), models.ErrNotFound)

	later := start.AddDate(0, 0, 31)
	s.now = func() time.Time { return later }
	// past its end the subscription no longer counts even before expiry runs
	limit, _ := s.BusinessLimit(ctx, "v1")
	assert.Equal(t, 1, limit)

	expired, err := s.ExpireDue(ctx, later)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	active, err := s.Active(ctx, "v1")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestUpdateAndDeletePlan(t *testing.T) {
	s := newTestService(t, time.Now())
	ctx := context.Background()
	p, _ := s.CreatePlan(ctx, PlanInput{Name: "Silver", DurationDays: 30})

	days := 0
	_, err := s.UpdatePlan(ctx, p.ID, PlanPatch{DurationDays: &days})
	require.ErrorIs(t, err, models.ErrValidation)

	name := "Silver Annual"
	days = 365
	up, err := s.UpdatePlan(ctx, p.ID, PlanPatch{Name: &name, DurationDays: &days})
	require.NoError(t, err)
	assert.Equal(t, "silver-annual", up.Slug)
	assert.Equal(t, 365, up.DurationDays)

	hindi := "चांदी"
	_, err = s.UpdatePlan(ctx, p.ID, PlanPatch{Name: &hindi})
	require.ErrorIs(t, err, models.ErrValidation)

	gold, err := s.CreatePlan(ctx, PlanInput{Name: "Gold", DurationDays: 30})
	require.NoError(t, err)
	_, err = s.UpdatePlan(ctx, gold.ID, PlanPatch{Name: &name})
	require.ErrorIs(t, err, models.ErrConflict)

	require.NoError(t, s.DeletePlan(ctx, p.ID))
	_, err = s.GetPlan(ctx, p.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}
