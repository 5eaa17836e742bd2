package subscriptions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/slug"
)

type Service struct {
	plans     PlanRepository
	subs      SubscriptionRepository
	freeLimit int
	now       func() time.Time
}

// NewService builds the plan service. freeLimit applies to vendors without a
// current subscription.
func NewService(plans PlanRepository, subs SubscriptionRepository, freeLimit int) *Service {
	return &Service{plans: plans, subs: subs, freeLimit: freeLimit, now: time.Now}
}

func NewMemoryService(freeLimit int) *Service {
	return NewService(NewMemoryPlans(), NewMemorySubscriptions(), freeLimit)
}

func cleanFeatures(in []string) []string {
	out := []string{}
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (s *Service) CreatePlan(ctx context.Context, in PlanInput) (*Plan, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, models.Invalid("name is required")
	case in.DurationDays <= 0:
		return nil, models.Invalid("durationDays must be positive")
	case in.Price < 0:
		return nil, models.Invalid("price cannot be negative")
	case in.MaxBusinesses < 0:
		return nil, models.Invalid("maxBusinesses cannot be negative")
	}
	sl := slug.Make(name)
	if sl == "" {
		return nil, models.Invalid("name must contain latin letters or digits")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	p := &Plan{
		Name:            name,
		Slug:            sl,
		Description:     strings.TrimSpace(in.Description),
		Price:           in.Price,
		DurationDays:    in.DurationDays,
		MaxBusinesses:   in.MaxBusinesses,
		Features:        cleanFeatures(in.Features),
		FeaturedListing: in.FeaturedListing,
		IsActive:        active,
	}
	if err := s.plans.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// EnsurePlan creates the plan unless one with the same slug exists.
func (s *Service) EnsurePlan(ctx context.Context, in PlanInput) (bool, error) {
	if ok, err := s.plans.SlugExists(ctx, slug.Make(in.Name)); err != nil || ok {
		return false, err
	}
	if _, err := s.CreatePlan(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) ListPlans(ctx context.Context, includeInactive bool) ([]Plan, error) {
	return s.plans.List(ctx, !includeInactive)
}

func (s *Service) GetPlan(ctx context.Context, id string) (*Plan, error) {
	return s.plans.Get(ctx, id)
}

func (s *Service) UpdatePlan(ctx context.Context, id string, p PlanPatch) (*Plan, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, models.Invalid("name is required")
		}
		sl := slug.Make(name)
		if sl == "" {
			return nil, models.Invalid("name must contain latin letters or digits")
		}
		if sl != plan.Slug {
			if ok, err := s.plans.SlugExists(ctx, sl); err != nil {
				return nil, err
			} else if ok {
				return nil, models.Conflict("plan slug")
			}
		}
		plan.Name = name
		plan.Slug = sl
	}
	if p.Description != nil {
		plan.Description = strings.TrimSpace(*p.Description)
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return nil, models.Invalid("price cannot be negative")
		}
		plan.Price = *p.Price
	}
	if p.DurationDays != nil {
		if *p.DurationDays <= 0 {
			return nil, models.Invalid("durationDays must be positive")
		}
		plan.DurationDays = *p.DurationDays
	}
	if p.MaxBusinesses != nil {
		if *p.MaxBusinesses < 0 {
			return nil, models.Invalid("maxBusinesses cannot be negative")
		}
		plan.MaxBusinesses = *p.MaxBusinesses
	}
	if p.Features != nil {
		plan.Features = cleanFeatures(*p.Features)
	}
	if p.FeaturedListing != nil {
		plan.FeaturedListing = *p.FeaturedListing
	}
	if err := s.plans.Replace(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *Service) DeletePlan(ctx context.Context, id string) error {
	return s.plans.Delete(ctx, id)
}

func (s *Service) TogglePlan(ctx context.Context, id string) (bool, error) {
	p, err := s.plans.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.plans.SetActive(ctx, id, !p.IsActive); err != nil {
		return false, err
	}
	return !p.IsActive, nil
}

// Subscribe cancels any running subscription and starts planID from now.
func (s *Service) Subscribe(ctx context.Context, vendorID, planID, paymentRef string) (*Subscription, error) {
	if vendorID == "" {
		return nil, models.ErrUnauthorized
	}
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, models.Invalid("plan %q is not available", plan.Name)
	}
	if _, err := s.subs.CancelActive(ctx, vendorID); err != nil {
		return nil, fmt.Errorf("cancel previous subscription: %w", err)
	}
	now := s.now().UTC()
	sub := &Subscription{
		VendorID:   vendorID,
		PlanID:     plan.ID,
		StartsAt:   now,
		EndsAt:     now.AddDate(0, 0, plan.DurationDays),
		Status:     StatusActive,
		PaymentRef: strings.TrimSpace(paymentRef),
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Active returns the vendor's current subscription, or nil.
func (s *Service) Active(ctx context.Context, vendorID string) (*Subscription, error) {
	sub, err := s.subs.Active(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !sub.Current(s.now()) {
		return nil, nil
	}
	return sub, nil
}

func (s *Service) History(ctx context.Context, vendorID string) ([]Subscription, error) {
	return s.subs.ByVendor(ctx, vendorID)
}

func (s *Service) Cancel(ctx context.Context, vendorID string) error {
	n, err := s.subs.CancelActive(ctx, vendorID)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("active subscription")
	}
	return nil
}

// ExpireDue marks active subscriptions ended at or before now as expired.
func (s *Service) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	return s.subs.ExpireBefore(ctx, now)
}

func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.subs.CountActive(ctx, s.now())
}

// BusinessLimit returns the listing cap for vendorID, 0 meaning unlimited.
func (s *Service) BusinessLimit(ctx context.Context, vendorID string) (int, error) {
	sub, err := s.Active(ctx, vendorID)
	if err != nil {
		return 0, err
	}
	if sub == nil {
		return s.freeLimit, nil
	}
	plan, err := s.plans.Get(ctx, sub.PlanID)
	if models.IsNotFound(err) {
		return s.freeLimit, nil
	}
	if err != nil {
		return 0, err
	}
	return plan.MaxBusinesses, nil
}
