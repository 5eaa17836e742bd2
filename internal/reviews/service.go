package reviews

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/events"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/metrics"
)

// Businesses is the slice of the listing service reviews depend on.
type Businesses interface {
	Get(ctx context.Context, id string) (*business.Business, error)
	RecalculateRating(ctx context.Context, id string, average float64, count int) error
}

type Service struct {
	repo       Repository
	businesses Businesses
	events     events.Publisher
}

func NewService(repo Repository, businesses Businesses, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{repo: repo, businesses: businesses, events: pub}
}

const maxComment = 2000

func (s *Service) Create(ctx context.Context, in Input) (*Review, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	comment := strings.TrimSpace(in.Comment)
	switch {
	case strings.TrimSpace(in.BusinessID) == "":
		return nil, models.Invalid("businessId is required")
	case name == "":
		return nil, models.Invalid("name is required")
	case in.Rating < 1 || in.Rating > 5:
		return nil, models.Invalid("rating must be between 1 and 5")
	case len(comment) > maxComment:
		return nil, models.Invalid("comment is longer than %d characters", maxComment)
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, models.Invalid("email is not valid")
		}
	}
	b, err := s.businesses.Get(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if b.Status != business.StatusApproved {
		return nil, models.Invalid("business is not open for reviews")
	}
	r := &Review{
		BusinessID: b.ID,
		Name:       name,
		Email:      email,
		Rating:     in.Rating,
		Comment:    comment,
		IsVisible:  true,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	if err := s.recompute(ctx, b.ID); err != nil {
		return nil, err
	}
	metrics.ReviewsCreated.Inc()
	events.Emit(ctx, s.events, events.ReviewCreated, map[string]interface{}{
		"reviewId":   r.ID,
		"businessId": r.BusinessID,
		"rating":     r.Rating,
	})
	return r, nil
}

func (s *Service) recompute(ctx context.Context, businessID string) error {
	avg, n, err := s.repo.VisibleStats(ctx, businessID)
	if err != nil {
		return fmt.Errorf("review stats: %w", err)
	}
	if err := s.businesses.RecalculateRating(ctx, businessID, avg, n); err != nil && !models.IsNotFound(err) {
		return fmt.Errorf("update rating: %w", err)
	}
	return nil
}

// ListByBusiness returns visible reviews, newest first.
func (s *Service) ListByBusiness(ctx context.Context, businessID string, page models.PageRequest) (models.Page[Review], error) {
	visible := true
	return s.repo.List(ctx, Filter{BusinessID: businessID, Visible: &visible}, page)
}

func (s *Service) ListAll(ctx context.Context, f Filter, page models.PageRequest) (models.Page[Review], error) {
	return s.repo.List(ctx, f, page)
}

func (s *Service) ToggleVisible(ctx context.Context, id string) (bool, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !r.IsVisible
	if err := s.repo.SetVisible(ctx, id, next); err != nil {
		return false, err
	}
	return next, s.recompute(ctx, r.BusinessID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.recompute(ctx, r.BusinessID)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
