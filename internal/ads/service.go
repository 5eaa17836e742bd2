package ads

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func checkWindow(start, end *time.Time) error {
	if start != nil && end != nil && !end.After(*start) {
		return models.Invalid("endsAt must be after startsAt")
	}
	return nil
}

func checkLink(link string) error {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.Invalid("linkUrl must be an absolute http(s) URL")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Ad, error) {
	a := &Ad{
		Title:      strings.TrimSpace(in.Title),
		ImageURL:   strings.TrimSpace(in.ImageURL),
		LinkURL:    strings.TrimSpace(in.LinkURL),
		Placement:  strings.TrimSpace(in.Placement),
		CategoryID: strings.TrimSpace(in.CategoryID),
		StartsAt:   in.StartsAt,
		EndsAt:     in.EndsAt,
		Order:      in.Order,
		IsActive:   in.IsActive == nil || *in.IsActive,
	}
	if err := validate(a); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func validate(a *Ad) error {
	switch {
	case a.Title == "":
		return models.Invalid("title is required")
	case a.ImageURL == "":
		return models.Invalid("imageUrl is required")
	case !ValidPlacement(a.Placement):
		return models.Invalid("placement must be one of home, sidebar, category, listing")
	}
	if err := checkLink(a.LinkURL); err != nil {
		return err
	}
	return checkWindow(a.StartsAt, a.EndsAt)
}

// ListActive returns live ads for a placement and counts an impression for each.
func (s *Service) ListActive(ctx context.Context, placement, categoryID string) ([]Ad, error) {
	if placement != "" && !ValidPlacement(placement) {
		return nil, models.Invalid("unknown placement %q", placement)
	}
	out, err := s.repo.Live(ctx, Query{Placement: placement, CategoryID: categoryID, Now: s.now()})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(out))
	for i := range out {
		ids[i] = out[i].ID
		out[i].Impressions++
	}
	if err := s.repo.AddImpressions(ctx, ids); err != nil {
		logger.Warnf("ads: count impressions: %v", err)
	}
	return out, nil
}

// RecordClick counts a click and returns the target URL.
func (s *Service) RecordClick(ctx context.Context, id string) (string, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if a.LinkURL == "" {
		return "", models.NotFound("ad link")
	}
	if err := s.repo.AddClick(ctx, id); err != nil {
		return "", err
	}
	return a.LinkURL, nil
}

func (s *Service) List(ctx context.Context, page models.PageRequest) (models.Page[Ad], error) {
	return s.repo.List(ctx, page)
}

func (s *Service) Get(ctx context.Context, id string) (*Ad, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (*Ad, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		a.Title = strings.TrimSpace(*p.Title)
	}
	if p.ImageURL != nil {
		a.ImageURL = strings.TrimSpace(*p.ImageURL)
	}
	if p.LinkURL != nil {
		a.LinkURL = strings.TrimSpace(*p.LinkURL)
	}
	if p.Placement != nil {
		a.Placement = strings.TrimSpace(*p.Placement)
	}
	if p.CategoryID != nil {
		a.CategoryID = strings.TrimSpace(*p.CategoryID)
	}
	if p.StartsAt != nil {
		a.StartsAt = p.StartsAt
	}
	if p.EndsAt != nil {
		a.EndsAt = p.EndsAt
	}
	if p.Order != nil {
		a.Order = *p.Order
	}
	if err := validate(a); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ToggleActive(ctx context.Context, id string) (bool, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.repo.SetActive(ctx, id, !a.IsActive); err != nil {
		return false, err
	}
	return !a.IsActive, nil
}
