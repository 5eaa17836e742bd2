package hero

import (
	"context"
	"strings"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create appends the banner at the end of the carousel unless an order is given.
func (s *Service) Create(ctx context.Context, in Input) (*Banner, error) {
	img := strings.TrimSpace(in.ImageURL)
	if img == "" {
		return nil, models.Invalid("imageUrl is required")
	}
	b := &Banner{
		ImageURL:   img,
		Title:      strings.TrimSpace(in.Title),
		Subtitle:   strings.TrimSpace(in.Subtitle),
		ButtonText: strings.TrimSpace(in.ButtonText),
		ButtonLink: strings.TrimSpace(in.ButtonLink),
		IsActive:   in.IsActive == nil || *in.IsActive,
	}
	if in.Order != nil {
		b.Order = *in.Order
	} else {
		n, err := s.repo.Count(ctx)
		if err != nil {
			return nil, err
		}
		b.Order = int(n)
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) ListActive(ctx context.Context) ([]Banner, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]Banner, error) {
	return s.repo.List(ctx, false)
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (*Banner, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ImageURL != nil {
		img := strings.TrimSpace(*p.ImageURL)
		if img == "" {
			return nil, models.Invalid("imageUrl is required")
		}
		b.ImageURL = img
	}
	if p.Title != nil {
		b.Title = strings.TrimSpace(*p.Title)
	}
	if p.Subtitle != nil {
		b.Subtitle = strings.TrimSpace(*p.Subtitle)
	}
	if p.ButtonText != nil {
		b.ButtonText = strings.TrimSpace(*p.ButtonText)
	}
	if p.ButtonLink != nil {
		b.ButtonLink = strings.TrimSpace(*p.ButtonLink)
	}
	if p.Order != nil {
		b.Order = *p.Order
	}
	if err := s.repo.Replace(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ToggleActive(ctx context.Context, id string) (bool, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.repo.SetActive(ctx, id, !b.IsActive); err != nil {
		return false, err
	}
	return !b.IsActive, nil
}

// Reorder sets each banner's order to its index in ids. ids must name every
// banner exactly once.
func (s *Service) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return models.Invalid("ids are required")
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if int64(len(ids)) != total {
		return models.Invalid("reorder must list all %d banners, got %d", total, len(ids))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return models.Invalid("duplicate id %s", id)
		}
		seen[id] = true
		if _, err := s.repo.Get(ctx, id); err != nil {
			return err
		}
	}
	for i, id := range ids {
		if err := s.repo.SetOrder(ctx, id, i); err != nil {
			return err
		}
	}
	return nil
}
