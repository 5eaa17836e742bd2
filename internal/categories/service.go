package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/slug"
)

// BusinessCounter reports how many listings reference a category.
type BusinessCounter interface {
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

type Service struct {
	repo       Repository
	businesses BusinessCounter
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetBusinessCounter wires the listing count used to guard Delete.
func (s *Service) SetBusinessCounter(bc BusinessCounter) { s.businesses = bc }

func (s *Service) Create(ctx context.Context, in Input) (*Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.Invalid("name is required")
	}
	taken, err := s.repo.NameExists(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.Conflict("category name")
	}
	sl := slug.Make(name)
	if sl == "" {
		return nil, models.Invalid("name must contain latin letters or digits")
	}
	if ok, err := s.repo.SlugExists(ctx, sl); err != nil {
		return nil, err
	} else if ok {
		return nil, models.Conflict("category slug")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	c := &Category{
		Name:        name,
		Slug:        sl,
		Description: strings.TrimSpace(in.Description),
		Icon:        strings.TrimSpace(in.Icon),
		Image:       strings.TrimSpace(in.Image),
		ParentID:    strings.TrimSpace(in.ParentID),
		Order:       in.Order,
		IsActive:    active,
	}
	if c.ParentID != "" {
		if _, err := s.repo.Get(ctx, c.ParentID); err != nil {
			return nil, fmt.Errorf("parent %w", err)
		}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns active categories for the public, all for admins.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]Category, error) {
	return s.repo.List(ctx, !includeInactive)
}

func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	return s.repo.Get(ctx, id)
}

// GetBySlug returns an active category.
func (s *Service) GetBySlug(ctx context.Context, sl string) (*Category, error) {
	c, err := s.repo.GetBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, models.NotFound(entity)
	}
	return c, nil
}

// ResolveID accepts an id or a slug.
func (s *Service) ResolveID(ctx context.Context, idOrSlug string) (string, error) {
	if c, err := s.repo.Get(ctx, idOrSlug); err == nil {
		return c.ID, nil
	} else if !models.IsNotFound(err) {
		return "", err
	}
	c, err := s.repo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (*Category, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, models.Invalid("name is required")
		}
		if !strings.EqualFold(name, c.Name) {
			taken, err := s.repo.NameExists(ctx, name, c.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, models.Conflict("category name")
			}
		}
		sl := slug.Make(name)
		if sl == "" {
			return nil, models.Invalid("name must contain latin letters or digits")
		}
		if sl != c.Slug {
			if ok, err := s.repo.SlugExists(ctx, sl); err != nil {
				return nil, err
			} else if ok {
				return nil, models.Conflict("category slug")
			}
		}
		c.Name = name
		c.Slug = sl
	}
	if p.Description != nil {
		c.Description = strings.TrimSpace(*p.Description)
	}
	if p.Icon != nil {
		c.Icon = strings.TrimSpace(*p.Icon)
	}
	if p.Image != nil {
		c.Image = strings.TrimSpace(*p.Image)
	}
	if p.ParentID != nil {
		if *p.ParentID == c.ID {
			return nil, models.Invalid("a category cannot be its own parent")
		}
		c.ParentID = strings.TrimSpace(*p.ParentID)
	}
	if p.Order != nil {
		c.Order = *p.Order
	}
	if err := s.repo.Replace(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete refuses while listings still reference the category.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if s.businesses != nil {
		n, err := s.businesses.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %d business(es) still use this category", models.ErrConflict, n)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ToggleActive(ctx context.Context, id string) (bool, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !c.IsActive
	if err := s.repo.SetActive(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// EnsureBySlug creates the category unless its slug exists; used by seeding.
func (s *Service) EnsureBySlug(ctx context.Context, in Input) (bool, error) {
	if ok, err := s.repo.SlugExists(ctx, slug.Make(in.Name)); err != nil || ok {
		return false, err
	}
	if _, err := s.Create(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}
