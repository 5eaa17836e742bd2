package repository

import (
	"context"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
)

// Repository persists business listings.
type Repository interface {
	Create(ctx context.Context, b *business.Business) error
	Get(ctx context.Context, id string) (*business.Business, error)
	GetBySlug(ctx context.Context, slug string) (*business.Business, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, f business.Filter, page models.PageRequest) (models.Page[business.Business], error)
	// All returns every match ordered by name; used by sitemap and maintenance jobs.
	All(ctx context.Context, f business.Filter) ([]business.Business, error)
	Nearby(ctx context.Context, q business.NearbyQuery) ([]business.Nearby, error)
	Replace(ctx context.Context, b *business.Business) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetStatus(ctx context.Context, id, status string) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	SetSlug(ctx context.Context, id, slug string) error
	SetRating(ctx context.Context, id string, r business.Rating) error
	IncrementViews(ctx context.Context, id string) error
	Count(ctx context.Context, f business.Filter) (int64, error)
	// PatchStatus moves every listing in status from to status to; returns the number changed.
	PatchStatus(ctx context.Context, from, to, categoryID string) (int64, error)
}
