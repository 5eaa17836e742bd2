package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business/repository"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/events"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/slug"
)

// CategoryResolver maps a category id or slug to an existing category id.
type CategoryResolver interface {
	ResolveID(ctx context.Context, idOrSlug string) (string, error)
}

// PlanLimits reports how many listings a vendor may own (0 = unlimited).
type PlanLimits interface {
	BusinessLimit(ctx context.Context, vendorID string) (int, error)
}

// Service implements listing rules on top of a Repository.
type Service struct {
	repo       repository.Repository
	categories CategoryResolver
	limits     PlanLimits
	events     events.Publisher
}

func NewService(repo repository.Repository, categories CategoryResolver, limits PlanLimits, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{repo: repo, categories: categories, limits: limits, events: pub}
}

// NewMemoryService wires an in-memory repository; dev mode and tests.
func NewMemoryService(categories CategoryResolver, limits PlanLimits, pub events.Publisher) *Service {
	return NewService(repository.NewMemoryRepo(), categories, limits, pub)
}

// Repo exposes the repository to maintenance commands.
func (s *Service) Repo() repository.Repository { return s.repo }

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalizeTags(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range trimAll(in) {
		t = strings.ToLower(t)
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func validateContact(c business.Contact) error {
	if strings.TrimSpace(c.Phone) == "" {
		return models.Invalid("contact.phone is required")
	}
	return nil
}

func validateAddress(a business.Address) error {
	if strings.TrimSpace(a.City) == "" {
		return models.Invalid("address.city is required")
	}
	return nil
}

func location(lat, lng *float64) (*models.GeoPoint, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, models.Invalid("latitude and longitude must be given together")
	}
	return models.NewGeoPoint(*lat, *lng)
}

func cleanAddress(a business.Address) business.Address {
	a.City = strings.TrimSpace(a.City)
	if strings.TrimSpace(a.Country) == "" {
		a.Country = "India"
	}
	return a
}

func (s *Service) resolveCategory(ctx context.Context, idOrSlug string) (string, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return "", models.Invalid("categoryId is required")
	}
	id, err := s.categories.ResolveID(ctx, idOrSlug)
	if err != nil {
		return "", fmt.Errorf("category: %w", err)
	}
	return id, nil
}

func (s *Service) checkLimit(ctx context.Context, vendorID string) error {
	if s.limits == nil {
		return nil
	}
	limit, err := s.limits.BusinessLimit(ctx, vendorID)
	if err != nil {
		return err
	}
	if limit <= 0 {
		return nil
	}
	n, err := s.repo.Count(ctx, business.Filter{VendorID: vendorID})
	if err != nil {
		return err
	}
	if n >= int64(limit) {
		return fmt.Errorf("%w: your plan allows %d listing(s); upgrade to add more", models.ErrLimitReached, limit)
	}
	return nil
}

func (s *Service) uniqueSlug(ctx context.Context, name string) (string, error) {
	return slug.Unique(ctx, name, "business", s.repo.SlugExists)
}

// Create validates in and stores a new listing. Vendor listings start pending;
// admin-created listings are approved.
func (s *Service) Create(ctx context.Context, actor models.Actor, in business.Input) (*business.Business, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.Invalid("name is required")
	}
	if err := validateContact(in.Contact); err != nil {
		return nil, err
	}
	if err := validateAddress(in.Address); err != nil {
		return nil, err
	}
	loc, err := location(in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	owner := actor.ID
	status := business.StatusPending
	if actor.IsAdmin() {
		status = business.StatusApproved
		if v := strings.TrimSpace(in.VendorID); v != "" {
			owner = v
		}
	} else if err := s.checkLimit(ctx, owner); err != nil {
		return nil, err
	}

	sl, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}
	b := &business.Business{
		Name:         name,
		Slug:         sl,
		Description:  strings.TrimSpace(in.Description),
		CategoryID:   categoryID,
		VendorID:     owner,
		Contact:      in.Contact,
		Address:      cleanAddress(in.Address),
		Location:     loc,
		Logo:         strings.TrimSpace(in.Logo),
		Images:       trimAll(in.Images),
		Tags:         normalizeTags(in.Tags),
		OpeningHours: in.OpeningHours,
		Status:       status,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	logger.Infof("business created id=%s slug=%s vendor=%s status=%s", b.ID, b.Slug, b.VendorID, b.Status)
	events.Emit(ctx, s.events, events.BusinessCreated, map[string]string{
		"id": b.ID, "name": b.Name, "slug": b.Slug, "vendorId": b.VendorID, "status": b.Status,
	})
	return b, nil
}

// Get returns any listing by id.
func (s *Service) Get(ctx context.Context, id string) (*business.Business, error) {
	return s.repo.Get(ctx, id)
}

// GetPublic returns an approved, active listing; others read as not found.
func (s *Service) GetPublic(ctx context.Context, id string) (*business.Business, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Public() {
		return nil, models.NotFound("business")
	}
	return b, nil
}

// GetOwned returns a listing the actor may manage.
func (s *Service) GetOwned(ctx context.Context, actor models.Actor, id string) (*business.Business, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(b.VendorID) {
		return nil, fmt.Errorf("%w: not your listing", models.ErrForbidden)
	}
	return b, nil
}

// GetBySlug serves the public detail page and counts the view.
func (s *Service) GetBySlug(ctx context.Context, sl string) (*business.Business, error) {
	b, err := s.repo.GetBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if !b.Public() {
		return nil, models.NotFound("business")
	}
	if err := s.repo.IncrementViews(ctx, b.ID); err != nil {
		logger.Warnf("increment views %s: %v", b.ID, err)
	} else {
		b.Views++
	}
	return b, nil
}

// Update applies p. Renaming re-slugs; vendor edits send the listing back to review.
func (s *Service) Update(ctx context.Context, actor models.Actor, id string, p business.Patch) (*business.Business, error) {
	b, err := s.GetOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, models.Invalid("name is required")
		}
		if name != b.Name {
			if slug.Make(name) != b.Slug {
				sl, err := s.uniqueSlug(ctx, name)
				if err != nil {
					return nil, err
				}
				b.Slug = sl
			}
			b.Name = name
		}
	}
	if p.Description != nil {
		b.Description = strings.TrimSpace(*p.Description)
	}
	if p.CategoryID != nil {
		cid, err := s.resolveCategory(ctx, *p.CategoryID)
		if err != nil {
			return nil, err
		}
		b.CategoryID = cid
	}
	if p.Contact != nil {
		if err := validateContact(*p.Contact); err != nil {
			return nil, err
		}
		b.Contact = *p.Contact
	}
	if p.Address != nil {
		if err := validateAddress(*p.Address); err != nil {
			return nil, err
		}
		b.Address = cleanAddress(*p.Address)
	}
	if p.Latitude != nil || p.Longitude != nil {
		loc, err := location(p.Latitude, p.Longitude)
		if err != nil {
			return nil, err
		}
		b.Location = loc
	}
	if p.Logo != nil {
		b.Logo = strings.TrimSpace(*p.Logo)
	}
	if p.Images != nil {
		b.Images = trimAll(*p.Images)
	}
	if p.Tags != nil {
		b.Tags = normalizeTags(*p.Tags)
	}
	if p.OpeningHours != nil {
		b.OpeningHours = *p.OpeningHours
	}
	if !actor.IsAdmin() {
		b.Status = business.StatusPending
	}
	if err := s.repo.Replace(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, actor models.Actor, id string) error {
	if _, err := s.GetOwned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Infof("business deleted id=%s by=%s", id, actor.ID)
	return nil
}

// ToggleActive flips the active flag and returns the new value.
func (s *Service) ToggleActive(ctx context.Context, actor models.Actor, id string) (bool, error) {
	b, err := s.GetOwned(ctx, actor, id)
	if err != nil {
		return false, err
	}
	next := !b.IsActive
	if err := s.repo.SetActive(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	if !business.ValidStatus(status) {
		return models.Invalid("status must be one of pending, approved, rejected")
	}
	return s.repo.SetStatus(ctx, id, status)
}

func (s *Service) SetFeatured(ctx context.Context, id string, featured bool) error {
	return s.repo.SetFeatured(ctx, id, featured)
}

// resolveFilter turns a category slug into its id.
func (s *Service) resolveFilter(ctx context.Context, f business.Filter) (business.Filter, bool, error) {
	if f.CategoryID == "" {
		return f, true, nil
	}
	id, err := s.categories.ResolveID(ctx, f.CategoryID)
	if err != nil {
		if models.IsNotFound(err) {
			return f, false, nil
		}
		return f, false, err
	}
	f.CategoryID = id
	return f, true, nil
}

// List returns listings matching f (admin view).
func (s *Service) List(ctx context.Context, f business.Filter, page models.PageRequest) (models.Page[business.Business], error) {
	f, ok, err := s.resolveFilter(ctx, f)
	if err != nil {
		return models.Page[business.Business]{}, err
	}
	if !ok {
		return models.Page[business.Business]{PageRequest: page.Normalize()}, nil
	}
	return s.repo.List(ctx, f, page)
}

// ListPublic forces approved and active listings.
func (s *Service) ListPublic(ctx context.Context, f business.Filter, page models.PageRequest) (models.Page[business.Business], error) {
	active := true
	f.Status = business.StatusApproved
	f.Active = &active
	return s.List(ctx, f, page)
}

// ListForActor restricts vendors to their own listings.
func (s *Service) ListForActor(ctx context.Context, actor models.Actor, f business.Filter, page models.PageRequest) (models.Page[business.Business], error) {
	if !actor.IsAdmin() {
		f.VendorID = actor.ID
	}
	return s.List(ctx, f, page)
}

func (s *Service) Nearby(ctx context.Context, q business.NearbyQuery) ([]business.Nearby, error) {
	if _, err := models.NewGeoPoint(q.Lat, q.Lng); err != nil {
		return nil, err
	}
	if q.CategoryID != "" {
		id, err := s.categories.ResolveID(ctx, q.CategoryID)
		if err != nil {
			if models.IsNotFound(err) {
				return []business.Nearby{}, nil
			}
			return nil, err
		}
		q.CategoryID = id
	}
	return s.repo.Nearby(ctx, q.Normalize())
}

// RecalculateRating stores the aggregate of visible reviews, rounded to one decimal.
func (s *Service) RecalculateRating(ctx context.Context, id string, average float64, count int) error {
	return s.repo.SetRating(ctx, id, business.Rating{Average: math.Round(average*10) / 10, Count: count})
}

func (s *Service) Count(ctx context.Context, f business.Filter) (int64, error) {
	return s.repo.Count(ctx, f)
}

// CountByCategory lets the categories service refuse deleting a referenced category.
func (s *Service) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return s.repo.Count(ctx, business.Filter{CategoryID: categoryID})
}

// All returns every listing matching f, ordered by name.
func (s *Service) All(ctx context.Context, f business.Filter) ([]business.Business, error) {
	return s.repo.All(ctx, f)
}

// PatchStatus bulk-moves listings between statuses.
func (s *Service) PatchStatus(ctx context.Context, from, to, categoryID string) (int64, error) {
	if !business.ValidStatus(from) || !business.ValidStatus(to) {
		return 0, models.Invalid("status must be one of pending, approved, rejected")
	}
	if categoryID != "" {
		id, err := s.resolveCategory(ctx, categoryID)
		if err != nil {
			return 0, err
		}
		categoryID = id
	}
	return s.repo.PatchStatus(ctx, from, to, categoryID)
}

// BackfillSlugs assigns slugs to listings that have none, or whose slug is not a
// valid slug form. Returns the number of listings changed.
func (s *Service) BackfillSlugs(ctx context.Context) (int, error) {
	all, err := s.repo.All(ctx, business.Filter{})
	if err != nil {
		return 0, err
	}
	n := 0
	for _, b := range all {
		if slug.Valid(b.Slug) {
			continue
		}
		id := b.ID
		// the listing's own stored slug never blocks its replacement
		sl, err := slug.Unique(ctx, b.Name, "business", func(ctx context.Context, candidate string) (bool, error) {
			other, err := s.repo.GetBySlug(ctx, candidate)
			if errors.Is(err, models.ErrNotFound) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			return other.ID != id, nil
		})
		if err != nil {
			return n, err
		}
		if err := s.repo.SetSlug(ctx, b.ID, sl); err != nil {
			return n, fmt.Errorf("set slug for %s: %w", b.ID, err)
		}
		n++
	}
	return n, nil
}
