package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps listings in process; used in dev mode and unit tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*business.Business
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*business.Business)}
}

func clone(b *business.Business) business.Business {
	c := *b
	c.Images = append([]string(nil), b.Images...)
	c.Tags = append([]string(nil), b.Tags...)
	c.OpeningHours = append([]business.OpeningHours(nil), b.OpeningHours...)
	if b.Location != nil {
		loc := *b.Location
		loc.Coordinates = append([]float64(nil), b.Location.Coordinates...)
		c.Location = &loc
	}
	return c
}

func (m *MemoryRepo) slugTaken(slug, exceptID string) bool {
	for id, b := range m.store {
		if b.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

func (m *MemoryRepo) Create(ctx context.Context, b *business.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(b.Slug, "") {
		return models.Conflict("slug")
	}
	if b.ID == "" {
		b.ID = primitive.NewObjectID().Hex()
	}
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	c := clone(b)
	m.store[b.ID] = &c
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*business.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.store[id]; ok {
		c := clone(b)
		return &c, nil
	}
	return nil, models.NotFound(entity)
}

func (m *MemoryRepo) GetBySlug(ctx context.Context, slug string) (*business.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.store {
		if b.Slug == slug {
			c := clone(b)
			return &c, nil
		}
	}
	return nil, models.NotFound(entity)
}

func (m *MemoryRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slugTaken(slug, ""), nil
}

func (m *MemoryRepo) match(f business.Filter) []business.Business {
	out := []business.Business{}
	for _, b := range m.store {
		if b.Matches(f) {
			out = append(out, clone(b))
		}
	}
	return out
}

func (m *MemoryRepo) List(ctx context.Context, f business.Filter, page models.PageRequest) (models.Page[business.Business], error) {
	m.mu.RLock()
	all := m.match(f)
	m.mu.RUnlock()
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured
		}
		if a.Rating.Average != b.Rating.Average {
			return a.Rating.Average > b.Rating.Average
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return models.Slice(all, page), nil
}

func (m *MemoryRepo) All(ctx context.Context, f business.Filter) ([]business.Business, error) {
	m.mu.RLock()
	all := m.match(f)
	m.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// Nearby filters by haversine distance and orders nearest first.
func (m *MemoryRepo) Nearby(ctx context.Context, q business.NearbyQuery) ([]business.Nearby, error) {
	q = q.Normalize()
	m.mu.RLock()
	candidates := m.match(business.Filter{CategoryID: q.CategoryID, Status: business.StatusApproved, Active: boolPtr(true)})
	m.mu.RUnlock()

	out := []business.Nearby{}
	for _, b := range candidates {
		if b.Location == nil {
			continue
		}
		d := models.DistanceKm(q.Lat, q.Lng, b.Location.Lat(), b.Location.Lng())
		if d <= q.RadiusKm {
			out = append(out, business.Nearby{Business: b, DistanceKm: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemoryRepo) Replace(ctx context.Context, b *business.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[b.ID]; !ok {
		return models.NotFound(entity)
	}
	if m.slugTaken(b.Slug, b.ID) {
		return models.Conflict("slug")
	}
	b.UpdatedAt = time.Now().UTC()
	c := clone(b)
	m.store[b.ID] = &c
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return models.NotFound(entity)
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepo) update(id string, fn func(b *business.Business) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[id]
	if !ok {
		return models.NotFound(entity)
	}
	if err := fn(b); err != nil {
		return err
	}
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryRepo) SetActive(ctx context.Context, id string, active bool) error {
	return m.update(id, func(b *business.Business) error { b.IsActive = active; return nil })
}

func (m *MemoryRepo) SetStatus(ctx context.Context, id, status string) error {
	return m.update(id, func(b *business.Business) error { b.Status = status; return nil })
}

func (m *MemoryRepo) SetFeatured(ctx context.Context, id string, featured bool) error {
	return m.update(id, func(b *business.Business) error { b.IsFeatured = featured; return nil })
}

func (m *MemoryRepo) SetSlug(ctx context.Context, id, slug string) error {
	return m.update(id, func(b *business.Business) error {
		if m.slugTaken(slug, id) {
			return models.Conflict("slug")
		}
		b.Slug = slug
		return nil
	})
}

func (m *MemoryRepo) SetRating(ctx context.Context, id string, r business.Rating) error {
	return m.update(id, func(b *business.Business) error { b.Rating = r; return nil })
}

func (m *MemoryRepo) IncrementViews(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.store[id]; ok {
		b.Views++
	}
	return nil
}

func (m *MemoryRepo) Count(ctx context.Context, f business.Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, b := range m.store {
		if b.Matches(f) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryRepo) PatchStatus(ctx context.Context, from, to, categoryID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	f := business.Filter{Status: from, CategoryID: categoryID}
	now := time.Now().UTC()
	for _, b := range m.store {
		if b.Matches(f) && b.Status != to {
			b.Status = to
			b.UpdatedAt = now
			n++
		}
	}
	return n, nil
}
