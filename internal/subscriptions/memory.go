package subscriptions

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryPlans struct {
	mu    sync.RWMutex
	items map[string]Plan
}

func NewMemoryPlans() *MemoryPlans { return &MemoryPlans{items: map[string]Plan{}} }

func clonePlan(p Plan) Plan {
	p.Features = append([]string(nil), p.Features...)
	return p
}

func (m *MemoryPlans) Create(ctx context.Context, p *Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.items {
		if o.Slug == p.Slug {
			return models.Conflict("plan slug")
		}
	}
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	m.items[p.ID] = clonePlan(*p)
	return nil
}

func (m *MemoryPlans) Get(ctx context.Context, id string) (*Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.items[id]
	if !ok {
		return nil, models.NotFound("plan")
	}
	p = clonePlan(p)
	return &p, nil
}

func (m *MemoryPlans) SlugExists(ctx context.Context, slug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.items {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryPlans) List(ctx context.Context, activeOnly bool) ([]Plan, error) {
	m.mu.RLock()
	out := []Plan{}
	for _, p := range m.items {
		if !activeOnly || p.IsActive {
			out = append(out, clonePlan(p))
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (m *MemoryPlans) Replace(ctx context.Context, p *Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[p.ID]; !ok {
		return models.NotFound("plan")
	}
	for id, o := range m.items {
		if id != p.ID && o.Slug == p.Slug {
			return models.Conflict("plan slug")
		}
	}
	p.UpdatedAt = time.Now().UTC()
	m.items[p.ID] = clonePlan(*p)
	return nil
}

func (m *MemoryPlans) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return models.NotFound("plan")
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryPlans) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return models.NotFound("plan")
	}
	p.IsActive = active
	m.items[id] = p
	return nil
}

type MemorySubscriptions struct {
	mu    sync.RWMutex
	items map[string]Subscription
}

func NewMemorySubscriptions() *MemorySubscriptions {
	return &MemorySubscriptions{items: map[string]Subscription{}}
}

func (m *MemorySubscriptions) Create(ctx context.Context, s *Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	m.items[s.ID] = *s
	return nil
}

func (m *MemorySubscriptions) Active(ctx context.Context, vendorID string) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *Subscription
	for _, s := range m.items {
		if s.VendorID != vendorID || s.Status != StatusActive {
			continue
		}
		if best == nil || s.StartsAt.After(best.StartsAt) {
			s := s
			best = &s
		}
	}
	return best, nil
}

func (m *MemorySubscriptions) SetStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		return models.NotFound("subscription")
	}
	s.Status = status
	s.UpdatedAt = time.Now().UTC()
	m.items[id] = s
	return nil
}

func (m *MemorySubscriptions) setWhere(match func(Subscription) bool, status string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.items {
		if match(s) {
			s.Status = status
			s.UpdatedAt = time.Now().UTC()
			m.items[id] = s
			n++
		}
	}
	return n
}

func (m *MemorySubscriptions) CancelActive(ctx context.Context, vendorID string) (int64, error) {
	return m.setWhere(func(s Subscription) bool {
		return s.VendorID == vendorID && s.Status == StatusActive
	}, StatusCancelled), nil
}

func (m *MemorySubscriptions) ExpireBefore(ctx context.Context, t time.Time) (int64, error) {
	return m.setWhere(func(s Subscription) bool {
		return s.Status == StatusActive && !s.EndsAt.After(t)
	}, StatusExpired), nil
}

func (m *MemorySubscriptions) CountActive(ctx context.Context, now time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, s := range m.items {
		if s.Current(now) {
			n++
		}
	}
	return n, nil
}

func (m *MemorySubscriptions) ByVendor(ctx context.Context, vendorID string) ([]Subscription, error) {
	m.mu.RLock()
	out := []Subscription{}
	for _, s := range m.items {
		if s.VendorID == vendorID {
			out = append(out, s)
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}
