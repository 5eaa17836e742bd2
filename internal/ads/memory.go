package ads

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Ad
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[string]Ad{}}
}

func (m *MemoryRepository) Create(ctx context.Context, a *Ad) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.items[a.ID] = *a
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*Ad, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.items[id]
	if !ok {
		return nil, models.NotFound("ad")
	}
	return &a, nil
}

func byOrder(out []Ad) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}

func (m *MemoryRepository) Live(ctx context.Context, q Query) ([]Ad, error) {
	m.mu.RLock()
	out := []Ad{}
	for _, a := range m.items {
		if q.match(a) {
			out = append(out, a)
		}
	}
	m.mu.RUnlock()
	byOrder(out)
	return out, nil
}

func (m *MemoryRepository) List(ctx context.Context, page models.PageRequest) (models.Page[Ad], error) {
	m.mu.RLock()
	all := make([]Ad, 0, len(m.items))
	for _, a := range m.items {
		all = append(all, a)
	}
	m.mu.RUnlock()
	byOrder(all)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Placement < all[j].Placement })
	return models.Slice(all, page), nil
}

func (m *MemoryRepository) Replace(ctx context.Context, a *Ad) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[a.ID]; !ok {
		return models.NotFound("ad")
	}
	a.UpdatedAt = time.Now().UTC()
	m.items[a.ID] = *a
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return models.NotFound("ad")
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryRepository) update(id string, fn func(*Ad)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return models.NotFound("ad")
	}
	fn(&a)
	m.items[id] = a
	return nil
}

func (m *MemoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	return m.update(id, func(a *Ad) { a.IsActive = active })
}

func (m *MemoryRepository) AddImpressions(ctx context.Context, ids []string) error {
	for _, id := range ids {
		_ = m.update(id, func(a *Ad) { a.Impressions++ })
	}
	return nil
}

func (m *MemoryRepository) AddClick(ctx context.Context, id string) error {
	return m.update(id, func(a *Ad) { a.Clicks++ })
}
