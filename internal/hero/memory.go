package hero

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
	items map[string]Banner
	seq   int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[string]Banner{}}
}

func (m *MemoryRepository) Create(ctx context.Context, b *Banner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = primitive.NewObjectID().Hex()
	}
	m.seq++
	b.CreatedAt = time.Now().UTC().Add(time.Duration(m.seq) * time.Nanosecond)
	b.UpdatedAt = b.CreatedAt
	m.items[b.ID] = *b
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*Banner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.items[id]
	if !ok {
		return nil, models.NotFound("hero banner")
	}
	return &b, nil
}

func (m *MemoryRepository) List(ctx context.Context, activeOnly bool) ([]Banner, error) {
	m.mu.RLock()
	out := []Banner{}
	for _, b := range m.items {
		if !activeOnly || b.IsActive {
			out = append(out, b)
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepository) Replace(ctx context.Context, b *Banner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[b.ID]; !ok {
		return models.NotFound("hero banner")
	}
	b.UpdatedAt = time.Now().UTC()
	m.items[b.ID] = *b
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return models.NotFound("hero banner")
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryRepository) set(id string, fn func(*Banner)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[id]
	if !ok {
		return models.NotFound("hero banner")
	}
	fn(&b)
	b.UpdatedAt = time.Now().UTC()
	m.items[id] = b
	return nil
}

func (m *MemoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	return m.set(id, func(b *Banner) { b.IsActive = active })
}

func (m *MemoryRepository) SetOrder(ctx context.Context, id string, order int) error {
	return m.set(id, func(b *Banner) { b.Order = order })
}

func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.items)), nil
}
