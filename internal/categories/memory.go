package categories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Category
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[string]Category{}}
}

func (m *MemoryRepository) clash(c *Category) bool {
	for id, o := range m.items {
		if id != c.ID && (o.Slug == c.Slug || strings.EqualFold(o.Name, c.Name)) {
			return true
		}
	}
	return false
}

func (m *MemoryRepository) Create(ctx context.Context, c *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	if m.clash(c) {
		return models.Conflict("category name or slug")
	}
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.items[c.ID] = *c
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.items[id]
	if !ok {
		return nil, models.NotFound(entity)
	}
	return &c, nil
}

func (m *MemoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.items {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, models.NotFound(entity)
}

func (m *MemoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := m.GetBySlug(ctx, slug)
	return err == nil, nil
}

func (m *MemoryRepository) NameExists(ctx context.Context, name, exceptID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, c := range m.items {
		if id != exceptID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepository) List(ctx context.Context, activeOnly bool) ([]Category, error) {
	m.mu.RLock()
	out := make([]Category, 0, len(m.items))
	for _, c := range m.items {
		if !activeOnly || c.IsActive {
			out = append(out, c)
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *MemoryRepository) Replace(ctx context.Context, c *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[c.ID]; !ok {
		return models.NotFound(entity)
	}
	if m.clash(c) {
		return models.Conflict("category name or slug")
	}
	c.UpdatedAt = time.Now().UTC()
	m.items[c.ID] = *c
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return models.NotFound(entity)
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return models.NotFound(entity)
	}
	c.IsActive = active
	c.UpdatedAt = time.Now().UTC()
	m.items[id] = c
	return nil
}

func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.items)), nil
}
