package inquiries

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
	items map[string]Inquiry
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[string]Inquiry{}}
}

func (m *MemoryRepository) Create(ctx context.Context, i *Inquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i.ID == "" {
		i.ID = primitive.NewObjectID().Hex()
	}
	i.CreatedAt = time.Now().UTC()
	i.UpdatedAt = i.CreatedAt
	m.items[i.ID] = *i
	m.order = append(m.order, i.ID)
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*Inquiry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.items[id]
	if !ok {
		return nil, models.NotFound("inquiry")
	}
	return &i, nil
}

// matching returns matches newest first; insertion order breaks clock ties.
func (m *MemoryRepository) matching(f Filter) []Inquiry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Inquiry{}
	for k := len(m.order) - 1; k >= 0; k-- {
		if i, ok := m.items[m.order[k]]; ok && f.match(i) {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out
}

func (m *MemoryRepository) List(ctx context.Context, f Filter, page models.PageRequest) (models.Page[Inquiry], error) {
	return models.Slice(m.matching(f), page), nil
}

func (m *MemoryRepository) SetStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.items[id]
	if !ok {
		return models.NotFound("inquiry")
	}
	i.Status = status
	i.UpdatedAt = time.Now().UTC()
	m.items[id] = i
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return models.NotFound("inquiry")
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryRepository) Count(ctx context.Context, f Filter) (int64, error) {
	return int64(len(m.matching(f))), nil
}
