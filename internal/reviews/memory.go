package reviews

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
	items map[string]Review
	seq   int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[string]Review{}}
}

func (m *MemoryRepository) Create(ctx context.Context, r *Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = primitive.NewObjectID().Hex()
	}
	// keep creation order strict for equal clock readings
	m.seq++
	r.CreatedAt = time.Now().UTC().Add(time.Duration(m.seq) * time.Nanosecond)
	r.UpdatedAt = r.CreatedAt
	m.items[r.ID] = *r
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.items[id]
	if !ok {
		return nil, models.NotFound("review")
	}
	return &r, nil
}

func (m *MemoryRepository) List(ctx context.Context, f Filter, page models.PageRequest) (models.Page[Review], error) {
	m.mu.RLock()
	all := []Review{}
	for _, r := range m.items {
		if f.match(r) {
			all = append(all, r)
		}
	}
	m.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return models.Slice(all, page), nil
}

func (m *MemoryRepository) SetVisible(ctx context.Context, id string, visible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return models.NotFound("review")
	}
	r.IsVisible = visible
	r.UpdatedAt = time.Now().UTC()
	m.items[id] = r
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return models.NotFound("review")
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryRepository) VisibleStats(ctx context.Context, businessID string) (float64, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum, n := 0, 0
	for _, r := range m.items {
		if r.BusinessID == businessID && r.IsVisible {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.items)), nil
}
