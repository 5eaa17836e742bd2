package vendors

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository keeps vendors in a map; used in dev mode and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]models.Vendor
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]models.Vendor)}
}

func (m *MemoryRepository) Create(ctx context.Context, v *models.Vendor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.store {
		if existing.Email == v.Email {
			return models.Conflict("email")
		}
	}
	if v.ID == "" {
		v.ID = primitive.NewObjectID().Hex()
	}
	v.CreatedAt = time.Now().UTC()
	v.UpdatedAt = v.CreatedAt
	m.store[v.ID] = *v
	return nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Vendor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.store[id]
	if !ok {
		return nil, models.NotFound("vendor")
	}
	return &v, nil
}

func (m *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.store {
		if v.Email == email {
			out := v
			return &out, nil
		}
	}
	return nil, models.NotFound("vendor")
}

func (m *MemoryRepository) UpsertBySub(ctx context.Context, v *models.Vendor) (*models.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	for id, existing := range m.store {
		if existing.Sub == v.Sub {
			existing.Email = v.Email
			existing.Name = v.Name
			existing.UpdatedAt = now
			m.store[id] = existing
			return &existing, nil
		}
	}
	for _, existing := range m.store {
		if existing.Email == v.Email {
			return nil, models.Conflict("email")
		}
	}
	created := models.Vendor{
		ID:        primitive.NewObjectID().Hex(),
		Sub:       v.Sub,
		Email:     v.Email,
		Name:      v.Name,
		Role:      models.RoleVendor,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.store[created.ID] = created
	return &created, nil
}

func (m *MemoryRepository) List(ctx context.Context, page models.PageRequest) (models.Page[models.Vendor], error) {
	m.mu.RLock()
	all := make([]models.Vendor, 0, len(m.store))
	for _, v := range m.store {
		all = append(all, v)
	}
	m.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return models.Slice(all, page), nil
}

func (m *MemoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.store[id]
	if !ok {
		return models.NotFound("vendor")
	}
	v.IsActive = active
	v.UpdatedAt = time.Now().UTC()
	m.store[id] = v
	return nil
}

func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, v := range m.store {
		if v.Role == models.RoleVendor {
			n++
		}
	}
	return n, nil
}
