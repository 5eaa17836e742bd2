package storage

import (
	"context"
	"io"
	"sync"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
)

// MemoryStorage keeps objects in process; used when MinIO is not configured.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
	baseURL string
}

// NewMemoryStorage serves URLs as baseURL/key.
func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{objects: map[string][]byte{}, types: map[string]string{}, baseURL: baseURL}
}

func (m *MemoryStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	m.types[key] = contentType
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return models.NotFound("object")
	}
	delete(m.objects, key)
	delete(m.types, key)
	return nil
}

func (m *MemoryStorage) URL(ctx context.Context, key string) (string, error) {
	return m.baseURL + "/" + key, nil
}

func (m *MemoryStorage) Ping(ctx context.Context) error { return nil }

// Get returns a stored object and its content type.
func (m *MemoryStorage) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[key]
	return b, m.types[key], ok
}
