package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/config"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ObjectStore is the object host used for listing images.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns a browser-reachable address for key.
	URL(ctx context.Context, key string) (string, error)
	Ping(ctx context.Context) error
}

// Folders accepted for uploads.
var Folders = map[string]bool{
	"businesses": true,
	"categories": true,
	"hero":       true,
	"ads":        true,
	"logos":      true,
}

const DefaultFolder = "businesses"

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Stored describes an uploaded image.
type Stored struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Images validates uploads and writes them to an ObjectStore.
type Images struct {
	store    ObjectStore
	maxBytes int64
}

func NewImages(store ObjectStore, cfg config.UploadsConfig) *Images {
	limit := cfg.MaxBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	return &Images{store: store, maxBytes: limit}
}

// Store is the backing object store (readiness checks).
func (i *Images) Store() ObjectStore { return i.store }

// Save sniffs the content type, stores the image under <folder>/<uuid><ext> and returns its URL.
func (i *Images) Save(ctx context.Context, folder string, r io.Reader, size int64) (*Stored, error) {
	folder = strings.ToLower(strings.TrimSpace(folder))
	if folder == "" {
		folder = DefaultFolder
	}
	if !Folders[folder] {
		return nil, models.Invalid("unknown upload folder %q", folder)
	}
	if size > i.maxBytes {
		return nil, models.Invalid("image exceeds %d bytes", i.maxBytes)
	}
	// read at most max+1 bytes so oversized bodies with a lying size are caught
	data, err := io.ReadAll(io.LimitReader(r, i.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > i.maxBytes {
		return nil, models.Invalid("image exceeds %d bytes", i.maxBytes)
	}
	if len(data) == 0 {
		return nil, models.Invalid("image is empty")
	}
	mt := mimetype.Detect(data).String()
	if semi := strings.IndexByte(mt, ';'); semi >= 0 {
		mt = mt[:semi]
	}
	ext, ok := imageTypes[mt]
	if !ok {
		return nil, models.Invalid("unsupported image type %s", mt)
	}
	key := folder + "/" + uuid.NewString() + ext

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := i.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mt); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	url, err := i.store.URL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("image url: %w", err)
	}
	return &Stored{URL: url, Key: key, ContentType: mt, Size: int64(len(data))}, nil
}

// Delete removes a stored image. Keys must name an upload folder.
func (i *Images) Delete(ctx context.Context, key string) error {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	folder, name, ok := strings.Cut(key, "/")
	if !ok || !Folders[folder] || name == "" || strings.Contains(name, "/") || strings.Contains(key, "..") {
		return models.Invalid("invalid object key %q", key)
	}
	return i.store.Delete(ctx, key)
}
