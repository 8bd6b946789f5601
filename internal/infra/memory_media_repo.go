package infra

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/google/uuid"
)

// MemoryMediaRepo keeps the catalog in process. Insertion order is the query order.
type MemoryMediaRepo struct {
	mu    sync.RWMutex
	items map[string]*models.MediaItem
	order []string
}

func NewMemoryMediaRepo() *MemoryMediaRepo {
	return &MemoryMediaRepo{items: make(map[string]*models.MediaItem)}
}

func cloneMedia(m *models.MediaItem) models.MediaItem {
	c := *m
	c.Coords = slices.Clone(m.Coords)
	return c
}

func (r *MemoryMediaRepo) InsertMedia(_ context.Context, item *models.MediaItem) (*models.MediaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if _, ok := r.items[item.ID]; ok {
		return nil, fmt.Errorf("media %s: %w", item.ID, ports.ErrConflict)
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	stored := cloneMedia(item)
	r.items[item.ID] = &stored
	r.order = append(r.order, item.ID)
	return item, nil
}

func (r *MemoryMediaRepo) GetMediaByID(_ context.Context, id string) (*models.MediaItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("media %s: %w", id, ports.ErrNotFound)
	}
	c := cloneMedia(m)
	return &c, nil
}

func (r *MemoryMediaRepo) QueryMedia(_ context.Context, f models.MediaFilter) ([]models.MediaItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.MediaItem
	for _, id := range r.order {
		if m := r.items[id]; f.Match(m) {
			out = append(out, cloneMedia(m))
		}
	}
	return out, nil
}

func (r *MemoryMediaRepo) ListMediaIDs(_ context.Context, f models.MediaFilter) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, id := range r.order {
		if f.Match(r.items[id]) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *MemoryMediaRepo) MarkDeleted(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]
	if !ok {
		return fmt.Errorf("media %s: %w", id, ports.ErrNotFound)
	}
	m.Deleted = true
	return nil
}
