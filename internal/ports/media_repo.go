package ports

import (
	"context"

	"github.com/Vovarama1992/ambiance/internal/models"
)

type MediaRepository interface {
	InsertMedia(ctx context.Context, item *models.MediaItem) (*models.MediaItem, error)
	GetMediaByID(ctx context.Context, id string) (*models.MediaItem, error)
	QueryMedia(ctx context.Context, f models.MediaFilter) ([]models.MediaItem, error)
	// ListMediaIDs returns only ids, in a stable order, for candidate selection.
	ListMediaIDs(ctx context.Context, f models.MediaFilter) ([]string, error)
	MarkDeleted(ctx context.Context, id string) error
}
