package domain

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type CatalogService struct {
	repo ports.MediaRepository
	log  *logger.ZapLogger
}

func NewCatalogService(repo ports.MediaRepository, log *logger.ZapLogger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (c *CatalogService) Query(ctx context.Context, f models.MediaFilter) ([]models.MediaItem, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, fmt.Errorf("%w: media_type must be one of [image video]", ports.ErrValidation)
	}
	return c.repo.QueryMedia(ctx, f)
}

func (c *CatalogService) Get(ctx context.Context, id string) (*models.MediaItem, error) {
	return c.repo.GetMediaByID(ctx, id)
}

// MarkDeleted is a one-way flag flip; deleting twice is not an error.
func (c *CatalogService) MarkDeleted(ctx context.Context, id string) error {
	if err := c.repo.MarkDeleted(ctx, id); err != nil {
		return err
	}

	c.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "media soft-deleted",
		Fields:  map[string]any{"mediaID": id},
	})
	return nil
}
