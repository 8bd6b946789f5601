package ports

import (
	"context"

	"github.com/Vovarama1992/ambiance/internal/models"
)

type Catalog interface {
	Query(ctx context.Context, f models.MediaFilter) ([]models.MediaItem, error)
	Get(ctx context.Context, id string) (*models.MediaItem, error)
	MarkDeleted(ctx context.Context, id string) error
}

type Assigner interface {
	GetNextUnseen(ctx context.Context, evaluatorID string, mediaType models.MediaType) (*models.MediaItem, error)
}

type EvaluationStore interface {
	Submit(ctx context.Context, evaluatorID, mediaID string, ratings models.Ratings, comment string) (string, error)
	Update(ctx context.Context, evaluationID, evaluatorID string, patch models.EvaluationPatch) (*models.Evaluation, error)
	ListByEvaluator(ctx context.Context, evaluatorID string) ([]models.Evaluation, error)
	ListAll(ctx context.Context) ([]models.Evaluation, error)
}

type Aggregator interface {
	ComputeComposite(ctx context.Context, year int) (models.CompositeMap, error)
}
