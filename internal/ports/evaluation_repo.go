package ports

import (
	"context"

	"github.com/Vovarama1992/ambiance/internal/models"
)

// EvaluationMutator runs inside the repository's per-record atomic section.
// Returning an error aborts the write.
type EvaluationMutator func(e *models.Evaluation) error

type EvaluationRepository interface {
	// InsertEvaluation is an atomic check-and-insert on (evaluator, media).
	// It returns ErrConflict and writes nothing when the pair already exists.
	InsertEvaluation(ctx context.Context, e *models.Evaluation) (*models.Evaluation, error)
	UpdateEvaluation(ctx context.Context, id string, mutate EvaluationMutator) (*models.Evaluation, error)
	ListByEvaluator(ctx context.Context, evaluatorID string) ([]models.Evaluation, error)
	ListAll(ctx context.Context) ([]models.Evaluation, error)
	RatedMediaIDs(ctx context.Context, evaluatorID string) ([]string, error)
}
