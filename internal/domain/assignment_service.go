package domain

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

// AssignmentService picks media an evaluator has never rated. It takes no locks:
// two racing calls may return the same item, and the evaluation store's
// uniqueness check settles which submission wins.
type AssignmentService struct {
	media   ports.MediaRepository
	evals   ports.EvaluationRepository
	rand    RandSource
	log     *logger.ZapLogger
	metrics ports.OutcomeRecorder
}

func NewAssignmentService(
	media ports.MediaRepository,
	evals ports.EvaluationRepository,
	rnd RandSource,
	log *logger.ZapLogger,
	metrics ports.OutcomeRecorder,
) *AssignmentService {
	if rnd == nil {
		rnd = globalRand{}
	}
	if metrics == nil {
		metrics = ports.NopRecorder{}
	}
	return &AssignmentService{
		media:   media,
		evals:   evals,
		rand:    &lockedRand{src: rnd},
		log:     log,
		metrics: metrics,
	}
}

func (s *AssignmentService) GetNextUnseen(
	ctx context.Context,
	evaluatorID string,
	mediaType models.MediaType,
) (*models.MediaItem, error) {

	if !mediaType.Valid() {
		return nil, fmt.Errorf("%w: media_type must be one of [image video]", ports.ErrValidation)
	}

	// exclusion spans every media type
	rated, err := s.evals.RatedMediaIDs(ctx, evaluatorID)
	if err != nil {
		s.metrics.Assignment("error")
		return nil, err
	}
	seen := make(map[string]struct{}, len(rated))
	for _, id := range rated {
		seen[id] = struct{}{}
	}

	ids, err := s.media.ListMediaIDs(ctx, models.MediaFilter{Type: mediaType})
	if err != nil {
		s.metrics.Assignment("error")
		return nil, err
	}

	candidates := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 0 {
		s.metrics.Assignment("exhausted")
		s.log.Log(logger.LogEntry{
			Level:   "info",
			Message: "no unseen media left",
			Fields:  map[string]any{"evaluatorID": evaluatorID, "mediaType": mediaType, "rated": len(rated)},
		})
		return nil, ports.ErrExhausted
	}

	picked := candidates[s.rand.IntN(len(candidates))]
	item, err := s.media.GetMediaByID(ctx, picked)
	if err != nil {
		s.metrics.Assignment("error")
		return nil, err
	}

	s.metrics.Assignment("assigned")
	return item, nil
}
