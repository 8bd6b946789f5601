package infra

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
)

type pairKey struct {
	evaluatorID string
	mediaID     string
}

type storedEvaluation struct {
	eval models.Evaluation
	seq  int
}

// MemoryEvaluationRepo serialises writes on one mutex, which gives the same
// check-and-insert guarantee as the postgres unique constraint.
type MemoryEvaluationRepo struct {
	mu     sync.RWMutex
	byID   map[string]*storedEvaluation
	byPair map[pairKey]string
	seq    int
}

func NewMemoryEvaluationRepo() *MemoryEvaluationRepo {
	return &MemoryEvaluationRepo{
		byID:   make(map[string]*storedEvaluation),
		byPair: make(map[pairKey]string),
	}
}

func (r *MemoryEvaluationRepo) InsertEvaluation(_ context.Context, e *models.Evaluation) (*models.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{evaluatorID: e.EvaluatorID, mediaID: e.MediaID}
	if _, ok := r.byPair[key]; ok {
		return nil, fmt.Errorf("evaluator %s media %s: %w", e.EvaluatorID, e.MediaID, ports.ErrConflict)
	}
	if _, ok := r.byID[e.ID]; ok {
		return nil, fmt.Errorf("%w: duplicate evaluation id %s", ports.ErrStorage, e.ID)
	}

	r.seq++
	r.byID[e.ID] = &storedEvaluation{eval: *e, seq: r.seq}
	r.byPair[key] = e.ID

	out := *e
	return &out, nil
}

func (r *MemoryEvaluationRepo) UpdateEvaluation(
	_ context.Context,
	id string,
	mutate ports.EvaluationMutator,
) (*models.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("evaluation %s: %w", id, ports.ErrNotFound)
	}

	working := s.eval
	if err := mutate(&working); err != nil {
		return nil, err
	}

	// identity fields are not mutable through an update
	working.ID = s.eval.ID
	working.EvaluatorID = s.eval.EvaluatorID
	working.MediaID = s.eval.MediaID
	working.CreatedAt = s.eval.CreatedAt
	s.eval = working

	out := working
	return &out, nil
}

func (r *MemoryEvaluationRepo) snapshot(keep func(*models.Evaluation) bool) []models.Evaluation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]*storedEvaluation, 0, len(r.byID))
	for _, s := range r.byID {
		if keep(&s.eval) {
			rows = append(rows, s)
		}
	}

	// newest first; insertion sequence breaks ties
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].eval.CreatedAt.Equal(rows[j].eval.CreatedAt) {
			return rows[i].eval.CreatedAt.After(rows[j].eval.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]models.Evaluation, 0, len(rows))
	for _, s := range rows {
		out = append(out, s.eval)
	}
	return out
}

func (r *MemoryEvaluationRepo) ListByEvaluator(_ context.Context, evaluatorID string) ([]models.Evaluation, error) {
	return r.snapshot(func(e *models.Evaluation) bool { return e.EvaluatorID == evaluatorID }), nil
}

func (r *MemoryEvaluationRepo) ListAll(_ context.Context) ([]models.Evaluation, error) {
	return r.snapshot(func(*models.Evaluation) bool { return true }), nil
}

func (r *MemoryEvaluationRepo) RatedMediaIDs(_ context.Context, evaluatorID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for key := range r.byPair {
		if key.evaluatorID == evaluatorID {
			ids = append(ids, key.mediaID)
		}
	}
	return ids, nil
}
