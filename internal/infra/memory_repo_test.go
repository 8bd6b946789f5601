package infra

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvaluation(id, evaluator, media string, at time.Time) *models.Evaluation {
	return &models.Evaluation{
		ID:          id,
		EvaluatorID: evaluator,
		MediaID:     media,
		Ratings:     models.Ratings{Beauty: 3, Boring: 3, Depressing: 3, Lively: 3, Wealthy: 3, Safe: 3},
		Comment:     "fine",
		CreatedAt:   at,
	}
}

func TestMemoryMediaRepo_QueryAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMediaRepo()

	for _, m := range []models.MediaItem{
		{ID: "a", Year: 2020, SquareIndex: 1, Type: models.MediaImage},
		{ID: "b", Year: 2020, SquareIndex: 2, Type: models.MediaVideo},
		{ID: "c", Year: 2021, SquareIndex: 1, Type: models.MediaImage},
	} {
		_, err := repo.InsertMedia(ctx, &m)
		require.NoError(t, err)
	}

	dup := models.MediaItem{ID: "a", Type: models.MediaImage}
	_, err := repo.InsertMedia(ctx, &dup)
	assert.ErrorIs(t, err, ports.ErrConflict)

	year := 2020
	got, err := repo.QueryMedia(ctx, models.MediaFilter{Year: &year})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, repo.MarkDeleted(ctx, "a"))
	require.NoError(t, repo.MarkDeleted(ctx, "a"), "soft delete is idempotent")
	assert.ErrorIs(t, repo.MarkDeleted(ctx, "zzz"), ports.ErrNotFound)

	ids, err := repo.ListMediaIDs(ctx, models.MediaFilter{Type: models.MediaImage})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids)

	ids, err = repo.ListMediaIDs(ctx, models.MediaFilter{Type: models.MediaImage, IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids)

	item, err := repo.GetMediaByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, item.Deleted)
}

func TestMemoryMediaRepo_AssignsID(t *testing.T) {
	repo := NewMemoryMediaRepo()
	item, err := repo.InsertMedia(context.Background(), &models.MediaItem{Type: models.MediaImage})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.False(t, item.CreatedAt.IsZero())
}

func TestMemoryEvaluationRepo_ConcurrentInsertSamePair(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEvaluationRepo()
	now := time.Now()

	const racers = 50
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.InsertEvaluation(ctx, sampleEvaluation(string(rune('A'+i)), "u1", "m1", now))
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ports.ErrConflict)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryEvaluationRepo_MutatorErrorLeavesRowUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEvaluationRepo()
	_, err := repo.InsertEvaluation(ctx, sampleEvaluation("e1", "u1", "m1", time.Now()))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.UpdateEvaluation(ctx, "e1", func(e *models.Evaluation) error {
		e.Beauty = 1
		e.Comment = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rows, err := repo.ListByEvaluator(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Beauty)
	assert.Equal(t, "fine", rows[0].Comment)
}

func TestMemoryEvaluationRepo_UpdateKeepsIdentityFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEvaluationRepo()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.InsertEvaluation(ctx, sampleEvaluation("e1", "u1", "m1", at))
	require.NoError(t, err)

	got, err := repo.UpdateEvaluation(ctx, "e1", func(e *models.Evaluation) error {
		e.EvaluatorID = "intruder"
		e.CreatedAt = at.Add(time.Hour)
		e.Safe = 5
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", got.EvaluatorID)
	assert.Equal(t, at, got.CreatedAt)
	assert.Equal(t, 5, got.Safe)

	_, err = repo.UpdateEvaluation(ctx, "missing", func(*models.Evaluation) error { return nil })
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestMemoryEvaluationRepo_OrderingAndRated(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEvaluationRepo()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	inserts := []*models.Evaluation{
		sampleEvaluation("e1", "u1", "m1", at),
		sampleEvaluation("e2", "u1", "m2", at.Add(time.Minute)),
		sampleEvaluation("e3", "u1", "m3", at.Add(time.Minute)),
		sampleEvaluation("e4", "u2", "m1", at.Add(-time.Hour)),
	}
	for _, e := range inserts {
		_, err := repo.InsertEvaluation(ctx, e)
		require.NoError(t, err)
	}

	mine, err := repo.ListByEvaluator(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e2", "e1"}, evaluationIDs(mine))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e2", "e1", "e4"}, evaluationIDs(all))

	rated, err := repo.RatedMediaIDs(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"m1", "m2", "m3"}, rated)

	none, err := repo.ListByEvaluator(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func evaluationIDs(rows []models.Evaluation) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}
