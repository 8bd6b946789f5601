package domain

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Vovarama1992/ambiance/internal/infra"
	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fixedRand always draws the same index, clamped to the candidate count.
type fixedRand struct{ idx int }

func (f fixedRand) IntN(n int) int {
	if f.idx >= n {
		return n - 1
	}
	return f.idx
}

type fixture struct {
	media *infra.MemoryMediaRepo
	evals *infra.MemoryEvaluationRepo
	clock *fakeClock
	store *EvaluationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		media: infra.NewMemoryMediaRepo(),
		evals: infra.NewMemoryEvaluationRepo(),
		clock: newFakeClock(),
	}
	f.store = NewEvaluationService(f.evals, f.media, testLogger(), WithClock(f.clock.Now))
	return f
}

func (f *fixture) addMedia(t *testing.T, id string, typ models.MediaType, year, square int) {
	t.Helper()
	_, err := f.media.InsertMedia(context.Background(), &models.MediaItem{
		ID:          id,
		Year:        year,
		SquareIndex: square,
		Type:        typ,
		URL:         "https://example.org/" + id,
		Coords:      []byte(`{"square":` + strconv.Itoa(square) + `}`),
	})
	require.NoError(t, err)
}

func goodRatings() models.Ratings {
	return models.Ratings{Beauty: 5, Boring: 1, Depressing: 1, Lively: 4, Wealthy: 3, Safe: 4}
}
