package domain

import (
	"context"
	"testing"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregationService_MeanPerSquare(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMedia(t, "m1", models.MediaImage, 2020, 7)
	f.addMedia(t, "m2", models.MediaVideo, 2020, 7)
	f.addMedia(t, "m3", models.MediaImage, 2020, 9)
	f.addMedia(t, "other-year", models.MediaImage, 2021, 7)

	// raw = 5+3+2+2-1-1 = 10
	_, err := f.store.Submit(ctx, "alice", "m1", models.Ratings{Beauty: 5, Boring: 1, Depressing: 1, Lively: 3, Wealthy: 2, Safe: 2}, "a")
	require.NoError(t, err)
	// raw = 3+2+2+1-1-1 = 6
	_, err = f.store.Submit(ctx, "bob", "m2", models.Ratings{Beauty: 3, Boring: 1, Depressing: 1, Lively: 2, Wealthy: 2, Safe: 1}, "b")
	require.NoError(t, err)
	_, err = f.store.Submit(ctx, "bob", "other-year", goodRatings(), "c")
	require.NoError(t, err)

	got, err := NewAggregationService(f.media, f.evals).ComputeComposite(ctx, 2020)
	require.NoError(t, err)

	require.Len(t, got, 1, "squares without evaluations are omitted")
	cell, ok := got[7]
	require.True(t, ok)
	assert.Equal(t, 8.0, cell.Score)
	assert.JSONEq(t, `{"square":7}`, string(cell.Coords))
}

func TestAggregationService_IncludesDeletedMedia(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMedia(t, "m1", models.MediaImage, 2019, 3)

	_, err := f.store.Submit(ctx, "alice", "m1", goodRatings(), "ok")
	require.NoError(t, err)
	require.NoError(t, f.media.MarkDeleted(ctx, "m1"))

	got, err := NewAggregationService(f.media, f.evals).ComputeComposite(ctx, 2019)
	require.NoError(t, err)
	require.Contains(t, got, 3)
	assert.Equal(t, float64(goodRatings().Raw()), got[3].Score)
}

func TestAggregationService_UnknownYear(t *testing.T) {
	f := newFixture(t)
	f.addMedia(t, "m1", models.MediaImage, 2020, 1)

	got, err := NewAggregationService(f.media, f.evals).ComputeComposite(context.Background(), 1999)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMeanRounded(t *testing.T) {
	tests := []struct {
		sum, count int
		want       float64
	}{
		{sum: 16, count: 2, want: 8},
		{sum: 1, count: 3, want: 0.33},
		{sum: 2, count: 3, want: 0.67},
		{sum: -1, count: 3, want: -0.33},
		{sum: 1, count: 8, want: 0.13},
		{sum: -1, count: 8, want: -0.13},
		{sum: 20, count: 1, want: 20},
		{sum: -8, count: 1, want: -8},
		{sum: 0, count: 0, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MeanRounded(tt.sum, tt.count), "sum=%d count=%d", tt.sum, tt.count)
	}
}
