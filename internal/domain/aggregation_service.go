package domain

import (
	"context"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
)

// AggregationService derives per-square ambiance scores. It is read-only.
// Ratings of soft-deleted media are included.
type AggregationService struct {
	media ports.MediaRepository
	evals ports.EvaluationRepository
}

func NewAggregationService(media ports.MediaRepository, evals ports.EvaluationRepository) *AggregationService {
	return &AggregationService{media: media, evals: evals}
}

type squareTally struct {
	sum   int
	count int
}

func (a *AggregationService) ComputeComposite(ctx context.Context, year int) (models.CompositeMap, error) {
	items, err := a.media.QueryMedia(ctx, models.MediaFilter{Year: &year, IncludeDeleted: true})
	if err != nil {
		return nil, err
	}

	squareOf := make(map[string]int, len(items))
	coords := make(map[int]models.CompositeCell)
	for _, m := range items {
		squareOf[m.ID] = m.SquareIndex
		if _, ok := coords[m.SquareIndex]; !ok {
			coords[m.SquareIndex] = models.CompositeCell{Coords: m.Coords}
		}
	}

	evals, err := a.evals.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	tallies := make(map[int]*squareTally)
	for _, e := range evals {
		sq, ok := squareOf[e.MediaID]
		if !ok {
			continue
		}
		t := tallies[sq]
		if t == nil {
			t = &squareTally{}
			tallies[sq] = t
		}
		t.sum += e.Raw()
		t.count++
	}

	out := make(models.CompositeMap, len(tallies))
	for sq, t := range tallies {
		cell := coords[sq]
		cell.Score = MeanRounded(t.sum, t.count)
		out[sq] = cell
	}
	return out, nil
}

// MeanRounded returns sum/count rounded to two decimals, half away from zero.
// The rounding is done on integers so x.xx5 boundaries are exact.
func MeanRounded(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	num := int64(sum) * 100
	den := int64(count)

	var hundredths int64
	if num >= 0 {
		hundredths = (2*num + den) / (2 * den)
	} else {
		hundredths = -((-2*num + den) / (2 * den))
	}
	return float64(hundredths) / 100
}
