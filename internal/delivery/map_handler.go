package delivery

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/Vovarama1992/ambiance/internal/domain"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
)

type MapHandler struct {
	agg ports.Aggregator
	log *logger.ZapLogger
}

func NewMapHandler(agg ports.Aggregator, log *logger.ZapLogger) *MapHandler {
	return &MapHandler{agg: agg, log: log}
}

type compositeRow struct {
	SquareIndex int             `json:"square_index"`
	Score       float64         `json:"score"`
	Coords      json.RawMessage `json:"coords"`
}

// GET /api/map/composite/{year}
// Response: {"<year>": [{square_index, score, coords}, ...]} sorted by square.
func (h *MapHandler) Composite(w http.ResponseWriter, r *http.Request) {
	if err := domain.Authorize(IdentityFrom(r.Context()), domain.IsAdminOrChercheur); err != nil {
		writeError(w, h.log, err)
		return
	}

	yearStr := chi.URLParam(r, "year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation_error", Message: "year must be an integer"})
		return
	}

	cells, err := h.agg.ComputeComposite(r.Context(), year)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	rows := make([]compositeRow, 0, len(cells))
	for sq, c := range cells {
		coords := c.Coords
		if len(coords) == 0 {
			coords = json.RawMessage("null")
		}
		rows = append(rows, compositeRow{SquareIndex: sq, Score: c.Score, Coords: coords})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SquareIndex < rows[j].SquareIndex })

	writeJSON(w, http.StatusOK, map[string][]compositeRow{strconv.Itoa(year): rows})
}
