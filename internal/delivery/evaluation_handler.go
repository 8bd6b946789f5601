package delivery

import (
	"context"
	"net/http"

	"github.com/Vovarama1992/ambiance/internal/domain"
	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

const exportFilename = "evaluations.json"

type EvaluationHandler struct {
	store   ports.EvaluationStore
	catalog ports.Catalog
	log     *logger.ZapLogger
}

func NewEvaluationHandler(store ports.EvaluationStore, catalog ports.Catalog, log *logger.ZapLogger) *EvaluationHandler {
	return &EvaluationHandler{
		store:   store,
		catalog: catalog,
		log:     log,
	}
}

type submitRequest struct {
	models.Ratings
	Comment string `json:"comment"`
}

type mediaRef struct {
	ID   string           `json:"id"`
	Type models.MediaType `json:"media_type"`
	URL  string           `json:"url"`
}

type historyRow struct {
	models.Evaluation
	Media *mediaRef `json:"media"`
}

type mediaInfo struct {
	Year  int              `json:"year"`
	Place string           `json:"place"`
	Type  models.MediaType `json:"type"`
	URL   string           `json:"url"`
}

type adminRow struct {
	models.Evaluation
	MediaInfo *mediaInfo `json:"media_info"`
}

// POST /api/media/{mediaID}/evaluations
func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	if err := domain.Authorize(id, domain.IsEvaluator); err != nil {
		writeError(w, h.log, err)
		return
	}

	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	mediaID := chi.URLParam(r, "mediaID")
	evalID, err := h.store.Submit(r.Context(), id.EvaluatorID, mediaID, req.Ratings, req.Comment)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "evaluation recorded",
		Fields: map[string]any{
			"evaluationID": evalID,
			"evaluatorID":  id.EvaluatorID,
			"mediaID":      mediaID,
		},
	})

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      evalID,
		"message": "evaluation recorded",
	})
}

// PATCH /api/evaluations/{evaluationID}
func (h *EvaluationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	if err := domain.Authorize(id, domain.IsAuthenticated); err != nil {
		writeError(w, h.log, err)
		return
	}

	var patch models.EvaluationPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, h.log, err)
		return
	}

	updated, err := h.store.Update(r.Context(), chi.URLParam(r, "evaluationID"), id.EvaluatorID, patch)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// GET /api/evaluations/history
func (h *EvaluationHandler) History(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	if err := domain.Authorize(id, domain.IsEvaluator); err != nil {
		writeError(w, h.log, err)
		return
	}

	evals, err := h.store.ListByEvaluator(r.Context(), id.EvaluatorID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	media, err := h.mediaIndex(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	rows := make([]historyRow, 0, len(evals))
	for _, e := range evals {
		row := historyRow{Evaluation: e}
		if m, ok := media[e.MediaID]; ok {
			row.Media = &mediaRef{ID: m.ID, Type: m.Type, URL: m.URL}
		}
		rows = append(rows, row)
	}

	writeJSON(w, http.StatusOK, rows)
}

// GET /api/evaluations[?download=true]
func (h *EvaluationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	if err := domain.Authorize(IdentityFrom(r.Context()), domain.IsAdminOrChercheur); err != nil {
		writeError(w, h.log, err)
		return
	}

	evals, err := h.store.ListAll(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	media, err := h.mediaIndex(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	rows := make([]adminRow, 0, len(evals))
	for _, e := range evals {
		row := adminRow{Evaluation: e}
		if m, ok := media[e.MediaID]; ok {
			row.MediaInfo = &mediaInfo{Year: m.Year, Place: m.Place, Type: m.Type, URL: m.URL}
		}
		rows = append(rows, row)
	}

	if r.URL.Query().Get("download") != "true" {
		writeJSON(w, http.StatusOK, rows)
		return
	}

	body, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "evaluations exported",
		Fields:  map[string]any{"rows": len(rows), "bytes": len(body)},
	})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *EvaluationHandler) mediaIndex(ctx context.Context) (map[string]models.MediaItem, error) {
	items, err := h.catalog.Query(ctx, models.MediaFilter{IncludeDeleted: true})
	if err != nil {
		return nil, err
	}
	idx := make(map[string]models.MediaItem, len(items))
	for _, m := range items {
		idx[m.ID] = m
	}
	return idx, nil
}
