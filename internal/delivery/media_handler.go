package delivery

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/ambiance/internal/domain"
	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
)

type MediaHandler struct {
	catalog  ports.Catalog
	assigner ports.Assigner
	log      *logger.ZapLogger
}

func NewMediaHandler(catalog ports.Catalog, assigner ports.Assigner, log *logger.ZapLogger) *MediaHandler {
	return &MediaHandler{
		catalog:  catalog,
		assigner: assigner,
		log:      log,
	}
}

// GET /api/media/random/{mediaType}
func (h *MediaHandler) GetRandom(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	if err := domain.Authorize(id, domain.IsEvaluator); err != nil {
		writeError(w, h.log, err)
		return
	}

	mediaType := models.MediaType(chi.URLParam(r, "mediaType"))
	item, err := h.assigner.GetNextUnseen(r.Context(), id.EvaluatorID, mediaType)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// GET /api/media?type=&year=&square=&include_deleted=
func (h *MediaHandler) Query(w http.ResponseWriter, r *http.Request) {
	if err := domain.Authorize(IdentityFrom(r.Context()), domain.IsAdmin); err != nil {
		writeError(w, h.log, err)
		return
	}

	q := r.URL.Query()
	f := models.MediaFilter{
		Type:           models.MediaType(q.Get("type")),
		IncludeDeleted: q.Get("include_deleted") == "true",
	}

	var err error
	if f.Year, err = optionalInt(q.Get("year"), "year"); err != nil {
		writeError(w, h.log, err)
		return
	}
	if f.SquareIndex, err = optionalInt(q.Get("square"), "square"); err != nil {
		writeError(w, h.log, err)
		return
	}

	items, err := h.catalog.Query(r.Context(), f)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if items == nil {
		items = []models.MediaItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

// GET /api/media/{mediaID}
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	if err := domain.Authorize(IdentityFrom(r.Context()), domain.IsAdmin); err != nil {
		writeError(w, h.log, err)
		return
	}

	item, err := h.catalog.Get(r.Context(), chi.URLParam(r, "mediaID"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DELETE /api/media/{mediaID}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := domain.Authorize(IdentityFrom(r.Context()), domain.IsAdmin); err != nil {
		writeError(w, h.log, err)
		return
	}

	mediaID := chi.URLParam(r, "mediaID")
	if err := h.catalog.MarkDeleted(r.Context(), mediaID); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func optionalInt(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", ports.ErrValidation, name)
	}
	return &v, nil
}
