package tracking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"styledecor/internal/api"
)

type Handlers struct {
	DB *pgxpool.Pool
}

// Track is the public track-by-id lookup. No auth: the tracking id itself is the
// shared secret. Unknown ids return an empty history rather than 404, so the
// endpoint does not confirm which ids exist.
func (h Handlers) Track(w http.ResponseWriter, r *http.Request) {
	trackingID := chi.URLParam(r, "trackingId")
	if trackingID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing trackingId")
		return
	}

	evs, err := ListByTrackingID(r.Context(), h.DB, trackingID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if evs == nil {
		evs = []Event{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"trackingId": trackingID, "items": evs})
}
