package decorator

import (
	"net/http"

	"styledecor/internal/api"
)

type Handlers struct {
	Repo *Repository
}

// ListAvailable backs the admin assignment screen: approved applicants currently
// marked available. Availability is a point-in-time read; it is not re-verified at
// assignment time.
func (h Handlers) ListAvailable(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListAssignable(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Decorator{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
