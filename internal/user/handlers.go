package user

import (
	"encoding/json"
	"net/http"
	"strings"

	"styledecor/internal/api"
)

type Handlers struct {
	Repo *Repository
}

type registerRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Register upserts a user record on sign-in. Safe to call repeatedly; the role is
// never downgraded by re-registration.
func (h Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid email")
		return
	}

	u, err := h.Repo.Upsert(r.Context(), email, strings.TrimSpace(req.Name))
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, u)
}
