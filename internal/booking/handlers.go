package booking

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"styledecor/internal/api"
	"styledecor/internal/decorator"
	"styledecor/internal/tracking"
	"styledecor/pkg/db"
)

type Handlers struct {
	DB         *pgxpool.Pool
	Bookings   *Repository
	Decorators *decorator.Repository
}

type createRequest struct {
	ServiceID    string `json:"serviceId"`
	ServiceName  string `json:"serviceName"`
	Cost         string `json:"cost"`
	Currency     string `json:"currency"`
	CustomerName string `json:"customerName"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	caller := api.CallerFromContext(r.Context())
	if caller == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.ServiceID == "" || req.ServiceName == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing service")
		return
	}
	cost, err := decimal.NewFromString(req.Cost)
	if err != nil || cost.LessThanOrEqual(decimal.Zero) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "cost must be a positive amount")
		return
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	var created *Booking
	// The 4-byte suffix can collide within a day; regenerate and retry instead of
	// failing the customer.
	for attempt := 0; attempt < 3; attempt++ {
		trackingID, err := NewTrackingID(time.Now())
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
			return
		}

		err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
			b, err := Insert(r.Context(), tx, CreateParams{
				TrackingID:    trackingID,
				CustomerEmail: caller.Email,
				CustomerName:  strings.TrimSpace(req.CustomerName),
				ServiceID:     req.ServiceID,
				ServiceName:   req.ServiceName,
				Cost:          cost.StringFixed(2),
				Currency:      currency,
			})
			if err != nil {
				return err
			}
			created = b

			_, err = tracking.LogEvent(r.Context(), tx, b.TrackingID, "booking-Placed", "")
			return err
		})
		if err == nil {
			break
		}
		if db.IsUniqueViolation(err) {
			continue
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if created == nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, created)
}

func (h Handlers) Mine(w http.ResponseWriter, r *http.Request) {
	caller := api.CallerFromContext(r.Context())
	if caller == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return
	}

	items, err := h.Bookings.ListByCustomer(r.Context(), caller.Email)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Booking{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// ListForAssignment backs the admin assignment screen. Without explicit filters it
// shows paid bookings waiting for a decorator.
func (h Handlers) ListForAssignment(w http.ResponseWriter, r *http.Request) {
	serviceStatus := r.URL.Query().Get("serviceStatus")
	paymentStatus := r.URL.Query().Get("paymentStatus")
	if serviceStatus == "" && paymentStatus == "" {
		serviceStatus = string(StatusPendingAssign)
		paymentStatus = PaymentPaid
	}
	if serviceStatus != "" {
		if _, err := ParseStatus(serviceStatus); err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid serviceStatus")
			return
		}
	}

	items, err := h.Bookings.ListForAssignment(r.Context(), serviceStatus, paymentStatus)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Booking{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Assigned(w http.ResponseWriter, r *http.Request) {
	caller := api.CallerFromContext(r.Context())
	if caller == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return
	}

	items, err := h.Bookings.ListByDecorator(r.Context(), caller.Email)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Booking{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type patchStatusRequest struct {
	Status      string `json:"status"`
	DecoratorID string `json:"decoratorId,omitempty"`
	Details     string `json:"details,omitempty"`
}

// PatchStatus is the admin transition: assigning a decorator and/or moving the
// booking to a new status. Every target is checked against the transition table;
// there is no admin bypass.
func (h Handlers) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	next, err := ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	var binding *DecoratorBinding
	if req.DecoratorID != "" {
		d, err := h.Decorators.GetByID(r.Context(), req.DecoratorID)
		if err != nil {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "decorator not found")
			return
		}
		if d.Status != "approved" {
			api.WriteError(w, http.StatusConflict, "DECORATOR_NOT_APPROVED", "decorator is not approved")
			return
		}
		binding = &DecoratorBinding{ID: d.ID, Name: d.Name, Email: d.Email}
	} else if next == StatusDecoratorAssigned {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "decoratorId is required for assignment")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if !CanTransition(b.ServiceStatus, next) {
			api.WriteError(w, http.StatusConflict, "INVALID_STATE_TRANSITION", "invalid state transition")
			return pgx.ErrTxCommitRollback
		}

		if binding != nil {
			if _, err := BindDecorator(r.Context(), tx, b.ID, *binding, next); err != nil {
				return err
			}
		} else {
			if _, err := UpdateStatus(r.Context(), tx, b.ID, next); err != nil {
				return err
			}
		}

		_, err = tracking.LogEvent(r.Context(), tx, b.TrackingID, string(next), req.Details)
		return err
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type decoratorStatusRequest struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// PatchDecoratorStatus is the decorator's self-service transition (accept, start
// work, complete). It is scoped to the decorator's own bookings: the caller's email
// must match the booking's decorator binding before anything is written.
func (h Handlers) PatchDecoratorStatus(w http.ResponseWriter, r *http.Request) {
	caller := api.CallerFromContext(r.Context())
	if caller == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req decoratorStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	next, err := ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if b.DecoratorEmail == "" || b.DecoratorEmail != caller.Email {
			api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "booking is not assigned to caller")
			return pgx.ErrTxCommitRollback
		}

		if !CanTransition(b.ServiceStatus, next) {
			api.WriteError(w, http.StatusConflict, "INVALID_STATE_TRANSITION", "invalid state transition")
			return pgx.ErrTxCommitRollback
		}

		if _, err := UpdateStatus(r.Context(), tx, b.ID, next); err != nil {
			return err
		}

		_, err = tracking.LogEvent(r.Context(), tx, b.TrackingID, string(next), req.Details)
		return err
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
