package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"styledecor/internal/api"
	"styledecor/internal/booking"
	"styledecor/internal/tracking"
	"styledecor/pkg/checkout"
	"styledecor/pkg/config"
	"styledecor/pkg/db"
)

type Handlers struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Bookings *booking.Repository
	Checkout checkout.Client
}

type checkoutSessionRequest struct {
	BookingID string `json:"bookingId"`
}

// CreateCheckoutSession opens a hosted checkout session for the caller's own
// booking. The booking and tracking ids travel as session metadata; reconciliation
// reads them back from the processor, so no separate session-to-booking mapping is
// stored.
func (h Handlers) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	caller := api.CallerFromContext(r.Context())
	if caller == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return
	}

	var req checkoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.BookingID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing bookingId")
		return
	}

	b, err := h.Bookings.GetByID(r.Context(), req.BookingID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}
	if b.CustomerEmail != caller.Email {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "booking belongs to another customer")
		return
	}
	if b.PaymentStatus == booking.PaymentPaid {
		api.WriteError(w, http.StatusConflict, "ALREADY_PAID", "booking is already paid")
		return
	}

	s, err := h.Checkout.CreateSession(r.Context(), uuid.NewString(), checkout.CreateSessionParams{
		Amount:        b.Cost,
		Currency:      b.Currency,
		CustomerEmail: b.CustomerEmail,
		ProductName:   b.ServiceName,
		SuccessURL:    h.Cfg.PublicBaseURL + h.Cfg.Checkout.SuccessPath,
		CancelURL:     h.Cfg.PublicBaseURL + h.Cfg.Checkout.CancelPath,
		Metadata: map[string]string{
			"bookingId":  b.ID,
			"trackingId": b.TrackingID,
		},
	})
	if err != nil {
		if h.Cfg.AppEnv != "prod" {
			log.Printf("checkout session create failed booking=%s err=%v", b.ID, err)
		}
		api.WriteError(w, http.StatusBadGateway, "UPSTREAM_FAILED", "payment processor unavailable")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"sessionId": s.ID, "url": s.URL})
}

// ConfirmSuccess reconciles a checkout session after the processor redirects the
// customer back. The session id is the only input; everything else comes from the
// processor's canonical session state. Safe to invoke any number of times for the
// same transaction (browser back-button, processor retry): the first call applies
// the booking mutation, later calls return the stored result.
func (h Handlers) ConfirmSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing session_id")
		return
	}

	s, err := h.Checkout.RetrieveSession(r.Context(), sessionID)
	if err != nil {
		if h.Cfg.AppEnv != "prod" {
			log.Printf("checkout session retrieve failed session=%s err=%v", sessionID, err)
		}
		api.WriteError(w, http.StatusBadGateway, "UPSTREAM_FAILED", "payment processor unavailable")
		return
	}

	if !s.Paid() {
		api.WriteError(w, http.StatusConflict, "SESSION_NOT_PAID", "session is not paid")
		return
	}
	if s.PaymentIntent == "" {
		api.WriteError(w, http.StatusUnprocessableEntity, "SESSION_INVALID", "session has no transaction id")
		return
	}

	bookingID, trackingID, err := sessionRefs(s)
	if err != nil {
		api.WriteError(w, http.StatusUnprocessableEntity, "SESSION_METADATA_MISSING", err.Error())
		return
	}

	amount, err := decimal.NewFromString(s.AmountTotal)
	if err != nil {
		api.WriteError(w, http.StatusUnprocessableEntity, "SESSION_INVALID", "invalid session amount")
		return
	}

	// Booking update, payment record and tracking event commit or roll back together;
	// a crash mid-way cannot leave a paid booking without its payment record.
	var resp map[string]any
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := booking.GetForUpdate(r.Context(), tx, bookingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
				return pgx.ErrTxCommitRollback
			}
			return err
		}

		// The transaction-id gate below only catches repeats of the same session.
		// A booking paid through one session can still see a stale success URL from
		// another (two tabs, each with its own transaction id); the row lock plus
		// this check keeps a late confirmation from rewinding the lifecycle.
		if alreadyReconciled(b) {
			resp = map[string]any{
				"result":        "already exists",
				"trackingId":    b.TrackingID,
				"transactionId": b.TransactionID,
			}
			return nil
		}

		rec, err := InsertRecord(r.Context(), tx, InsertParams{
			TransactionID: s.PaymentIntent,
			Amount:        amount.StringFixed(2),
			Currency:      currencyOrDefault(s.Currency),
			CustomerEmail: s.CustomerEmail,
			BookingID:     bookingID,
			TrackingID:    trackingID,
		})
		if err != nil {
			return err
		}
		if rec == nil {
			// Transaction already recorded: answer with the original result and touch
			// nothing else.
			prior, err := FindByTransactionID(r.Context(), tx, s.PaymentIntent)
			if err != nil {
				return err
			}
			resp = map[string]any{
				"result":        "already exists",
				"trackingId":    prior.TrackingID,
				"transactionId": prior.TransactionID,
			}
			return nil
		}

		if _, err := booking.MarkPaid(r.Context(), tx, b.ID, s.PaymentIntent); err != nil {
			return err
		}

		if _, err := tracking.LogEvent(r.Context(), tx, trackingID, "booking-paid", ""); err != nil {
			return err
		}

		resp = map[string]any{
			"result":        "success",
			"trackingId":    trackingID,
			"transactionId": rec.TransactionID,
			"payment":       rec,
		}
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		if h.Cfg.AppEnv != "prod" {
			log.Printf("payment reconcile failed session=%s err=%v", sessionID, err)
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, resp)
}

// alreadyReconciled reports whether a paid session must not be applied to the
// booking: it is already paid, or its lifecycle has moved past the point where
// payment confirmation is a legal transition. Confirmations arriving after this
// answer with the stored result instead of rewinding the booking.
func alreadyReconciled(b *booking.Booking) bool {
	return b.PaymentStatus == booking.PaymentPaid ||
		!booking.CanTransition(b.ServiceStatus, booking.StatusPendingAssign)
}

// sessionRefs extracts the booking correlation attached at session-creation time.
// A paid session that cannot be correlated must not mutate anything.
func sessionRefs(s *checkout.Session) (bookingID, trackingID string, err error) {
	bookingID = strings.TrimSpace(s.Metadata["bookingId"])
	trackingID = strings.TrimSpace(s.Metadata["trackingId"])
	switch {
	case bookingID == "" && trackingID == "":
		return "", "", fmt.Errorf("session metadata has no bookingId or trackingId")
	case bookingID == "":
		return "", "", fmt.Errorf("session metadata has no bookingId")
	case trackingID == "":
		return "", "", fmt.Errorf("session metadata has no trackingId")
	}
	return bookingID, trackingID, nil
}

func currencyOrDefault(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return "USD"
	}
	return c
}
