package tracking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type Event struct {
	ID         string    `json:"id"`
	TrackingID string    `json:"trackingId"`
	Status     string    `json:"status"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LogEvent appends a status event to the ledger, at most once per
// (trackingId, status) pair over the booking's lifetime.
//
// Dedup rides on the UNIQUE(tracking_id, status) constraint: ON CONFLICT DO NOTHING
// returns no row for a duplicate, which comes back as (nil, nil), the no-op signal.
// Unlike a check-then-insert, two concurrent calls cannot both win.
func LogEvent(ctx context.Context, tx pgx.Tx, trackingID, status, details string) (*Event, error) {
	if details == "" {
		details = defaultDetails(status)
	}

	const q = `
INSERT INTO trackings (tracking_id, status, details)
VALUES ($1, $2, $3)
ON CONFLICT (tracking_id, status) DO NOTHING
RETURNING id, tracking_id, status, details, created_at
`
	var e Event
	err := tx.QueryRow(ctx, q, trackingID, status, details).Scan(
		&e.ID, &e.TrackingID, &e.Status, &e.Details, &e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// Already logged.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// defaultDetails derives a readable label from a status when the caller supplies no
// details: separators become spaces, so "booking-paid" reads "booking paid" and
// "Decorator_Assigned" reads "Decorator Assigned".
func defaultDetails(status string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(status)
}
