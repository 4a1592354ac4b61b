package tracking

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ListByTrackingID returns a booking's full status history, oldest first. Backs the
// public track-by-id lookup and the admin/decorator dashboards.
func ListByTrackingID(ctx context.Context, db *pgxpool.Pool, trackingID string) ([]Event, error) {
	const q = `
SELECT id, tracking_id, status, details, created_at
FROM trackings
WHERE tracking_id = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := db.Query(ctx, q, trackingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.TrackingID, &e.Status, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
