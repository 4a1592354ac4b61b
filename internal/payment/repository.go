package payment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// Record is the durable outcome of one confirmed payment transaction. At most one
// exists per processor transaction id, enforced by UNIQUE(transaction_id).
type Record struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transactionId"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	CustomerEmail string    `json:"customerEmail"`
	BookingID     string    `json:"bookingId"`
	TrackingID    string    `json:"trackingId"`
	PaidAt        time.Time `json:"paidAt"`
}

type InsertParams struct {
	TransactionID string
	Amount        string
	Currency      string
	CustomerEmail string
	BookingID     string
	TrackingID    string
}

// InsertRecord appends a payment record. A duplicate transaction id comes back as
// (nil, nil): the constraint, not a prior read, is the idempotence signal, so two
// concurrent confirmations of the same transaction cannot both insert.
func InsertRecord(ctx context.Context, tx pgx.Tx, p InsertParams) (*Record, error) {
	const q = `
INSERT INTO payments (transaction_id, amount, currency, customer_email, booking_id, tracking_id, paid_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
ON CONFLICT (transaction_id) DO NOTHING
RETURNING id, transaction_id, amount::text, currency, customer_email, booking_id, tracking_id, paid_at
`
	var rec Record
	err := tx.QueryRow(ctx, q,
		p.TransactionID, p.Amount, p.Currency, p.CustomerEmail, p.BookingID, p.TrackingID,
	).Scan(
		&rec.ID, &rec.TransactionID, &rec.Amount, &rec.Currency, &rec.CustomerEmail, &rec.BookingID, &rec.TrackingID, &rec.PaidAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindByTransactionID returns the previously stored record for a transaction, used
// to answer a repeated confirmation with the original result.
func FindByTransactionID(ctx context.Context, tx pgx.Tx, transactionID string) (*Record, error) {
	const q = `
SELECT id, transaction_id, amount::text, currency, customer_email, booking_id, tracking_id, paid_at
FROM payments
WHERE transaction_id = $1
`
	var rec Record
	if err := tx.QueryRow(ctx, q, transactionID).Scan(
		&rec.ID, &rec.TransactionID, &rec.Amount, &rec.Currency, &rec.CustomerEmail, &rec.BookingID, &rec.TrackingID, &rec.PaidAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}
