package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Booking struct {
	ID             string     `json:"id"`
	TrackingID     string     `json:"trackingId"`
	CustomerEmail  string     `json:"customerEmail"`
	CustomerName   string     `json:"customerName,omitempty"`
	ServiceID      string     `json:"serviceId"`
	ServiceName    string     `json:"serviceName"`
	Cost           string     `json:"cost"`
	Currency       string     `json:"currency"`
	ServiceStatus  Status     `json:"serviceStatus"`
	PaymentStatus  string     `json:"paymentStatus"`
	TransactionID  string     `json:"transactionId,omitempty"`
	DecoratorID    string     `json:"decoratorId,omitempty"`
	DecoratorName  string     `json:"decoratorName,omitempty"`
	DecoratorEmail string     `json:"decoratorEmail,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	AssignedAt     *time.Time `json:"assignedAt,omitempty"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

const bookingColumns = `
id, tracking_id, customer_email, COALESCE(customer_name,''), service_id, service_name,
cost::text, currency, service_status, payment_status, transaction_id,
decorator_id, decorator_name, decorator_email, created_at, assigned_at, updated_at
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var transactionID, decoratorID, decoratorName, decoratorEmail *string
	if err := row.Scan(
		&b.ID, &b.TrackingID, &b.CustomerEmail, &b.CustomerName, &b.ServiceID, &b.ServiceName,
		&b.Cost, &b.Currency, &b.ServiceStatus, &b.PaymentStatus, &transactionID,
		&decoratorID, &decoratorName, &decoratorEmail, &b.CreatedAt, &b.AssignedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if transactionID != nil {
		b.TransactionID = *transactionID
	}
	if decoratorID != nil {
		b.DecoratorID = *decoratorID
	}
	if decoratorName != nil {
		b.DecoratorName = *decoratorName
	}
	if decoratorEmail != nil {
		b.DecoratorEmail = *decoratorEmail
	}
	return &b, nil
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) ListByCustomer(ctx context.Context, email string) ([]Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_email = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, email)
}

// ListForAssignment backs the admin assignment screen. Empty filter values mean
// "any"; the defaults select paid bookings still waiting for a decorator.
func (r *Repository) ListForAssignment(ctx context.Context, serviceStatus, paymentStatus string) ([]Booking, error) {
	const q = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE ($1 = '' OR service_status = $1)
  AND ($2 = '' OR payment_status = $2)
ORDER BY created_at DESC
`
	return r.list(ctx, q, serviceStatus, paymentStatus)
}

func (r *Repository) ListByDecorator(ctx context.Context, decoratorEmail string) ([]Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE decorator_email = $1 ORDER BY assigned_at DESC`
	return r.list(ctx, q, decoratorEmail)
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]Booking, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

type CreateParams struct {
	TrackingID    string
	CustomerEmail string
	CustomerName  string
	ServiceID     string
	ServiceName   string
	Cost          string
	Currency      string
}

// Insert creates a booking in its initial pending/pending state. The tracking id is
// assigned here, exactly once; there is no update path for it.
func Insert(ctx context.Context, tx pgx.Tx, p CreateParams) (*Booking, error) {
	const q = `
INSERT INTO bookings (tracking_id, customer_email, customer_name, service_id, service_name, cost, currency, service_status, payment_status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + bookingColumns
	return scanBooking(tx.QueryRow(ctx, q,
		p.TrackingID, p.CustomerEmail, p.CustomerName, p.ServiceID, p.ServiceName,
		p.Cost, p.Currency, string(StatusPending), PaymentPending,
	))
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return scanBooking(tx.QueryRow(ctx, q, id))
}

// MarkPaid is the payment-confirmed transition: paymentStatus pending->paid (monotonic,
// there is no reversal path) and serviceStatus -> pending-assign, stamping the
// processor transaction id. Returns false when the booking does not exist.
func MarkPaid(ctx context.Context, tx pgx.Tx, id, transactionID string) (bool, error) {
	const q = `
UPDATE bookings
SET payment_status = $1, service_status = $2, transaction_id = $3, updated_at = NOW()
WHERE id = $4
`
	tag, err := tx.Exec(ctx, q, PaymentPaid, string(StatusPendingAssign), transactionID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next Status) (bool, error) {
	const q = `
UPDATE bookings
SET service_status = $1, updated_at = NOW()
WHERE id = $2
`
	tag, err := tx.Exec(ctx, q, string(next), id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type DecoratorBinding struct {
	ID    string
	Name  string
	Email string
}

// BindDecorator sets the decorator-binding fields, stamps assigned_at and moves the
// booking to the supplied status in one statement.
func BindDecorator(ctx context.Context, tx pgx.Tx, id string, d DecoratorBinding, next Status) (bool, error) {
	const q = `
UPDATE bookings
SET decorator_id = $1, decorator_name = $2, decorator_email = $3,
    assigned_at = NOW(), service_status = $4, updated_at = NOW()
WHERE id = $5
`
	tag, err := tx.Exec(ctx, q, d.ID, d.Name, d.Email, string(next), id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
