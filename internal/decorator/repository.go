package decorator

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Decorator is the applicant record owned by the decorator-application flow.
// The booking core only consumes it: candidates for assignment must be approved
// and available.
type Decorator struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	WorkStatus string    `json:"workStatus"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListAssignable(ctx context.Context) ([]Decorator, error) {
	const q = `
SELECT id, name, email, status, work_status, created_at
FROM decorators
WHERE status = 'approved' AND work_status = 'available'
ORDER BY name ASC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Decorator
	for rows.Next() {
		var d Decorator
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Status, &d.WorkStatus, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Decorator, error) {
	const q = `
SELECT id, name, email, status, work_status, created_at
FROM decorators
WHERE id = $1
`
	var d Decorator
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&d.ID, &d.Name, &d.Email, &d.Status, &d.WorkStatus, &d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
