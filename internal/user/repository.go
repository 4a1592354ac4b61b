package user

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"styledecor/internal/api"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Upsert registers a user on first sign-in. New users always start as "user";
// admin and decorator capabilities are granted elsewhere, so the conflict branch
// must not touch the role.
func (r *Repository) Upsert(ctx context.Context, email, name string) (*User, error) {
	const q = `
INSERT INTO users (email, name, role)
VALUES ($1, $2, 'user')
ON CONFLICT (email) DO UPDATE SET
  name = EXCLUDED.name
RETURNING id, email, COALESCE(name,''), role, created_at
`
	u := &User{}
	if err := r.db.QueryRow(ctx, q, email, name).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
SELECT id, email, COALESCE(name,''), role, created_at
FROM users
WHERE email = $1
`
	u := &User{}
	if err := r.db.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

// FindCaller satisfies api.CallerSource for the auth middleware.
func (r *Repository) FindCaller(ctx context.Context, email string) (*api.Caller, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &api.Caller{ID: u.ID, Email: u.Email, Role: u.Role}, nil
}
