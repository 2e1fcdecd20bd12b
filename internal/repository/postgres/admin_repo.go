package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/medplast/consult-console/internal/domain"
)

func (r *ConsoleRepo) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `
		SELECT id, email, username, password_hash, role, scopes, created_at, updated_at
		FROM admins WHERE username = $1`

	a := &domain.Admin{}
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.Role, &a.Scopes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *ConsoleRepo) CreateAdmin(ctx context.Context, a *domain.Admin) error {
	query := `
		INSERT INTO admins (id, email, username, password_hash, role, scopes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Email, a.Username, a.PasswordHash, a.Role, a.Scopes, a.CreatedAt, a.UpdatedAt,
	)
	return err
}
