package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/medplast/consult-console/internal/domain"
)

// ListServices возвращает каталог услуг, отсортированный по имени.
func (r *ConsoleRepo) ListServices(ctx context.Context) ([]*domain.Service, error) {
	query := `
		SELECT id, name, description, indications, methods, duration,
		       recovery, price_range, source_url, created_at, updated_at
		FROM services ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query services: %w", err)
	}
	defer rows.Close()

	results := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan service: %w", err)
		}
		results = append(results, svc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows iteration error: %w", err)
	}
	return results, nil
}

// GetServiceByID возвращает карточку услуги или domain.ErrServiceNotFound.
func (r *ConsoleRepo) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	query := `
		SELECT id, name, description, indications, methods, duration,
		       recovery, price_range, source_url, created_at, updated_at
		FROM services WHERE id = $1`

	svc, err := scanService(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("postgres: failed to fetch service: %w", err)
	}
	return svc, nil
}

// CreateService добавляет услугу (результат парсинга сайта или ручной ввод).
func (r *ConsoleRepo) CreateService(ctx context.Context, svc *domain.Service) (int64, error) {
	query := `
		INSERT INTO services (name, description, indications, methods, duration, recovery, price_range, source_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		svc.Name, svc.Description, svc.Indications, svc.Methods,
		svc.Duration, svc.Recovery, svc.PriceRange, svc.SourceURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to create service: %w", err)
	}
	return id, nil
}

// UpdateService применяет частичное обновление карточки услуги.
// COALESCE оставляет прежнее значение для не переданных полей.
func (r *ConsoleRepo) UpdateService(ctx context.Context, id int64, upd domain.ServiceUpdate) error {
	query := `
		UPDATE services SET
			name        = COALESCE($1, name),
			description = COALESCE($2, description),
			indications = COALESCE($3, indications),
			methods     = COALESCE($4, methods),
			duration    = COALESCE($5, duration),
			recovery    = COALESCE($6, recovery),
			price_range = COALESCE($7, price_range),
			updated_at  = NOW()
		WHERE id = $8`

	tag, err := r.pool.Exec(ctx, query,
		upd.Name, upd.Description, upd.Indications, upd.Methods,
		upd.Duration, upd.Recovery, upd.PriceRange, id,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

// CountServices нужен посеву каталога: парсим сайт только на пустой базе.
func (r *ConsoleRepo) CountServices(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to count services: %w", err)
	}
	return count, nil
}

func scanService(row rowScanner) (*domain.Service, error) {
	var svc domain.Service
	var description, indications, methods, duration, recovery, priceRange, sourceURL sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&svc.ID, &svc.Name, &description, &indications, &methods,
		&duration, &recovery, &priceRange, &sourceURL,
		&svc.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	svc.Description = description.String
	svc.Indications = indications.String
	svc.Methods = methods.String
	svc.Duration = duration.String
	svc.Recovery = recovery.String
	svc.PriceRange = priceRange.String
	svc.SourceURL = sourceURL.String
	if updatedAt.Valid {
		val := updatedAt.Time
		svc.UpdatedAt = &val
	}

	return &svc, nil
}
