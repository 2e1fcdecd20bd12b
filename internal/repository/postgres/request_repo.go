package postgres

/*
Файл request_repo.go содержит выборки и обновления заявок на консультацию.
*/

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/medplast/consult-console/internal/domain"
)

// GetRequestByID получение деталей заявки вместе с данными пациента и услуги.
func (r *ConsoleRepo) GetRequestByID(ctx context.Context, id int64) (*domain.ConsultationRequest, error) {
	query := `
		SELECT cr.id, cr.patient_id, cr.service_id, cr.name, cr.phone,
		       cr.preferred_date, cr.comment, cr.status, cr.created_at, cr.updated_at,
		       COALESCE(p.first_name, ''), COALESCE(p.phone, ''), COALESCE(s.name, '')
		FROM consultation_requests cr
		LEFT JOIN patients p ON p.id = cr.patient_id
		LEFT JOIN services s ON s.id = cr.service_id
		WHERE cr.id = $1`

	row := r.pool.QueryRow(ctx, query, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("postgres: failed to fetch request: %w", err)
	}
	return req, nil
}

// FindRequests фильтрация и выборка списка заявок, свежие сверху.
// Пустой status означает "без фильтра".
func (r *ConsoleRepo) FindRequests(ctx context.Context, status domain.RequestStatus) ([]*domain.ConsultationRequest, error) {
	query := `
		SELECT cr.id, cr.patient_id, cr.service_id, cr.name, cr.phone,
		       cr.preferred_date, cr.comment, cr.status, cr.created_at, cr.updated_at,
		       COALESCE(p.first_name, ''), COALESCE(p.phone, ''), COALESCE(s.name, '')
		FROM consultation_requests cr
		LEFT JOIN patients p ON p.id = cr.patient_id
		LEFT JOIN services s ON s.id = cr.service_id`

	var args []interface{}
	if status != "" {
		query += " WHERE cr.status = $1"
		args = append(args, status)
	}

	query += " ORDER BY cr.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query requests: %w", err)
	}
	defer rows.Close()

	// Инициализируем пустой слайс, чтобы в JSON был [] вместо null
	results := make([]*domain.ConsultationRequest, 0)

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan request: %w", err)
		}
		results = append(results, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows iteration error: %w", err)
	}

	return results, nil
}

// UpdateRequestStatus обновляет статус заявки.
// Возвращает domain.ErrRequestNotFound, если заявки с таким ID нет.
func (r *ConsoleRepo) UpdateRequestStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	query := `UPDATE consultation_requests SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// rowScanner покрывает и pgx.Row, и pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*domain.ConsultationRequest, error) {
	var req domain.ConsultationRequest
	var preferred sql.NullTime
	var comment sql.NullString

	err := row.Scan(
		&req.ID,
		&req.PatientID,
		&req.ServiceID,
		&req.Name,
		&req.Phone,
		&preferred,
		&comment,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.PatientName,
		&req.PatientPhone,
		&req.ServiceName,
	)
	if err != nil {
		return nil, err
	}

	// Маппим NULL значения (если есть)
	if preferred.Valid {
		val := preferred.Time
		req.PreferredDate = &val
	}
	if comment.Valid {
		req.Comment = comment.String
	}

	return &req, nil
}
