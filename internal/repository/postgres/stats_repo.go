package postgres

import (
	"context"
	"fmt"

	"github.com/medplast/consult-console/internal/domain"
)

// GetDashboardSummary собирает сводку для главной страницы консоли.
func (r *ConsoleRepo) GetDashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	d := &domain.DashboardSummary{
		StatusCounts: make(map[domain.RequestStatus]int64),
	}

	// 1. Общие счетчики
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM patients),
			(SELECT COUNT(*) FROM consultation_requests)`,
	).Scan(&d.TotalPatients, &d.TotalRequests)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to fetch totals: %w", err)
	}

	// 2. Распределение по статусам
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*) FROM consultation_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to fetch status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.RequestStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan status count: %w", err)
		}
		d.StatusCounts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows iteration error: %w", err)
	}

	// 3. Последние новые заявки для блока "требуют внимания"
	recent, err := r.FindRequests(ctx, domain.StatusNew)
	if err != nil {
		return nil, err
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}
	d.RecentRequests = recent

	return d, nil
}

// GetRequestStats возвращает динамику заявок по дням с начала месяца
// и распределение по статусам (для графиков в админке).
func (r *ConsoleRepo) GetRequestStats(ctx context.Context) (*domain.RequestStats, error) {
	stats := &domain.RequestStats{
		Daily:  make([]domain.DailyCount, 0),
		Status: make(map[domain.RequestStatus]int64),
	}

	rows, err := r.pool.Query(ctx, `
		SELECT to_char(created_at::date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM consultation_requests
		WHERE created_at >= date_trunc('month', NOW())
		GROUP BY day ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to fetch daily stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dc domain.DailyCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan daily count: %w", err)
		}
		stats.Daily = append(stats.Daily, dc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows iteration error: %w", err)
	}

	statusRows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*) FROM consultation_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to fetch status stats: %w", err)
	}
	defer statusRows.Close()

	for statusRows.Next() {
		var status domain.RequestStatus
		var count int64
		if err := statusRows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan status stat: %w", err)
		}
		stats.Status[status] = count
	}
	if err = statusRows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows iteration error: %w", err)
	}

	return stats, nil
}
