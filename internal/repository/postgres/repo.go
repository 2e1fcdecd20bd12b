package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medplast/consult-console/internal/infra"
)

// ConsoleRepo — единая точка доступа консоли к PostgreSQL.
// Методы по доменам разнесены по файлам: request_repo, catalog_repo,
// admin_repo, stats_repo.
type ConsoleRepo struct {
	pool *pgxpool.Pool
}

// NewConsoleRepo создает пул соединений по настройкам из конфига.
func NewConsoleRepo(ctx context.Context, cfg infra.DatabaseConfig) (*ConsoleRepo, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid connection string: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	return &ConsoleRepo{pool: pool}, nil
}

// Ping проверяет доступность базы при старте
func (r *ConsoleRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close освобождает пул. Вызывается при graceful shutdown.
func (r *ConsoleRepo) Close() {
	r.pool.Close()
}
