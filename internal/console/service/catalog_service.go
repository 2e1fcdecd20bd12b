package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/medplast/consult-console/internal/domain"
	"github.com/medplast/consult-console/internal/infra"
	"go.uber.org/zap"
)

// CatalogRepository описывает контракт хранилища каталога услуг.
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	UpdateService(ctx context.Context, id int64, upd domain.ServiceUpdate) error
}

type CatalogService struct {
	repo   CatalogRepository
	rdb    SignalBus
	logger *zap.Logger
}

func NewCatalogService(rdb SignalBus, repo CatalogRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		rdb:    rdb,
		logger: logger.Named("catalog-service"),
	}
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*domain.Service, error) {
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		s.logger.Error("failed to list services", zap.Error(err))
		return nil, fmt.Errorf("service: could not fetch catalog: %w", err)
	}
	if services == nil {
		return []*domain.Service{}, nil
	}
	return services, nil
}

func (s *CatalogService) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	return s.repo.GetServiceByID(ctx, id)
}

// UpdateService применяет правки карточки и сигналит боту сбросить кэш.
func (s *CatalogService) UpdateService(ctx context.Context, id int64, upd domain.ServiceUpdate) error {
	if err := s.repo.UpdateService(ctx, id, upd); err != nil {
		s.logger.Error("failed to update service card",
			zap.Int64("service_id", id),
			zap.Error(err))
		return err
	}

	if err := s.rdb.Publish(ctx, infra.RedisChanCatalogUpdate, strconv.FormatInt(id, 10)).Err(); err != nil {
		s.logger.Warn("catalog update signal failed", zap.Error(err))
	}

	s.logger.Info("service card updated", zap.Int64("service_id", id))
	return nil
}
