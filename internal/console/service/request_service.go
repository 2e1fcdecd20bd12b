package service

import (
	"context"
	"fmt"

	"github.com/medplast/consult-console/internal/domain"
	"github.com/medplast/consult-console/internal/infra"
	"github.com/medplast/consult-console/internal/infra/auth"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SignalBus — узкий контракт Redis-клиента: сервисам от него нужен
// только Publish. *redis.Client подходит как есть.
type SignalBus interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RequestRepository описывает требования к хранилищу заявок
type RequestRepository interface {
	GetRequestByID(ctx context.Context, id int64) (*domain.ConsultationRequest, error)
	FindRequests(ctx context.Context, status domain.RequestStatus) ([]*domain.ConsultationRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, status domain.RequestStatus) error
	GetDashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)
	GetRequestStats(ctx context.Context) (*domain.RequestStats, error)
}

type RequestService struct {
	*auth.BaseValidator
	repo   RequestRepository
	rdb    SignalBus
	logger *zap.Logger
}

func NewRequestService(rdb SignalBus, repo RequestRepository, validator *auth.BaseValidator, logger *zap.Logger) *RequestService {
	return &RequestService{
		BaseValidator: validator,
		repo:          repo,
		rdb:           rdb,
		logger:        logger.Named("request-service"),
	}
}

// UpdateStatus переводит заявку в новый статус и транслирует сигнал в Redis.
// Сигнал слушают бот-нотификатор и открытые сессии админки.
func (s *RequestService) UpdateStatus(ctx context.Context, requestID int64, status domain.RequestStatus) error {
	if !domain.KnownStatuses[status] {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	// 1. Persistence Layer
	if err := s.repo.UpdateRequestStatus(ctx, requestID, status); err != nil {
		s.logger.Error("failed to update request status in DB",
			zap.Int64("request_id", requestID),
			zap.String("status", string(status)),
			zap.Error(err))
		return err
	}

	// 2. Real-time Signaling
	payload := fmt.Sprintf("%d:%s", requestID, status)
	if err := s.rdb.Publish(ctx, infra.RedisChanRequestStatus, payload).Err(); err != nil {
		// Смена статуса уже записана; потеря сигнала не делает операцию неуспешной
		s.logger.Warn("status signal delivery failed",
			zap.String("channel", infra.RedisChanRequestStatus),
			zap.Error(err))
	} else {
		s.logger.Info("request status updated",
			zap.Int64("request_id", requestID),
			zap.String("new_status", string(status)))
	}

	return nil
}

func (s *RequestService) GetRequest(ctx context.Context, id int64) (*domain.ConsultationRequest, error) {
	return s.repo.GetRequestByID(ctx, id)
}

// ListRequests возвращает заявки, опционально отфильтрованные по статусу.
func (s *RequestService) ListRequests(ctx context.Context, status string) ([]*domain.ConsultationRequest, error) {
	if status != "" && !domain.KnownStatuses[domain.RequestStatus(status)] {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	requests, err := s.repo.FindRequests(ctx, domain.RequestStatus(status))
	if err != nil {
		s.logger.Error("failed to list requests", zap.Error(err))
		return nil, fmt.Errorf("service: could not fetch requests: %w", err)
	}

	// Гарантируем, что фронтенд получит пустой массив [], а не null
	if requests == nil {
		return []*domain.ConsultationRequest{}, nil
	}
	return requests, nil
}

func (s *RequestService) GetDashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	// Сюда можно добавить кэширование в Redis на минуту,
	// чтобы не гонять аналитические запросы на каждый рендер.
	return s.repo.GetDashboardSummary(ctx)
}

func (s *RequestService) GetStats(ctx context.Context) (*domain.RequestStats, error) {
	stats, err := s.repo.GetRequestStats(ctx)
	if err != nil {
		s.logger.Error("failed to fetch request stats", zap.Error(err))
		return nil, fmt.Errorf("service: could not fetch stats: %w", err)
	}
	return stats, nil
}
