package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/medplast/consult-console/internal/domain"
	"github.com/medplast/consult-console/internal/infra"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type fakeBus struct {
	channels []string
	payloads []string
}

func (f *fakeBus) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, fmt.Sprint(message))
	return redis.NewIntCmd(ctx)
}

type fakeCatalogRepo struct {
	updatedID  int64
	updatedUpd domain.ServiceUpdate
	updateErr  error
}

func (f *fakeCatalogRepo) ListServices(ctx context.Context) ([]*domain.Service, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	return nil, domain.ErrServiceNotFound
}

func (f *fakeCatalogRepo) UpdateService(ctx context.Context, id int64, upd domain.ServiceUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedUpd = upd
	return nil
}

func TestUpdateService_PublishesCatalogSignal(t *testing.T) {
	bus := &fakeBus{}
	repo := &fakeCatalogRepo{}
	svc := NewCatalogService(bus, repo, zap.NewNop())

	price := "от 60 000 рублей"
	err := svc.UpdateService(context.Background(), 5, domain.ServiceUpdate{PriceRange: &price})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.updatedID != 5 || repo.updatedUpd.PriceRange == nil || *repo.updatedUpd.PriceRange != price {
		t.Errorf("repo called with (%d, %+v)", repo.updatedID, repo.updatedUpd)
	}

	// Боту нужен сигнал сбросить кэш карточки
	if len(bus.channels) != 1 || bus.channels[0] != infra.RedisChanCatalogUpdate {
		t.Fatalf("unexpected channels %v", bus.channels)
	}
	if bus.payloads[0] != "5" {
		t.Errorf("unexpected payload %q", bus.payloads[0])
	}
}

func TestUpdateService_NoSignalOnRepoError(t *testing.T) {
	bus := &fakeBus{}
	repo := &fakeCatalogRepo{updateErr: domain.ErrServiceNotFound}
	svc := NewCatalogService(bus, repo, zap.NewNop())

	err := svc.UpdateService(context.Background(), 5, domain.ServiceUpdate{})
	if !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
	if len(bus.channels) != 0 {
		t.Errorf("signal must not be published for a failed update, got %v", bus.channels)
	}
}

func TestUpdateStatus_PublishesStatusSignal(t *testing.T) {
	bus := &fakeBus{}
	svc := NewRequestService(bus, &fakeRequestRepo{}, nil, zap.NewNop())

	if err := svc.UpdateStatus(context.Background(), 42, domain.StatusContacted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bus.channels) != 1 || bus.channels[0] != infra.RedisChanRequestStatus {
		t.Fatalf("unexpected channels %v", bus.channels)
	}
	if bus.payloads[0] != "42:contacted" {
		t.Errorf("unexpected payload %q", bus.payloads[0])
	}
}
