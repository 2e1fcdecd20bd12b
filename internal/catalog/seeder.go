package catalog

import (
	"context"

	"github.com/medplast/consult-console/internal/domain"
	"github.com/medplast/consult-console/internal/infra"
	"go.uber.org/zap"
)

// SeedRepository — минимальный контракт хранилища для первичного посева.
type SeedRepository interface {
	CountServices(ctx context.Context) (int64, error)
	CreateService(ctx context.Context, svc *domain.Service) (int64, error)
}

// Seeder наполняет пустой каталог данными с сайта клиники при старте консоли.
type Seeder struct {
	repo    SeedRepository
	fetcher *Fetcher
	cfg     infra.CatalogConfig
	logger  *zap.Logger
}

func NewSeeder(repo SeedRepository, fetcher *Fetcher, cfg infra.CatalogConfig, logger *zap.Logger) *Seeder {
	return &Seeder{
		repo:    repo,
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger.Named("catalog-seeder"),
	}
}

// Seed парсит сайт только если каталог пуст. Если сайт недоступен или
// разметка не распозналась, заводим базовую услугу, чтобы бот и админка
// не остались с пустым каталогом.
func (s *Seeder) Seed(ctx context.Context) error {
	count, err := s.repo.CountServices(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Debug("catalog already seeded", zap.Int64("services", count))
		return nil
	}

	s.logger.Info("no services found, parsing clinic website",
		zap.String("url", s.cfg.WebsiteURL))

	svc := s.parseWebsite(ctx)
	if svc == nil {
		svc = defaultService(s.cfg.WebsiteURL)
		s.logger.Warn("website parsing failed, seeding default service",
			zap.String("name", svc.Name))
	}

	id, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		return err
	}

	s.logger.Info("service seeded",
		zap.Int64("service_id", id),
		zap.String("name", svc.Name))
	return nil
}

func (s *Seeder) parseWebsite(ctx context.Context) *domain.Service {
	body, err := s.fetcher.Fetch(ctx, s.cfg.WebsiteURL)
	if err != nil {
		s.logger.Warn("clinic website fetch failed", zap.Error(err))
		return nil
	}

	svc, err := ParseServicePage(body, s.cfg.WebsiteURL, s.cfg.ClinicName)
	if err != nil {
		s.logger.Warn("clinic website parse failed", zap.Error(err))
		return nil
	}
	return svc
}

func defaultService(sourceURL string) *domain.Service {
	return &domain.Service{
		Name:        "Блефаропластика верхних век",
		Description: "Пластика верхних век (блефаропластика) - хирургическая процедура по коррекции возрастных изменений верхних век.",
		Indications: "Нависание кожи верхних век, избыточная кожа, мешки под глазами, ухудшение поля зрения.",
		Methods:     "Хирургическая блефаропластика, трансконъюнктивальная методика.",
		Duration:    "1-2 часа",
		Recovery:    "7-10 дней - отек и синяки, 2 недели - снятие швов, 1 месяц - возврат к обычной жизни.",
		PriceRange:  "от 50 000 до 120 000 рублей",
		SourceURL:   sourceURL,
	}
}
