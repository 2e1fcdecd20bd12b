package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/medplast/consult-console/internal/console/handler"
	"github.com/medplast/consult-console/internal/infra"
	"github.com/medplast/consult-console/internal/infra/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ConsoleServer struct {
	router  *chi.Mux
	logger  *zap.Logger
	cfg     *infra.Config
	metrics *Metrics

	// Интерфейс для проверки токенов (RS256)
	// Реализуется через embedding BaseValidator в RequestService
	authValidator auth.TokenValidator

	// Обработчики бизнес-доменов
	authHandler    *handler.AuthHandler      // /auth/token
	requestHandler *handler.RequestHandler   // /api/requests
	catalogHandler *handler.CatalogHandler   // /api/services
	dashHandler    *handler.DashboardHandler // /api/dashboard, /api/stats
}

// NewConsoleServer инициализирует сервер админки со всеми зависимостями
func NewConsoleServer(
	cfg *infra.Config,
	logger *zap.Logger,
	validator auth.TokenValidator,
	authH *handler.AuthHandler,
	requestH *handler.RequestHandler,
	catalogH *handler.CatalogHandler,
	dashH *handler.DashboardHandler,
	reg prometheus.Registerer,
) *ConsoleServer {
	s := &ConsoleServer{
		router:         chi.NewRouter(),
		logger:         logger.Named("console-api"),
		cfg:            cfg,
		metrics:        NewMetrics(reg),
		authValidator:  validator,
		authHandler:    authH,
		requestHandler: requestH,
		catalogHandler: catalogH,
		dashHandler:    dashH,
	}

	s.routes(reg)
	return s
}

func (s *ConsoleServer) routes(reg prometheus.Registerer) {
	r := s.router

	// --- 1. Глобальные инфраструктурные Middleware (для всех) ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	// --- 2. ПУБЛИЧНЫЕ РОУТЫ (Открыты для всех) ---
	r.Group(func(r chi.Router) {
		// Логин должен быть доступен без токена
		r.Post("/auth/token", s.authHandler.Login)

		// Healthcheck для мониторинга
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		if gatherer, ok := reg.(prometheus.Gatherer); ok {
			r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
		}
	})

	// --- 3. ЗАЩИЩЕННЫЙ ПЕРИМЕТР (Требуют RS256 токен) ---
	r.Group(func(r chi.Router) {
		// Подключаем универсальный Middleware только для этой группы
		r.Use(auth.NewMiddleware(s.authValidator, s.logger))

		// Операторы консоли
		r.Post("/api/admins", s.authHandler.CreateAdmin)

		// Dashboard & Stats
		r.Get("/api/dashboard", s.dashHandler.GetSummary)
		r.Get("/api/stats", s.dashHandler.GetStats)

		// Заявки на консультацию
		r.Route("/api/requests", func(r chi.Router) {
			r.Get("/", s.requestHandler.List)   // Список с фильтром по статусу
			r.Get("/export", s.exportWithCount) // Выгрузка в CSV
			r.Route("/{requestID}", func(r chi.Router) {
				r.Get("/", s.requestHandler.Get)
				r.Post("/status", s.statusWithCount) // Смена статуса + Redis Publish
			})
		})

		// Каталог услуг
		r.Route("/api/services", func(r chi.Router) {
			r.Get("/", s.catalogHandler.List)
			r.Route("/{serviceID}", func(r chi.Router) {
				r.Get("/", s.catalogHandler.Get)
				r.Post("/", s.catalogHandler.Update)
			})
		})
	})
}

// statusWithCount навешивает бизнес-метрику поверх обработчика смены статуса.
func (s *ConsoleServer) statusWithCount(w http.ResponseWriter, r *http.Request) {
	ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
	s.requestHandler.UpdateStatus(ww, r)
	if ww.Status() < 300 {
		s.metrics.StatusUpdates.WithLabelValues("accepted").Inc()
	} else {
		s.metrics.StatusUpdates.WithLabelValues("rejected").Inc()
	}
}

func (s *ConsoleServer) exportWithCount(w http.ResponseWriter, r *http.Request) {
	s.metrics.ExportsTotal.Inc()
	s.requestHandler.Export(w, r)
}

// ServeHTTP позволяет использовать ConsoleServer как стандартный http.Handler
func (s *ConsoleServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
