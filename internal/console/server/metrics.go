package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Latency: сколько времени заняла обработка запроса к консоли
	RequestDuration *prometheus.HistogramVec

	// Traffic: общее кол-во HTTP запросов
	TotalRequests *prometheus.CounterVec

	// Бизнес-счетчики: смены статусов и выгрузки
	StatusUpdates *prometheus.CounterVec
	ExportsTotal  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Null Object Pattern - Если рег не передан, используем локальный, который никуда не подключен
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_request_duration_seconds",
			Help:    "Histogram of admin API request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"route", "method", "code"}),

		TotalRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_requests_total",
			Help: "Total number of admin API requests.",
		}, []string{"route", "method"}),

		StatusUpdates: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_status_updates_total",
			Help: "Total number of request status transitions.",
		}, []string{"status"}),

		ExportsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "console_exports_total",
			Help: "Total number of CSV exports.",
		}),
	}
}

// Middleware записывает латентность и счетчики по шаблону роута,
// чтобы не плодить лейблы на каждый конкретный ID.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		m.TotalRequests.WithLabelValues(route, r.Method).Inc()
		m.RequestDuration.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
