package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Fetcher качает страницы сайта клиники с защитой от его же нестабильности:
// лимитер, предохранитель и ограниченные повторы с таймаутом на попытку.
type Fetcher struct {
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	timeout time.Duration
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// Настройка предохранителя
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "clinic-website",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     time.Minute, // Время, через которое CB попробует "закрыться"
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
	})

	// Сайт клиники — чужой ресурс, не долбим его чаще раза в секунду
	limiter := rate.NewLimiter(rate.Limit(1), 2)

	return &Fetcher{
		client:  &http.Client{},
		cb:      cb,
		limiter: limiter,
		timeout: timeout,
	}
}

// Fetch возвращает тело страницы по URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	// 1. Rate Limiter
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	var body []byte

	// 2. Circuit Breaker
	result, err := f.cb.Execute(func() (interface{}, error) {
		r := retry.New(
			retry.Context(ctx),
			retry.Attempts(3),
		)

		retryErr := r.Do(func() error {
			tCtx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()

			var fetchErr error
			body, fetchErr = f.fetchOnce(tCtx, url)
			return fetchErr
		})

		return body, retryErr
	})

	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return data, nil
}
