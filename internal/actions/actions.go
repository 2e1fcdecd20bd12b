// Package actions — клиентский слой админки: смена статусов заявок,
// выгрузка CSV и сопутствующие UI-удобства (тосты, блокировка кнопок,
// подтверждения). Все сетевые исходы конвертируются в уведомления и
// не поднимаются выше по стеку.
package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultReloadDelay — пауза между успешной сменой статуса и обновлением
// списка заявок: оператор должен успеть увидеть тост до перерисовки.
const DefaultReloadDelay = time.Second

var (
	ErrEmptyRequestID = errors.New("request id must not be empty")
	ErrEmptyStatus    = errors.New("status must not be empty")
	// ErrActionInFlight возвращается при повторном клике, пока предыдущая
	// смена статуса той же заявки еще не завершилась.
	ErrActionInFlight = errors.New("status update already in flight for this request")
)

// Client выполняет действия оператора против Console API.
type Client struct {
	baseURL     string
	http        *http.Client
	notify      *Center
	logger      *zap.Logger
	reloadDelay time.Duration

	// reload перерисовывает представление со свежими данными с сервера.
	reload func()

	token string // Bearer токен после логина

	mu       sync.Mutex
	inflight map[string]struct{} // Заявки с незавершенной сменой статуса

	wg sync.WaitGroup
}

// Option настраивает Client.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option   { return func(c *Client) { c.http = h } }
func WithNotifier(n *Center) Option          { return func(c *Client) { c.notify = n } }
func WithReloadDelay(d time.Duration) Option { return func(c *Client) { c.reloadDelay = d } }
func WithReloadFunc(fn func()) Option        { return func(c *Client) { c.reload = fn } }
func WithLogger(l *zap.Logger) Option        { return func(c *Client) { c.logger = l } }
func WithToken(token string) Option          { return func(c *Client) { c.token = token } }

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		http:        &http.Client{},
		notify:      Default(),
		logger:      zap.NewNop(),
		reloadDelay: DefaultReloadDelay,
		reload:      func() {},
		inflight:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("actions")
	return c
}

// SetToken подставляет свежий Bearer токен после логина.
func (c *Client) SetToken(token string) { c.token = token }

// UpdateRequestStatus переводит заявку в новый статус.
//
// Вызов не блокирует: сетевая часть уходит в фон, исход доезжает до
// оператора тостом. При успехе через reloadDelay дергается reload, при
// отказе сервера или сетевой ошибке — тост об ошибке, без повтора и без
// перерисовки. Ошибка возвращается только за пустые аргументы и за
// повторный клик по заявке с незавершенным действием.
func (c *Client) UpdateRequestStatus(ctx context.Context, requestID, status string) error {
	if requestID == "" {
		return ErrEmptyRequestID
	}
	if status == "" {
		return ErrEmptyStatus
	}

	c.mu.Lock()
	if _, busy := c.inflight[requestID]; busy {
		c.mu.Unlock()
		return ErrActionInFlight
	}
	c.inflight[requestID] = struct{}{}
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			c.mu.Lock()
			delete(c.inflight, requestID)
			c.mu.Unlock()
		}()
		c.doStatusUpdate(ctx, requestID, status)
	}()

	return nil
}

func (c *Client) doStatusUpdate(ctx context.Context, requestID, status string) {
	url := fmt.Sprintf("%s/api/requests/%s/status", c.baseURL, requestID)

	body, _ := json.Marshal(map[string]string{"status": status})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.fail("Ошибка обновления статуса", "status update request build failed", requestID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.fail("Ошибка обновления статуса", "status update transport failure", requestID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.fail("Ошибка обновления статуса", "status update rejected by backend", requestID,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
		return
	}

	c.notify.Post(SeveritySuccess, "Статус обновлен")
	c.logger.Info("request status updated",
		zap.String("request_id", requestID),
		zap.String("status", status))

	// Пауза дает тосту показаться до перерисовки списка
	time.AfterFunc(c.reloadDelay, c.reload)
}

// fail конвертирует любой отказ в тост; ошибка дальше не распространяется.
func (c *Client) fail(userMsg, logMsg, requestID string, err error) {
	c.notify.Post(SeverityDanger, userMsg)
	c.logger.Warn(logMsg,
		zap.String("request_id", requestID),
		zap.Error(err))
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// Wait блокирует до завершения всех фоновых действий. Нужен при выходе
// из medadmin, чтобы не оборвать запрос на полпути.
func (c *Client) Wait() {
	c.wg.Wait()
}
