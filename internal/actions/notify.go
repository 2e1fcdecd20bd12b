package actions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity классифицирует тост по степени тревожности.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// Notification — одноразовое всплывающее сообщение об исходе действия.
// Живет до истечения TTL или до явного закрытия оператором.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Center — общий сток уведомлений процесса. Тосты складываются стопкой,
// не заменяя друг друга, и сами удаляются по истечении TTL.
type Center struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  []*Notification
	timers map[string]*time.Timer

	// onChange дергается на каждое добавление/удаление; его слушает
	// рендер в medadmin. Может быть nil.
	onChange func()
}

const DefaultNotificationTTL = 5 * time.Second

// NewCenter создает изолированный сток (для тестов и нестандартных TTL).
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Center{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

var (
	defaultCenter     *Center
	defaultCenterOnce sync.Once
)

// Default возвращает общий сток процесса, лениво создавая его при первом
// обращении. Повторные и конкурентные вызовы сходятся на одном экземпляре.
func Default() *Center {
	defaultCenterOnce.Do(func() {
		defaultCenter = NewCenter(DefaultNotificationTTL)
	})
	return defaultCenter
}

// Post добавляет тост и заводит таймер самоудаления. Никогда не падает.
func (c *Center) Post(severity Severity, message string) *Notification {
	n := &Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.items = append(c.items, n)
	c.timers[n.ID] = time.AfterFunc(c.ttl, func() { c.Dismiss(n.ID) })
	cb := c.onChange
	c.mu.Unlock()

	if cb != nil {
		cb()
	}
	return n
}

// Dismiss убирает тост (по таймеру или по клику оператора).
// Повторный вызов для того же ID безвреден.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	cb := c.onChange
	c.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Active возвращает снимок видимых тостов в порядке появления.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, 0, len(c.items))
	for _, n := range c.items {
		out = append(out, *n)
	}
	return out
}

// SetOnChange регистрирует колбэк перерисовки.
func (c *Center) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}
