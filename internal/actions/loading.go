package actions

import "sync"

// Надпись на кнопке, пока действие в полете.
const loadingLabel = "Загрузка..."

// Control — интерактивный элемент (кнопка), который можно заблокировать
// на время действия с подменой подписи.
type Control struct {
	mu       sync.Mutex
	label    string
	disabled bool

	saved   string // Исходная подпись; запоминается один раз
	hasSave bool
}

func NewControl(label string) *Control {
	return &Control{label: label}
}

// SetLoading переключает состояние загрузки.
//
// Включение блокирует контрол и подменяет подпись; исходная подпись
// запоминается только если еще не была запомнена, поэтому двойное
// включение не затирает ее надписью "Загрузка...". Выключение
// возвращает запомненную подпись (или текущую, если запоминать было
// нечего). Повторное переключение в то же состояние — no-op.
func (c *Control) SetLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if loading {
		if !c.hasSave {
			c.saved = c.label
			c.hasSave = true
		}
		c.disabled = true
		c.label = loadingLabel
		return
	}

	if c.hasSave {
		c.label = c.saved
		c.hasSave = false
	}
	c.disabled = false
}

func (c *Control) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *Control) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}
