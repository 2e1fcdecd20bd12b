package domain

import (
	"errors"
	"time"
)

var ErrServiceNotFound = errors.New("service not found")

// Service — медицинская услуга, о которой консультирует бот.
// Контент либо спарсен с сайта клиники, либо заведен вручную через админку.
type Service struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Indications string `json:"indications,omitempty"`
	Methods     string `json:"methods,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Recovery    string `json:"recovery,omitempty"`
	PriceRange  string `json:"price_range,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ServiceUpdate — частичное обновление карточки услуги из админки.
// nil означает "поле не трогаем".
type ServiceUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Indications *string `json:"indications,omitempty"`
	Methods     *string `json:"methods,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	Recovery    *string `json:"recovery,omitempty"`
	PriceRange  *string `json:"price_range,omitempty"`
}

// Patient — пользователь Telegram, оставивший заявку.
type Patient struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username,omitempty"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}
