package domain

import (
	"errors"
	"time"
)

// Статусы жизненного цикла заявки на консультацию
type RequestStatus string

const (
	StatusNew       RequestStatus = "new"
	StatusContacted RequestStatus = "contacted"
	StatusAppointed RequestStatus = "appointed"
	StatusCancelled RequestStatus = "cancelled"
)

var (
	ErrRequestNotFound = errors.New("consultation request not found")
	ErrInvalidStatus   = errors.New("unknown request status")
)

// KnownStatuses перечисляет допустимые значения для валидации на стороне API.
// Клиентский слой передает статус как непрозрачную строку — проверяем здесь.
var KnownStatuses = map[RequestStatus]bool{
	StatusNew:       true,
	StatusContacted: true,
	StatusAppointed: true,
	StatusCancelled: true,
}

// ConsultationRequest — заявка пациента на консультацию, созданная ботом.
// Поля PatientName/PatientPhone/ServiceName заполняются JOIN-ом при выборке
// для админки и экспорта.
type ConsultationRequest struct {
	ID            int64         `json:"id"`
	PatientID     int64         `json:"patient_id"`
	ServiceID     int64         `json:"service_id"`
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	PreferredDate *time.Time    `json:"preferred_date,omitempty"`
	Comment       string        `json:"comment,omitempty"`
	Status        RequestStatus `json:"status"`

	PatientName  string `json:"patient_name,omitempty"`
	PatientPhone string `json:"patient_phone,omitempty"`
	ServiceName  string `json:"service_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
