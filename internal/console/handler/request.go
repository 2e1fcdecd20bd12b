package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/medplast/consult-console/internal/console/service"
	"github.com/medplast/consult-console/internal/domain"
)

// RequestManager Описываем, что нам нужно от сервиса
type RequestManager interface {
	GetRequest(ctx context.Context, id int64) (*domain.ConsultationRequest, error)
	ListRequests(ctx context.Context, status string) ([]*domain.ConsultationRequest, error)
	UpdateStatus(ctx context.Context, requestID int64, status domain.RequestStatus) error
	ExportRequests(ctx context.Context) (*service.ExportResult, error)
}

type RequestHandler struct {
	service RequestManager
}

func NewRequestHandler(s RequestManager) *RequestHandler {
	return &RequestHandler{service: s}
}

// List возвращает заявки, опционально отфильтрованные по статусу.
// GET /api/requests?status=new
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status") // Достаем из ?status=...

	list, err := h.service.ListRequests(r.Context(), status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	req, err := h.service.GetRequest(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			http.Error(w, "Request not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type StatusUpdateResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// UpdateStatus переводит заявку в новый статус.
// POST /api/requests/{requestID}/status, тело {"status": "contacted"}
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	err = h.service.UpdateStatus(r.Context(), id, domain.RequestStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRequestNotFound):
			http.Error(w, "Request not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrInvalidStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatusUpdateResponse{Success: true, Status: req.Status})
}

// Export выгружает все заявки в CSV.
// Ответ — JSON {"csv": "...", "filename": "requests_....csv"}, файл из него
// собирает клиентский слой.
func (h *RequestHandler) Export(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ExportRequests(r.Context())
	if err != nil {
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func requestID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
}
