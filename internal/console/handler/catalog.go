package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/medplast/consult-console/internal/domain"
)

// CatalogManager Описываем, что нам нужно от сервиса
type CatalogManager interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	UpdateService(ctx context.Context, id int64, upd domain.ServiceUpdate) error
}

type CatalogHandler struct {
	service CatalogManager
}

func NewCatalogHandler(s CatalogManager) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := serviceID(r)
	if err != nil {
		http.Error(w, "invalid service id", http.StatusBadRequest)
		return
	}

	svc, err := h.service.GetService(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(svc)
}

// Update применяет частичные правки карточки услуги.
// POST /api/services/{serviceID}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := serviceID(r)
	if err != nil {
		http.Error(w, "invalid service id", http.StatusBadRequest)
		return
	}

	var upd domain.ServiceUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateService(r.Context(), id, upd); err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func serviceID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "serviceID"), 10, 64)
}
