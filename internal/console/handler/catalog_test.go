package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/medplast/consult-console/internal/domain"
)

type fakeCatalogManager struct {
	services map[int64]*domain.Service

	updatedID  int64
	updatedUpd domain.ServiceUpdate
	updateErr  error
}

func (f *fakeCatalogManager) ListServices(ctx context.Context) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0)
	for _, svc := range f.services {
		out = append(out, svc)
	}
	return out, nil
}

func (f *fakeCatalogManager) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeCatalogManager) UpdateService(ctx context.Context, id int64, upd domain.ServiceUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.services[id]; !ok {
		return domain.ErrServiceNotFound
	}
	f.updatedID = id
	f.updatedUpd = upd
	return nil
}

func newCatalogRouter(f *fakeCatalogManager) http.Handler {
	h := NewCatalogHandler(f)
	r := chi.NewRouter()
	r.Get("/api/services", h.List)
	r.Get("/api/services/{serviceID}", h.Get)
	r.Post("/api/services/{serviceID}", h.Update)
	return r
}

func seededCatalog() *fakeCatalogManager {
	return &fakeCatalogManager{
		services: map[int64]*domain.Service{
			5: {ID: 5, Name: "Блефаропластика верхних век", PriceRange: "от 50 000 рублей"},
		},
	}
}

func TestUpdateService_PartialUpdate(t *testing.T) {
	f := seededCatalog()
	router := newCatalogRouter(f)

	body := strings.NewReader(`{"price_range": "от 60 000 рублей"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/services/5", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if !resp["success"] {
		t.Errorf("unexpected response %v", resp)
	}

	if f.updatedID != 5 {
		t.Errorf("service called with id %d", f.updatedID)
	}
	// Тронутое поле пришло, остальные остались nil
	if f.updatedUpd.PriceRange == nil || *f.updatedUpd.PriceRange != "от 60 000 рублей" {
		t.Errorf("price not carried over: %+v", f.updatedUpd)
	}
	if f.updatedUpd.Name != nil || f.updatedUpd.Description != nil {
		t.Errorf("untouched fields must stay nil: %+v", f.updatedUpd)
	}
}

func TestUpdateService_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{name: "unknown service", path: "/api/services/99", body: `{"name": "x"}`, code: http.StatusNotFound},
		{name: "bad id", path: "/api/services/abc", body: `{"name": "x"}`, code: http.StatusBadRequest},
		{name: "broken body", path: "/api/services/5", body: `{`, code: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newCatalogRouter(seededCatalog())

			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.code {
				t.Errorf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestGetService_NotFound(t *testing.T) {
	router := newCatalogRouter(seededCatalog())

	req := httptest.NewRequest(http.MethodGet, "/api/services/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
