package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/medplast/consult-console/internal/console/service"
	"github.com/medplast/consult-console/internal/domain"
)

type fakeRequestManager struct {
	requests map[int64]*domain.ConsultationRequest

	updatedID     int64
	updatedStatus domain.RequestStatus
	updateErr     error
	exportErr     error
}

func (f *fakeRequestManager) GetRequest(ctx context.Context, id int64) (*domain.ConsultationRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestManager) ListRequests(ctx context.Context, status string) ([]*domain.ConsultationRequest, error) {
	if status != "" && !domain.KnownStatuses[domain.RequestStatus(status)] {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	out := make([]*domain.ConsultationRequest, 0)
	for _, req := range f.requests {
		if status == "" || req.Status == domain.RequestStatus(status) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRequestManager) UpdateStatus(ctx context.Context, requestID int64, status domain.RequestStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.requests[requestID]; !ok {
		return domain.ErrRequestNotFound
	}
	f.updatedID = requestID
	f.updatedStatus = status
	return nil
}

func (f *fakeRequestManager) ExportRequests(ctx context.Context) (*service.ExportResult, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return &service.ExportResult{CSV: "a,b\nc,d", Filename: "requests_test.csv"}, nil
}

func newRequestRouter(f *fakeRequestManager) http.Handler {
	h := NewRequestHandler(f)
	r := chi.NewRouter()
	r.Get("/api/requests", h.List)
	r.Get("/api/requests/export", h.Export)
	r.Get("/api/requests/{requestID}", h.Get)
	r.Post("/api/requests/{requestID}/status", h.UpdateStatus)
	return r
}

func seededManager() *fakeRequestManager {
	return &fakeRequestManager{
		requests: map[int64]*domain.ConsultationRequest{
			42: {ID: 42, Name: "Анна", Phone: "+79990001122", Status: domain.StatusNew, CreatedAt: time.Now()},
		},
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	f := seededManager()
	router := newRequestRouter(f)

	body := strings.NewReader(`{"status": "contacted"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/requests/42/status", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp StatusUpdateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if !resp.Success || resp.Status != "contacted" {
		t.Errorf("unexpected response %+v", resp)
	}

	if f.updatedID != 42 || f.updatedStatus != domain.StatusContacted {
		t.Errorf("service called with (%d, %s)", f.updatedID, f.updatedStatus)
	}
}

func TestUpdateStatus_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{name: "unknown request", path: "/api/requests/99/status", body: `{"status": "contacted"}`, code: http.StatusNotFound},
		{name: "bad id", path: "/api/requests/abc/status", body: `{"status": "contacted"}`, code: http.StatusBadRequest},
		{name: "empty status", path: "/api/requests/42/status", body: `{}`, code: http.StatusBadRequest},
		{name: "broken body", path: "/api/requests/42/status", body: `{`, code: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newRequestRouter(seededManager())

			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.code {
				t.Errorf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestList_StatusFilterValidation(t *testing.T) {
	router := newRequestRouter(seededManager())

	req := httptest.NewRequest(http.MethodGet, "/api/requests?status=bogus", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestList_ReturnsArray(t *testing.T) {
	router := newRequestRouter(seededManager())

	req := httptest.NewRequest(http.MethodGet, "/api/requests?status=new", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var list []*domain.ConsultationRequest
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if len(list) != 1 || list[0].ID != 42 {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestExport_Payload(t *testing.T) {
	router := newRequestRouter(seededManager())

	req := httptest.NewRequest(http.MethodGet, "/api/requests/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		CSV      string `json:"csv"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if payload.CSV != "a,b\nc,d" {
		t.Errorf("unexpected csv %q", payload.CSV)
	}
	if payload.Filename != "requests_test.csv" {
		t.Errorf("unexpected filename %q", payload.Filename)
	}
}
