package actions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExportCSV_SavesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"csv": "a,b\nc,d", "filename": "server.csv"}`))
	}))
	defer srv.Close()

	center := NewCenter(time.Minute)
	client := NewClient(srv.URL, WithNotifier(center))

	dir := t.TempDir()
	path, err := client.ExportCSV(context.Background(), srv.URL, dir, "out.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(path) != "out.csv" {
		t.Errorf("expected filename out.csv, got %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
	if string(content) != "a,b\nc,d" {
		t.Errorf("unexpected file content %q", content)
	}

	if !hasSeverity(center, SeveritySuccess) {
		t.Error("expected a success notification")
	}

	// Времянок после успешного сохранения не остается
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the final file in dir, got %d entries", len(entries))
	}
}

func TestExportCSV_ServerFilenameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"csv": "x", "filename": "requests_20250101_120000.csv"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithNotifier(NewCenter(time.Minute)))

	path, err := client.ExportCSV(context.Background(), srv.URL, t.TempDir(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "requests_20250101_120000.csv" {
		t.Errorf("expected server-suggested filename, got %s", path)
	}
}

func TestExportCSV_MalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "not json", body: "<html>oops</html>", code: http.StatusOK},
		{name: "missing csv field", body: `{"filename": "x.csv"}`, code: http.StatusOK},
		{name: "backend error", body: "boom", code: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			center := NewCenter(time.Minute)
			client := NewClient(srv.URL, WithNotifier(center))

			dir := t.TempDir()
			if _, err := client.ExportCSV(context.Background(), srv.URL, dir, "out.csv"); err == nil {
				t.Fatal("expected an error")
			}

			if !hasSeverity(center, SeverityDanger) {
				t.Error("expected a failure notification")
			}

			// Никаких файлов, включая времянки
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("expected empty dir, got %d entries", len(entries))
			}
		})
	}
}
