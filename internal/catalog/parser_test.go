package catalog

import (
	"strings"
	"testing"
)

const samplePage = `<!doctype html>
<html>
<head><title>Блефаропластика верхних век - Мед-Пластик</title></head>
<body>
  <h1>Блефаропластика верхних век</h1>
  <p>Пластика верхних век — хирургическая процедура по коррекции возрастных изменений, возвращающая взгляду открытость.</p>
  <p>Показания: нависание кожи верхних век, избыточная кожа, ухудшение поля зрения у пациентов старше сорока лет.</p>
  <p>Стоимость операции составляет от 50 000 до 120 000 рублей в зависимости от методики.</p>
  <p>Реабилитация занимает от семи до десяти дней, швы снимаются через две недели после операции.</p>
</body>
</html>`

func TestParseServicePage(t *testing.T) {
	svc, err := ParseServicePage([]byte(samplePage), "https://example.com/svc", "Мед-Пластик")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if svc.Name != "Блефаропластика верхних век" {
		t.Errorf("unexpected name %q", svc.Name)
	}
	if !strings.Contains(svc.Description, "хирургическая процедура") {
		t.Errorf("unexpected description %q", svc.Description)
	}
	if !strings.Contains(svc.PriceRange, "рублей") {
		t.Errorf("price paragraph not detected: %q", svc.PriceRange)
	}
	if !strings.Contains(svc.Indications, "Показания") {
		t.Errorf("indications paragraph not detected: %q", svc.Indications)
	}
	if !strings.Contains(svc.Recovery, "Реабилитация") {
		t.Errorf("recovery paragraph not detected: %q", svc.Recovery)
	}
	if svc.SourceURL != "https://example.com/svc" {
		t.Errorf("source url not carried over: %q", svc.SourceURL)
	}
}

func TestParseServicePage_TitleFallback(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		clinic string
		want   string
	}{
		{name: "clinic suffix stripped", title: "Ринопластика - Мед-Пластик", clinic: "Мед-Пластик", want: "Ринопластика"},
		{name: "dash inside name survives", title: "Лифтинг - комплекс - Мед-Пластик", clinic: "Мед-Пластик", want: "Лифтинг - комплекс"},
		{name: "unknown clinic falls back to first part", title: "Ринопластика - Другая клиника", clinic: "Мед-Пластик", want: "Ринопластика"},
		{name: "no clinic configured", title: "Ринопластика - Мед-Пластик", clinic: "", want: "Ринопластика"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page := `<html><head><title>` + tc.title + `</title></head><body><p>x</p></body></html>`

			svc, err := ParseServicePage([]byte(page), "u", tc.clinic)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc.Name != tc.want {
				t.Errorf("got name %q, want %q", svc.Name, tc.want)
			}
		})
	}
}

func TestParseServicePage_NoTitle(t *testing.T) {
	if _, err := ParseServicePage([]byte("<html><body></body></html>"), "u", ""); err == nil {
		t.Fatal("expected an error for a page without title")
	}
}
