package catalog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/medplast/consult-console/internal/domain"
	"golang.org/x/net/html"
)

// ParseServicePage извлекает карточку услуги из HTML страницы сайта клиники.
// Разметка у клиники нестабильная, поэтому берем эвристики: первый h1 как
// название, первый содержательный абзац как описание, абзац с упоминанием
// цены как ценовой диапазон. clinicName нужен, чтобы отрезать хвост
// "Услуга - Название клиники" из <title>.
func ParseServicePage(data []byte, sourceURL, clinicName string) (*domain.Service, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("catalog: invalid html: %w", err)
	}

	svc := &domain.Service{SourceURL: sourceURL}

	var pageTitle string
	var paragraphs []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1":
				if svc.Name == "" {
					svc.Name = textContent(n)
				}
			case "title":
				pageTitle = textContent(n)
			case "p":
				if text := textContent(n); len([]rune(text)) > 40 {
					paragraphs = append(paragraphs, text)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// h1 не нашелся — берем <title>, отрезав хвост с названием клиники
	if svc.Name == "" && pageTitle != "" {
		name := pageTitle
		if clinicName != "" && strings.HasSuffix(name, " - "+clinicName) {
			name = strings.TrimSuffix(name, " - "+clinicName)
		} else {
			name = strings.SplitN(name, " - ", 2)[0]
		}
		svc.Name = strings.TrimSpace(name)
	}
	if svc.Name == "" {
		return nil, fmt.Errorf("catalog: page has no recognizable service title")
	}

	for _, p := range paragraphs {
		lower := strings.ToLower(p)
		switch {
		case svc.PriceRange == "" && (strings.Contains(lower, "руб") || strings.Contains(lower, "цен")):
			svc.PriceRange = p
		case svc.Indications == "" && strings.Contains(lower, "показани"):
			svc.Indications = p
		case svc.Recovery == "" && (strings.Contains(lower, "реабилитац") || strings.Contains(lower, "восстановлен")):
			svc.Recovery = p
		case svc.Description == "":
			svc.Description = p
		}
	}

	return svc, nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
