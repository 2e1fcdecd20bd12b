package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Формат дат в выгрузке совпадает с тем, что менеджеры видят в админке.
const (
	exportDateLayout     = "02.01.2006"
	exportDateTimeLayout = "02.01.2006 15:04"
	exportFileLayout     = "20060102_150405"
)

// ExportResult — полезная нагрузка ответа /api/requests/export.
// Клиентский слой превращает поле CSV в скачиваемый файл.
type ExportResult struct {
	CSV      string `json:"csv"`
	Filename string `json:"filename"`
}

var exportHeader = []string{
	"ID", "Имя", "Телефон", "Услуга", "Статус",
	"Предпочтительная дата", "Комментарий", "Дата создания",
}

// ExportRequests выгружает все заявки в CSV-текст.
// Имя файла содержит момент выгрузки, чтобы архивы не затирали друг друга.
func (s *RequestService) ExportRequests(ctx context.Context) (*ExportResult, error) {
	requests, err := s.repo.FindRequests(ctx, "")
	if err != nil {
		s.logger.Error("failed to fetch requests for export", zap.Error(err))
		return nil, fmt.Errorf("service: export query failed: %w", err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("service: csv header write failed: %w", err)
	}

	for _, req := range requests {
		preferred := ""
		if req.PreferredDate != nil {
			preferred = req.PreferredDate.Format(exportDateLayout)
		}

		record := []string{
			strconv.FormatInt(req.ID, 10),
			req.Name,
			req.Phone,
			req.ServiceName,
			string(req.Status),
			preferred,
			req.Comment,
			req.CreatedAt.Format(exportDateTimeLayout),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("service: csv record write failed: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("service: csv flush failed: %w", err)
	}

	s.logger.Info("requests exported", zap.Int("count", len(requests)))

	return &ExportResult{
		CSV:      sb.String(),
		Filename: fmt.Sprintf("requests_%s.csv", time.Now().Format(exportFileLayout)),
	}, nil
}
