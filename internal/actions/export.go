package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// exportPayload — ответ /api/requests/export.
type exportPayload struct {
	CSV      string `json:"csv"`
	Filename string `json:"filename"`
}

// ExportCSV скачивает CSV-выгрузку и сохраняет ее файлом в dir.
//
// Сервер отдает JSON с полем csv; filename задает имя итогового файла,
// пустое — берем имя, предложенное сервером. Файл собирается через
// временный файл с переименованием: при любом сбое времянка удаляется,
// частичная выгрузка на диске не остается. Любой отказ — тост об ошибке.
func (c *Client) ExportCSV(ctx context.Context, url, dir, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", c.exportFail("export request build failed", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", c.exportFail("export transport failure", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.exportFail("export rejected by backend",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload exportPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", c.exportFail("export payload is not valid JSON", err)
	}
	if payload.CSV == "" {
		return "", c.exportFail("export payload is missing csv field",
			fmt.Errorf("empty csv in response from %s", url))
	}

	if filename == "" {
		filename = payload.Filename
	}
	if filename == "" {
		filename = "export.csv"
	}

	path, err := c.saveDownload(dir, filename, []byte(payload.CSV))
	if err != nil {
		return "", c.exportFail("failed to materialize download", err)
	}

	c.notify.Post(SeveritySuccess, "Экспорт сохранен: "+filename)
	c.logger.Info("csv export saved", zap.String("path", path))
	return path, nil
}

// saveDownload пишет содержимое через времянку и атомарное переименование.
func (c *Client) saveDownload(dir, filename string, content []byte) (string, error) {
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("temp file create failed: %w", err)
	}
	tmpName := tmp.Name()

	// Времянка не должна пережить неудачную попытку
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return "", fmt.Errorf("temp file write failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("temp file close failed: %w", err)
	}

	final := filepath.Join(dir, filename)
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename to %s failed: %w", final, err)
	}
	return final, nil
}

func (c *Client) exportFail(logMsg string, err error) error {
	c.notify.Post(SeverityDanger, "Ошибка экспорта")
	c.logger.Warn(logMsg, zap.Error(err))
	return err
}
