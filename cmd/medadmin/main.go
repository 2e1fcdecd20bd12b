// medadmin — терминальная админка менеджера клиники: смена статусов заявок,
// выгрузка CSV и живые уведомления о действиях коллег.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medplast/consult-console/internal/actions"
	"github.com/medplast/consult-console/internal/domain"
	"github.com/medplast/consult-console/internal/infra"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	var (
		username  = flag.String("user", os.Getenv("MEDADMIN_USER"), "логин оператора")
		password  = flag.String("pass", os.Getenv("MEDADMIN_PASS"), "пароль оператора")
		requestID = flag.String("request", "", "ID заявки для смены статуса")
		status    = flag.String("status", "", "новый статус заявки (new, contacted, appointed, cancelled)")
		doExport  = flag.Bool("export", false, "выгрузить все заявки в CSV")
		filename  = flag.String("o", "", "имя файла выгрузки (по умолчанию предложит сервер)")
		watch     = flag.Bool("watch", false, "слушать смены статусов от других операторов")
		yes       = flag.Bool("y", false, "не спрашивать подтверждение")
	)
	flag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Общий сток тостов: рендерим каждое изменение стопки в stderr
	notify := actions.NewCenter(cfg.Client.NotificationTTL)
	notify.SetOnChange(func() {
		for _, n := range notify.Active() {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Message)
		}
	})

	client := actions.NewClient(cfg.Client.BaseURL,
		actions.WithNotifier(notify),
		actions.WithReloadDelay(cfg.Client.ReloadDelay),
		actions.WithLogger(logger),
		actions.WithReloadFunc(func() {
			fmt.Fprintln(os.Stderr, "-- список заявок обновлен --")
		}),
	)

	ctx := context.Background()

	if *username != "" {
		token, err := login(ctx, cfg.Client.BaseURL, *username, *password)
		if err != nil {
			logger.Fatal("login failed", zap.Error(err))
		}
		client.SetToken(token)
	}

	switch {
	case *requestID != "" && *status != "":
		runStatusUpdate(ctx, client, *requestID, *status, *yes)

	case *doExport:
		url := cfg.Client.BaseURL + "/api/requests/export"
		if _, err := client.ExportCSV(ctx, url, cfg.Client.DownloadDir, *filename); err != nil {
			os.Exit(1)
		}

	case *watch:
		runWatch(cfg, notify, logger)

	default:
		flag.Usage()
		os.Exit(2)
	}

	// Не обрываем фоновое действие и даем тосту показаться
	client.Wait()
	time.Sleep(cfg.Client.ReloadDelay + 100*time.Millisecond)
}

func runStatusUpdate(ctx context.Context, client *actions.Client, requestID, status string, yes bool) {
	btn := actions.NewControl("Сменить статус")

	do := func() {
		btn.SetLoading(true)
		defer btn.SetLoading(false)

		err := client.UpdateRequestStatus(ctx, requestID, status)
		if err != nil {
			fmt.Fprintf(os.Stderr, "действие отклонено: %v\n", err)
			return
		}
		client.Wait()
	}

	// Отмена заявки необратима с точки зрения менеджера — переспрашиваем
	if !yes && domain.RequestStatus(status) == domain.StatusCancelled {
		msg := fmt.Sprintf("Отменить заявку #%s?", requestID)
		if !actions.Confirm(os.Stdin, os.Stderr, msg, do) {
			fmt.Fprintln(os.Stderr, "отменено оператором")
		}
		return
	}
	do()
}

func runWatch(cfg *infra.Config, notify *actions.Center, logger *zap.Logger) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "слушаю смены статусов, Ctrl+C для выхода")
	actions.ListenStatusSignals(ctx, rdb, notify, logger)
}

func login(ctx context.Context, baseURL, username, password string) (string, error) {
	body, _ := json.Marshal(domain.LoginRequest{Username: username, Password: password})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/token", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var token domain.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}
