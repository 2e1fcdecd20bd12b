package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/medplast/consult-console/internal/infra"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ListenStatusSignals — "живучая" подписка на канал смен статусов заявок.
// Пока открыта сессия medadmin, изменения от других операторов прилетают
// информационными тостами. Переподключается при обрывах.
func ListenStatusSignals(
	ctx context.Context,
	rdb *redis.Client,
	notify *Center,
	logger *zap.Logger,
) {
	logger = logger.Named("status-listener")
	channel := infra.RedisChanRequestStatus

	for {
		pubsub := rdb.Subscribe(ctx, channel)

		// Проверка успешности подписки
		if _, err := pubsub.Receive(ctx); err != nil {
			logger.Error("failed to subscribe", zap.String("chan", channel), zap.Error(err))
			select {
			case <-ctx.Done():
				pubsub.Close()
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		ch := pubsub.Channel()

	loop:
		for {
			select {
			case <-ctx.Done():
				pubsub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					break loop // Канал закрыт, идем на переподключение
				}

				requestID, status, ok := parseStatusSignal(msg.Payload)
				if !ok {
					logger.Error("invalid signal format", zap.String("payload", msg.Payload))
					continue
				}

				notify.Post(SeverityInfo,
					fmt.Sprintf("Заявка #%s: статус изменен на %q", requestID, status))
			}
		}

		pubsub.Close()
		time.Sleep(time.Second)
	}
}

// parseStatusSignal разбирает формат "request_id:status". Статус может
// содержать двоеточия, разделителем считается только первое.
func parseStatusSignal(payload string) (requestID, status string, ok bool) {
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
