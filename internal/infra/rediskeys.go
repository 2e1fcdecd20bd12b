package infra

import "fmt"

const (
	// RedisNamespace Базовый префикс для изоляции данных проекта в Redis
	RedisNamespace = "medplast"
)

// Каналы Pub/Sub (события)
const (
	// RedisChanRequestStatus — канал трансляции смен статусов заявок.
	// Формат сообщения: "{requestID}:{status}". Слушают бот-нотификатор
	// и открытые сессии medadmin.
	RedisChanRequestStatus = RedisNamespace + ":requests:status"

	// RedisChanCatalogUpdate — сигнал об изменении карточки услуги,
	// чтобы бот сбросил кэш ответов.
	RedisChanCatalogUpdate = RedisNamespace + ":catalog:update"
)

// GetExportLockKey Генератор ключей для блокировок фоновых экспорта/посева
func GetExportLockKey(resource string) string {
	return fmt.Sprintf("%s:lock:%s", RedisNamespace, resource)
}
