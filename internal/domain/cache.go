package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Простой k/v интерфейс с TTL. Реализация — Redis.
// Кеш best-effort: ошибки бэкенда не фатальны, читатель обязан уметь жить без него.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	// Массовая инвалидация по префиксу (после записи в хранилище)
	DelByPrefix(ctx context.Context, prefix string) error
	Ping(context.Context) error
	Close()
}

// Ключи кеша — единое место, чтобы не расползались по коду.
const CacheKeyEquipmentListPrefix = "equiplist:"

// CacheKeyEquipmentList строит стабильный ключ списочной выдачи.
// Ключ зависит только от нормализованного дескриптора: отсутствующий фильтр
// не попадает в ключ вовсе (absent != пустая строка и != 0), числа сериализуются
// канонически (25.5 и 25.50 — один ключ), значения экранируются, чтобы
// разделители внутри значения не давали коллизий между разными фильтрами.
func CacheKeyEquipmentList(q ListQuery) string {
	q = q.Normalized()

	parts := []string{
		fmt.Sprintf("page=%d", q.Page),
		fmt.Sprintf("limit=%d", q.Limit),
	}
	if q.Category != "" {
		parts = append(parts, "category="+url.QueryEscape(q.Category))
	}
	if q.SupplierID != "" {
		parts = append(parts, "supplier_id="+url.QueryEscape(q.SupplierID))
	}
	if q.MinPrice != nil {
		parts = append(parts, "min_price="+canonicalFloat(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		parts = append(parts, "max_price="+canonicalFloat(*q.MaxPrice))
	}
	sort.Strings(parts)
	return CacheKeyEquipmentListPrefix + sha256hex(strings.Join(parts, "&"))
}

// Каноничная десятичная запись без хвостовых нулей и экспоненты для обычных величин.
func canonicalFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sha256hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
