package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type EquipmentID = uuid.UUID

// Единица оборудования в каталоге. ID назначает хранилище при вставке,
// после создания запись неизменяема (update/delete вне скоупа сервиса).
type Equipment struct {
	ID           EquipmentID `json:"id"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Price        float64     `json:"price"`
	SupplierID   string      `json:"supplier_id"`
	Availability bool        `json:"availability"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Фильтры листинга. Пустая строка — фильтр не задан.
// Для цен нужен указатель: явный 0 — валидная граница, а не «нет фильтра».
type EquipmentFilter struct {
	Category   string
	SupplierID string
	MinPrice   *float64
	MaxPrice   *float64
}

// Пагинация по умолчанию
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Нормализованный дескриптор запроса листинга: фильтры + пагинация.
type ListQuery struct {
	EquipmentFilter
	Page  int
	Limit int
}

// Normalized приводит пагинацию к дефолтам. Ключ кеша строится только
// по нормализованному дескриптору, иначе page=0 и page=1 дали бы разные ключи.
func (q ListQuery) Normalized() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// Страница выдачи. Инвариант: TotalPages = ceil(Total/Limit), len(Equipments) <= Limit.
// Equipments всегда не-nil, чтобы в JSON уходил [], а не null.
type EquipmentPage struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int64       `json:"totalPages"`
	Equipments []Equipment `json:"equipments"`
}
