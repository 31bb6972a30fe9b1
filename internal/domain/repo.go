package domain

import "context"

// Хранилище записей каталога. CreateEquipment — единичная атомарная вставка,
// List/Count принимают один и тот же фильтр (ключ кеша строится по нему же).
type EquipmentRepo interface {
	Close()
	Ping(context.Context) error
	CreateEquipment(ctx context.Context, e Equipment) (Equipment, error)
	// skip/limit — смещение и размер страницы; skip за пределами выборки даёт пустой срез.
	EquipmentList(ctx context.Context, f EquipmentFilter, skip, limit int) ([]Equipment, error)
	EquipmentCount(ctx context.Context, f EquipmentFilter) (int64, error)
}
