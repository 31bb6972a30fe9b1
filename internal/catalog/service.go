package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/EgorLis/equip-catalog/internal/domain"
)

// TTL списочных страниц — граница несвежести, которую обязаны терпеть клиенты.
// Не конфигурируется: кому нужна строже — инвалидирует явно.
const ListTTLSeconds = 60

// Service оркестрирует создание и листинг оборудования:
// create — запись в хранилище + инвалидация кеша списков,
// list — read-through через кеш с откатом в хранилище.
type Service struct {
	log   *log.Logger
	repo  domain.EquipmentRepo
	cache domain.Cache
}

func New(logger *log.Logger, repo domain.EquipmentRepo, cache domain.Cache) *Service {
	return &Service{log: logger, repo: repo, cache: cache}
}

// Параметры создания. Указатели отличают «поле не прислали» от явного нуля/false.
type CreateParams struct {
	Name         string
	Category     string
	Price        *float64
	SupplierID   string
	Availability *bool
}

func (p CreateParams) missingFields() []string {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Category == "" {
		missing = append(missing, "category")
	}
	if p.Price == nil {
		missing = append(missing, "price")
	}
	if p.SupplierID == "" {
		missing = append(missing, "supplier_id")
	}
	return missing
}

// Create валидирует обязательные поля, вставляет запись и широко инвалидирует
// кеш списков: новая запись может поменять total/содержимое произвольного числа
// комбинаций фильтров и страниц, поэтому сносим весь префикс (корректность
// важнее точности — недоинвалидация была бы багом, переинвалидация лишь стоит
// повторного запроса в хранилище).
func (s *Service) Create(ctx context.Context, p CreateParams) (domain.Equipment, error) {
	if missing := p.missingFields(); len(missing) > 0 {
		return domain.Equipment{}, fmt.Errorf("%w: missing fields %v", domain.ErrBadParams, missing)
	}

	availability := true
	if p.Availability != nil {
		availability = *p.Availability
	}

	created, err := s.repo.CreateEquipment(ctx, domain.Equipment{
		Name:         p.Name,
		Category:     p.Category,
		Price:        *p.Price,
		SupplierID:   p.SupplierID,
		Availability: availability,
	})
	if err != nil {
		s.log.Printf("create: insert failed: %v", err)
		return domain.Equipment{}, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	// Инвалидация после успешной вставки. Ошибка кеша не валит запрос:
	// устаревшие страницы всё равно умрут по TTL.
	if err := s.cache.DelByPrefix(ctx, domain.CacheKeyEquipmentListPrefix); err != nil {
		s.log.Printf("create: cache invalidation degraded: %v", err)
	}

	return created, nil
}

// List возвращает страницу выдачи по нормализованному дескриптору.
// Попадание в кеш — отдаём как есть; промах или деградация кеша — идём в
// хранилище, пересобираем страницу и кладём её в кеш на ListTTLSeconds.
func (s *Service) List(ctx context.Context, q domain.ListQuery) (domain.EquipmentPage, error) {
	q = q.Normalized()
	key := domain.CacheKeyEquipmentList(q)

	if b, err := s.cache.Get(ctx, key); err != nil {
		// недоступный кеш = промах, никогда не ошибка для клиента
		s.log.Printf("list: cache degraded on get %q: %v", key, err)
	} else if len(b) > 0 {
		var page domain.EquipmentPage
		if err := json.Unmarshal(b, &page); err == nil {
			return page, nil
		}
		s.log.Printf("list: corrupt cache entry %q, refetching: %v", key, err)
	}

	skip := (q.Page - 1) * q.Limit
	items, err := s.repo.EquipmentList(ctx, q.EquipmentFilter, skip, q.Limit)
	if err != nil {
		s.log.Printf("list: query failed: %v", err)
		return domain.EquipmentPage{}, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	total, err := s.repo.EquipmentCount(ctx, q.EquipmentFilter)
	if err != nil {
		s.log.Printf("list: count failed: %v", err)
		return domain.EquipmentPage{}, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	if items == nil {
		items = []domain.Equipment{}
	}
	page := domain.EquipmentPage{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: (total + int64(q.Limit) - 1) / int64(q.Limit),
		Equipments: items,
	}

	if b, err := json.Marshal(page); err == nil {
		if err := s.cache.Set(ctx, key, b, ListTTLSeconds); err != nil {
			s.log.Printf("list: cache degraded on set %q: %v", key, err)
		}
	}

	return page, nil
}
