package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/EgorLis/equip-catalog/internal/domain"
)

func (r *PGRepo) CreateEquipment(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.equipment", r.schema)).
		Columns("name", "category", "price", "supplier_id", "availability").
		Values(e.Name, e.Category, e.Price, e.SupplierID, e.Availability).
		Suffix("RETURNING id, name, category, price, supplier_id, availability, created_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateEquipment", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Equipment
	if err := row.Scan(
		&out.ID, &out.Name, &out.Category, &out.Price,
		&out.SupplierID, &out.Availability, &out.CreatedAt,
	); err != nil {
		r.logger.Printf("CreateEquipment scan error after %s: %v", time.Since(start), err)
		return domain.Equipment{}, err
	}
	r.logger.Printf("CreateEquipment ok in %s id=%s name=%q", time.Since(start), out.ID, out.Name)
	return out, nil
}

// Общая часть WHERE для листинга и подсчёта: один фильтр — одна семантика.
func applyFilter(sb sq.SelectBuilder, f domain.EquipmentFilter) sq.SelectBuilder {
	if f.Category != "" {
		sb = sb.Where(sq.Eq{"category": f.Category})
	}
	if f.SupplierID != "" {
		sb = sb.Where(sq.Eq{"supplier_id": f.SupplierID})
	}
	if f.MinPrice != nil {
		sb = sb.Where(sq.GtOrEq{"price": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		sb = sb.Where(sq.LtOrEq{"price": *f.MaxPrice})
	}
	return sb
}

// EquipmentList отдаёт срез выборки. Порядок фиксируем по (created_at, id),
// иначе OFFSET-пагинация между запросами «плывёт».
func (r *PGRepo) EquipmentList(ctx context.Context, f domain.EquipmentFilter, skip, limit int) ([]domain.Equipment, error) {
	sb := r.qb().Select(
		"id", "name", "category", "price", "supplier_id", "availability", "created_at",
	).From(fmt.Sprintf("%s.equipment", r.schema))
	sb = applyFilter(sb, f).
		OrderBy("created_at ASC", "id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit))

	sqlStr, args, _ := sb.ToSql()
	r.logSQL("EquipmentList", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("EquipmentList query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Category, &e.Price,
			&e.SupplierID, &e.Availability, &e.CreatedAt,
		); err != nil {
			r.logger.Printf("EquipmentList scan error: %v", err)
			return nil, err
		}
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("EquipmentList rows error: %v", err)
		return nil, err
	}
	r.logger.Printf("EquipmentList ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

func (r *PGRepo) EquipmentCount(ctx context.Context, f domain.EquipmentFilter) (int64, error) {
	sb := r.qb().Select("COUNT(*)").From(fmt.Sprintf("%s.equipment", r.schema))
	sb = applyFilter(sb, f)

	sqlStr, args, _ := sb.ToSql()
	r.logSQL("EquipmentCount", sqlStr, args)

	start := time.Now()
	var total int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		r.logger.Printf("EquipmentCount scan error after %s: %v", time.Since(start), err)
		return 0, err
	}
	r.logger.Printf("EquipmentCount ok in %s total=%d", time.Since(start), total)
	return total, nil
}
