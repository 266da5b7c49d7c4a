package lots

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AreaTolerance - допуск при поиске лота по площади, м²
const AreaTolerance = 0.05

// Repository даёт доступ к каталогу лотов
type Repository struct {
	DB *gorm.DB
}

// NewRepository создаёт репозиторий поверх открытой базы
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// FindByCode ищет лот по коду как есть и в латинском написании
func (r *Repository) FindByCode(ctx context.Context, code string) (*Lot, error) {
	raw := strings.ToUpper(strings.TrimSpace(code))
	if raw == "" {
		return nil, notFoundCode(code)
	}
	latin := NormalizeCode(code)

	var lot Lot
	err := r.DB.WithContext(ctx).
		Where("code = ? OR code = ?", raw, latin).
		First(&lot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundCode(code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find lot %q: %w", code, err)
	}
	return &lot, nil
}

// FindByArea возвращает самый дешёвый лот, площадь которого отличается
// от заданной меньше чем на AreaTolerance
func (r *Repository) FindByArea(ctx context.Context, area float64) (*Lot, error) {
	unique, err := r.UniqueLots(ctx)
	if err != nil {
		return nil, err
	}
	for i := range unique {
		if math.Abs(unique[i].AreaM2-area) < AreaTolerance {
			return &unique[i], nil
		}
	}
	return nil, notFoundArea(area)
}

// UniqueLots возвращает по одному лоту на каждую площадь (с минимальной ценой),
// упорядоченные по площади
func (r *Repository) UniqueLots(ctx context.Context) ([]Lot, error) {
	var all []Lot
	err := r.DB.WithContext(ctx).
		Order("area_m2").Order("price_rub").Order("code").
		Find(&all).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}

	unique := make([]Lot, 0, len(all))
	for _, lot := range all {
		if n := len(unique); n > 0 && unique[n-1].AreaM2 == lot.AreaM2 {
			continue
		}
		unique = append(unique, lot)
	}
	return unique, nil
}

// ByAreaRange фильтрует уникальные лоты по площади (границы включительно)
func (r *Repository) ByAreaRange(ctx context.Context, minArea, maxArea float64) ([]Lot, error) {
	return r.filterUnique(ctx, func(l Lot) bool {
		return l.AreaM2 >= minArea && l.AreaM2 <= maxArea
	})
}

// ByBudgetRange фильтрует уникальные лоты по цене (границы включительно)
func (r *Repository) ByBudgetRange(ctx context.Context, minBudget, maxBudget int64) ([]Lot, error) {
	return r.filterUnique(ctx, func(l Lot) bool {
		return l.PriceRub >= minBudget && l.PriceRub <= maxBudget
	})
}

func (r *Repository) filterUnique(ctx context.Context, keep func(Lot) bool) ([]Lot, error) {
	unique, err := r.UniqueLots(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]Lot, 0, len(unique))
	for _, lot := range unique {
		if keep(lot) {
			filtered = append(filtered, lot)
		}
	}
	return filtered, nil
}

// All возвращает весь каталог по корпусам и этажам
func (r *Repository) All(ctx context.Context) ([]Lot, error) {
	var all []Lot
	err := r.DB.WithContext(ctx).
		Order("building").Order("floor").Order("code").
		Find(&all).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	return all, nil
}

// Stats считает сводку по каталогу
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var row struct {
		Total       int64
		UniqueAreas int64
		MinPrice    *int64
		MaxPrice    *int64
		MinArea     *float64
		MaxArea     *float64
	}
	err := r.DB.WithContext(ctx).Model(&Lot{}).
		Select("COUNT(*) AS total, COUNT(DISTINCT area_m2) AS unique_areas, " +
			"MIN(price_rub) AS min_price, MAX(price_rub) AS max_price, " +
			"MIN(area_m2) AS min_area, MAX(area_m2) AS max_area").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}

	stats := &Stats{TotalLots: row.Total, UniqueAreas: row.UniqueAreas}
	if row.MinPrice != nil {
		stats.MinPrice = *row.MinPrice
	}
	if row.MaxPrice != nil {
		stats.MaxPrice = *row.MaxPrice
	}
	if row.MinArea != nil {
		stats.MinArea = *row.MinArea
	}
	if row.MaxArea != nil {
		stats.MaxArea = *row.MaxArea
	}
	return stats, nil
}

// Upsert сохраняет лоты, обновляя существующие по коду
func (r *Repository) Upsert(ctx context.Context, lots ...Lot) error {
	if len(lots) == 0 {
		return nil
	}
	rows := make([]Lot, len(lots))
	for i, lot := range lots {
		lot.ID = 0
		lot.Code = NormalizeCode(lot.Code)
		rows[i] = lot
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"building", "floor", "rooms", "area_m2", "price_rub",
			"layout_url", "block_section", "status",
		}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to upsert lots: %w", err)
	}
	return nil
}
