package lots

import (
	"strings"
)

// Lot представляет апартамент из каталога
type Lot struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	Code         string  `gorm:"uniqueIndex;size:32;not null" json:"code"`
	Building     int     `json:"building"`
	Floor        int     `json:"floor"`
	Rooms        int     `json:"rooms"`
	AreaM2       float64 `gorm:"column:area_m2;index" json:"area"`
	PriceRub     int64   `gorm:"column:price_rub" json:"price"`
	LayoutURL    string  `json:"layout_url,omitempty"`
	BlockSection int     `json:"block_section"`
	Status       string  `gorm:"size:32" json:"status,omitempty"`
}

// TableName сохраняет имя таблицы исходной базы
func (Lot) TableName() string {
	return "units"
}

// PricePerM2 возвращает цену за м², округлённую вниз до рубля
func (l Lot) PricePerM2() int64 {
	if l.AreaM2 <= 0 {
		return 0
	}
	return int64(float64(l.PriceRub) / l.AreaM2)
}

// Stats представляет сводку по каталогу
type Stats struct {
	TotalLots   int64   `json:"total_lots"`
	UniqueAreas int64   `json:"unique_areas"`
	MinPrice    int64   `json:"min_price"`
	MaxPrice    int64   `json:"max_price"`
	MinArea     float64 `json:"min_area"`
	MaxArea     float64 `json:"max_area"`
}

// кириллические буквы, совпадающие по начертанию с латинскими
var cyrillicToLatin = strings.NewReplacer(
	"А", "A", "В", "B", "Е", "E", "К", "K",
	"М", "M", "Н", "H", "О", "O", "Р", "P",
	"С", "S", "Т", "T", "У", "Y", "Х", "X",
)

// NormalizeCode приводит код лота к каноническому виду: без пробелов по краям,
// в верхнем регистре, кириллица заменена латиницей
func NormalizeCode(code string) string {
	return cyrillicToLatin.Replace(strings.ToUpper(strings.TrimSpace(code)))
}
