package calculations

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FirstYear       = 2025
	LastYear        = 2035
	ProjectionYears = LastYear - FirstYear + 1
	RentalStartYear = 2028
	OperatingYears  = LastYear - RentalStartYear + 1

	// MinArea - наименьшая площадь лота, м²; меньшие значения переполняют цену за м²
	MinArea = 1.0

	// ServiceFee вычитается из цены до расчёта базы рассрочки
	ServiceFee int64 = 150_000

	Fixed12Tier40 int64 = 200_000
	Fixed12Tier50 int64 = 100_000
	Fixed24Tier40 int64 = 250_000
	Fixed24Tier50 int64 = 150_000
)

var (
	// ExpenseRatio - доля операционных расходов от выручки аренды
	ExpenseRatio = decimal.RequireFromString("0.50")

	milestoneRate = decimal.RequireFromString("0.10")

	tierRates = [3]decimal.Decimal{
		decimal.RequireFromString("0.30"),
		decimal.RequireFromString("0.40"),
		decimal.RequireFromString("0.50"),
	}

	markupRates = [3]decimal.Decimal{
		decimal.RequireFromString("0.12"),
		decimal.RequireFromString("0.09"),
		decimal.RequireFromString("0.06"),
	}
)

// rentalRatePerM2 - стоимость суток за м², руб
var rentalRatePerM2 = map[int]int64{
	2028: 501, 2029: 546, 2030: 594, 2031: 648,
	2032: 704, 2033: 766, 2034: 834, 2035: 907,
}

// occupancyPct - загрузка отеля, %
var occupancyPct = map[int]int{
	2028: 40, 2029: 60, 2030: 70, 2031: 70,
	2032: 70, 2033: 70, 2034: 70, 2035: 70,
}

// GrowthRate возвращает ставку роста стоимости для года.
// 2025 считается от стоимости, остальные годы - от стоимости с накопленным ростом.
func GrowthRate(year int) decimal.Decimal {
	switch {
	case year == 2025:
		return decimal.RequireFromString("0.18")
	case year == 2026 || year == 2027:
		return decimal.RequireFromString("0.20")
	case year == 2028:
		return decimal.RequireFromString("0.10")
	default:
		return decimal.RequireFromString("0.088")
	}
}

// RentalRatePerM2 возвращает ставку аренды за м² в сутки (0 до начала эксплуатации)
func RentalRatePerM2(year int) int64 {
	return rentalRatePerM2[year]
}

// Occupancy возвращает загрузку отеля в процентах (0 до начала эксплуатации)
func Occupancy(year int) int {
	return occupancyPct[year]
}

// DaysInYear возвращает точное число дней в календарном году
func DaysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// TierPercents - варианты первоначального взноса
var TierPercents = [3]int{30, 40, 50}

// MarkupPercents - удорожание 24-месячной рассрочки по вариантам
var MarkupPercents = [3]int{12, 9, 6}
