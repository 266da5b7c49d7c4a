package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// RoundRub округляет денежную величину до целого рубля (половина - от нуля, как ROUND в таблицах)
func RoundRub(value decimal.Decimal) int64 {
	return value.Round(0).IntPart()
}

// Percent возвращает part/whole*100; при нулевом знаменателе - 0
func Percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
