package format

import (
	"strconv"
	"strings"
)

const (
	// nbsp разделяет разряды, чтобы сумма не переносилась по строкам
	nbsp     = "\u00a0"
	currency = "₽"
	// Dash выводится вместо отсутствующего значения
	Dash = "—"
)

// Number группирует разряды неразрывным пробелом: 15 300 000
func Number(v int64) string {
	digits := strconv.FormatInt(v, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(nbsp)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Money форматирует сумму в рублях: 15 300 000 ₽
func Money(v int64) string {
	return Number(v) + " " + currency
}

// MoneyOrDash выводит прочерк, если значение отсутствует
func MoneyOrDash(v int64, present bool) string {
	if !present {
		return Dash
	}
	return Money(v)
}

// Percent1 форматирует процент с одним знаком: 31.5%
func Percent1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// Percent2 форматирует процент с двумя знаками: 18.00%
func Percent2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// PriceShort форматирует цену в миллионах: 15.2 млн
func PriceShort(price int64) string {
	return strconv.FormatFloat(float64(price)/1_000_000, 'f', 1, 64) + " млн"
}

// Area форматирует площадь без лишних нулей: 35.5
func Area(area float64) string {
	return strconv.FormatFloat(area, 'f', -1, 64)
}
