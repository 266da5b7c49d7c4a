package format

import (
	"fmt"
	"strings"

	"github.com/semiekhin/rizalta-bot-dev/internal/calculations"
	"github.com/semiekhin/rizalta-bot-dev/internal/lots"
)

// RenderInvestmentText формирует краткий расчёт доходности для чата
func RenderInvestmentText(code string, p *calculations.Projection) string {
	s := p.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Инвестиционный расчёт: %s</b>\n\n", code)
	fmt.Fprintf(&b, "📐 Площадь: %s м²\n", Area(s.Area))
	fmt.Fprintf(&b, "💵 Цена за м²: %s\n", Money(s.PricePerM2))
	fmt.Fprintf(&b, "💰 Стоимость: %s\n\n", Money(s.Cost))

	fmt.Fprintf(&b, "🎯 <b>Итого за %d лет (%d-%d):</b>\n\n",
		calculations.ProjectionYears, calculations.FirstYear, calculations.LastYear)
	fmt.Fprintf(&b, "- Прибыль от аренды: %s\n", Money(s.TotalRental))
	fmt.Fprintf(&b, "- Прибыль от роста: %s\n", Money(s.TotalGrowth))
	fmt.Fprintf(&b, "- <b>Общая прибыль: %s</b>\n\n", Money(s.TotalProfit))

	fmt.Fprintf(&b, "📊 Доходность: <b>%s</b> за %d лет\n", Percent1(s.ROIPct), calculations.ProjectionYears)
	fmt.Fprintf(&b, "📊 Средняя годовая: <b>%s</b>\n", Percent1(s.AvgAnnualPct))
	fmt.Fprintf(&b, "🏠 Стоимость в %d: ~%s\n\n", calculations.LastYear, Money(s.FinalValue))
	b.WriteString("<i>Подробный расчёт в файле Excel</i>")

	return b.String()
}

// RenderYearTable формирует погодовую таблицу; аренда до начала эксплуатации выводится прочерком
func RenderYearTable(p *calculations.Projection) string {
	var b strings.Builder
	b.WriteString("📅 <b>Прибыль по годам</b>\n\n")
	b.WriteString("Год | Аренда | Рост стоимости | % в год\n")

	for _, y := range p.Years {
		fmt.Fprintf(&b, "%d | %s | %s | %s\n",
			y.Year,
			MoneyOrDash(y.RentalProfit, y.Operating()),
			Money(y.GrowthProfit),
			Percent2(y.TotalPct),
		)
	}

	s := p.Summary
	fmt.Fprintf(&b, "\nИтого | %s | %s | %s в среднем\n",
		Money(s.TotalRental), Money(s.TotalGrowth), Percent2(s.AvgAnnualPct))
	fmt.Fprintf(&b, "Окупаемость: %.2f лет (от сдачи: %.2f)", s.PaybackYears, s.PaybackRentalYears)

	return b.String()
}

// RenderInstallmentText формирует варианты рассрочки для чата; i24 может быть nil
func RenderInstallmentText(lot *lots.Lot, i12 *calculations.Installment12, i24 *calculations.Installment24) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💳 <b>Рассрочка: %s</b>\n", lot.Code)
	fmt.Fprintf(&b, "📐 %s м² • %s\n\n", Area(lot.AreaM2), Money(lot.PriceRub))

	b.WriteString("<b>Рассрочка 0% на 12 месяцев</b>\n")
	for _, t := range i12.Tiers {
		fmt.Fprintf(&b, "• ПВ %d%%: %s\n", t.Percent, Money(t.DownPayment))
		if t.EqualPayments() {
			fmt.Fprintf(&b, "  12 мес × %s\n", Money(t.MonthlyAmount))
			continue
		}
		fmt.Fprintf(&b, "  %d мес × %s, 12-й: %s\n", t.FixedPayments, Money(t.MonthlyAmount), Money(t.FinalPayment))
	}

	if i24 != nil {
		b.WriteString("\n<b>Рассрочка на 24 месяца</b>\n")
		for i, t := range i24.Tiers {
			fmt.Fprintf(&b, "• ПВ %d%% (+%d%%): %s\n", t.Percent, calculations.MarkupPercents[i], Money(t.DownPayment))
			if t.EqualPayments() {
				fmt.Fprintf(&b, "  24 мес × %s\n", Money(t.MonthlyAmount))
			} else {
				fmt.Fprintf(&b, "  11 × %s + 12-й: %s\n", Money(t.MonthlyAmount), Money(t.MilestonePayment))
				fmt.Fprintf(&b, "  11 × %s + 24-й: %s\n", Money(t.MonthlyAmount), Money(t.FinalBalancingPayment))
			}
			fmt.Fprintf(&b, "  Итого: %s\n", Money(t.FinalTotalPrice))
		}
	}

	fmt.Fprintf(&b, "\n<i>* Расчёт с учётом вычета %s</i>", Money(calculations.ServiceFee))
	return b.String()
}
