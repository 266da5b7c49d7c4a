package calculations

import (
	"github.com/shopspring/decimal"

	"github.com/semiekhin/rizalta-bot-dev/pkg/utils"
)

// Project рассчитывает 11-летний прогноз доходности для лота с известной полной стоимостью
func Project(area float64, cost int64) (*Projection, error) {
	if err := checkArea(area); err != nil {
		return nil, err
	}
	if cost <= 0 {
		return nil, invalid("cost", "стоимость должна быть положительной, получено %d", cost)
	}

	return project(area, int64(float64(cost)/area), cost), nil
}

// ProjectPerM2 рассчитывает прогноз по площади и цене за м²; стоимость = round(area × pricePerM2)
func ProjectPerM2(area float64, pricePerM2 int64) (*Projection, error) {
	if err := checkArea(area); err != nil {
		return nil, err
	}
	if pricePerM2 <= 0 {
		return nil, invalid("price_per_m2", "цена за м² должна быть положительной, получено %d", pricePerM2)
	}

	cost := utils.RoundRub(decimal.NewFromFloat(area).Mul(decimal.NewFromInt(pricePerM2)))
	if cost <= 0 {
		return nil, invalid("cost", "стоимость лота округлилась до нуля")
	}

	return project(area, pricePerM2, cost), nil
}

func checkArea(area float64) error {
	if !utils.IsFinite(area) {
		return invalid("area", "значение не является конечным числом")
	}
	if area < MinArea {
		return invalid("area", "площадь должна быть не меньше %g м², получено %v", MinArea, area)
	}
	return nil
}

func project(area float64, pricePerM2, cost int64) *Projection {
	costD := decimal.NewFromInt(cost)
	areaD := decimal.NewFromFloat(area)
	hundred := decimal.NewFromInt(100)

	result := &Projection{}
	var growthSum, cumulative, cumulativeRental int64
	var pctSum float64

	for i := 0; i < ProjectionYears; i++ {
		year := FirstYear + i

		// Рост стоимости: база - стоимость плюс рост всех предыдущих лет
		growthBase := costD.Add(decimal.NewFromInt(growthSum))
		growth := utils.RoundRub(growthBase.Mul(GrowthRate(year)))
		growthSum += growth

		row := YearlyProjection{Year: year, GrowthProfit: growth}

		if year >= RentalStartYear {
			rate := RentalRatePerM2(year)
			occupancy := Occupancy(year)
			days := DaysInYear(year)

			gross := utils.RoundRub(decimal.NewFromInt(int64(days)).
				Mul(decimal.NewFromInt(rate)).
				Mul(areaD).
				Mul(decimal.NewFromInt(int64(occupancy))).
				Div(hundred))
			// Чистая прибыль округляется от gross × (1 − ExpenseRatio), расходы - остаток
			net := utils.RoundRub(decimal.NewFromInt(gross).Mul(decimal.NewFromInt(1).Sub(ExpenseRatio)))

			row.DailyRate = utils.RoundRub(decimal.NewFromInt(rate).Mul(areaD))
			row.Occupancy = occupancy
			row.Days = days
			row.GrossRent = gross
			row.Expenses = gross - net
			row.RentalProfit = net
		}

		cumulativeRental += row.RentalProfit
		cumulative += row.RentalProfit + row.GrowthProfit

		row.CumulativeRental = cumulativeRental
		row.CumulativeProfit = cumulative
		row.CurrentValue = cost + growthSum
		row.RentalPct = utils.Percent(row.RentalProfit, cost)
		row.GrowthPct = utils.Percent(row.GrowthProfit, cost)
		row.TotalPct = row.RentalPct + row.GrowthPct
		pctSum += row.TotalPct

		result.Years[i] = row
	}

	s := ProjectionSummary{
		Area:       area,
		PricePerM2: pricePerM2,
		Cost:       cost,
	}
	for _, y := range result.Years {
		s.TotalGrossRent += y.GrossRent
		s.TotalExpenses += y.Expenses
		s.TotalRental += y.RentalProfit
		s.TotalGrowth += y.GrowthProfit
	}
	s.TotalProfit = s.TotalRental + s.TotalGrowth
	s.FinalValue = cost + s.TotalGrowth
	s.ROIPct = utils.Percent(s.TotalProfit, cost)
	s.AvgAnnualPct = pctSum / ProjectionYears

	if s.TotalProfit > 0 {
		s.PaybackYears = utils.Round2(float64(cost) / (float64(s.TotalProfit) / ProjectionYears))
	}
	if s.TotalRental > 0 {
		s.PaybackRentalYears = utils.Round2(float64(cost) / (float64(s.TotalRental) / OperatingYears))
	}

	result.Summary = s
	return result
}
