package calculations

// YearlyProjection представляет одну строку 11-летнего прогноза
type YearlyProjection struct {
	Year int `json:"year"`
	// DailyRate - ставка за сутки, округлённая для показа; GrossRent считается от точной ставки
	DailyRate        int64   `json:"daily_rate,omitempty"`
	Occupancy        int     `json:"occupancy,omitempty"`
	Days             int     `json:"days,omitempty"`
	GrossRent        int64   `json:"gross_rent"`
	Expenses         int64   `json:"expenses"`
	RentalProfit     int64   `json:"rental_profit"`
	CumulativeRental int64   `json:"cumulative_rental"`
	GrowthProfit     int64   `json:"growth_profit"`
	CumulativeProfit int64   `json:"cumulative_profit"`
	CurrentValue     int64   `json:"current_value"`
	RentalPct        float64 `json:"rental_pct"`
	GrowthPct        float64 `json:"growth_pct"`
	TotalPct         float64 `json:"total_pct"`
}

// Operating сообщает, сдаётся ли апартамент в этом году
func (y YearlyProjection) Operating() bool {
	return y.Year >= RentalStartYear
}

// ProjectionSummary представляет итоги прогноза
type ProjectionSummary struct {
	Area               float64 `json:"area"`
	PricePerM2         int64   `json:"price_per_m2"`
	Cost               int64   `json:"cost"`
	TotalGrossRent     int64   `json:"total_gross_rent"`
	TotalExpenses      int64   `json:"total_expenses"`
	TotalRental        int64   `json:"total_rental"`
	TotalGrowth        int64   `json:"total_growth"`
	TotalProfit        int64   `json:"total_profit"`
	FinalValue         int64   `json:"final_value"`
	ROIPct             float64 `json:"roi_pct"`
	AvgAnnualPct       float64 `json:"avg_annual_pct"`
	PaybackYears       float64 `json:"payback_years"`
	PaybackRentalYears float64 `json:"payback_rental_years"`
}

// Projection представляет результат инвестиционного расчёта
type Projection struct {
	Summary ProjectionSummary                 `json:"summary"`
	Years   [ProjectionYears]YearlyProjection `json:"years"`
}

// PaymentKind описывает назначение платежа в графике
type PaymentKind string

const (
	PaymentDown      PaymentKind = "down_payment"
	PaymentMonthly   PaymentKind = "monthly"
	PaymentMilestone PaymentKind = "milestone"
	PaymentBalancing PaymentKind = "balancing"
)

// Payment представляет один платёж в графике рассрочки (месяц 0 - первый взнос)
type Payment struct {
	Month  int         `json:"month"`
	Amount int64       `json:"amount"`
	Kind   PaymentKind `json:"kind"`
}

// Tier12 представляет вариант 12-месячной рассрочки
type Tier12 struct {
	Percent       int   `json:"percent"`
	DownPayment   int64 `json:"down_payment"`
	MonthlyAmount int64 `json:"monthly_amount"`
	// FixedPayments - число одинаковых платежей перед последним
	FixedPayments int   `json:"fixed_payments"`
	FinalPayment  int64 `json:"final_payment"`
}

// Installment12 представляет рассрочку 0% на 12 месяцев
type Installment12 struct {
	Price int64     `json:"price"`
	Base  int64     `json:"base"`
	Tiers [3]Tier12 `json:"tiers"`
}

// Tier24 представляет вариант 24-месячной рассрочки с удорожанием
type Tier24 struct {
	Percent               int     `json:"percent"`
	MarkupRate            float64 `json:"markup_rate"`
	DownPayment           int64   `json:"down_payment"`
	Remaining             int64   `json:"remaining"`
	MonthlyAmount         int64   `json:"monthly_amount"`
	MarkupAmount          int64   `json:"markup_amount"`
	FinalTotalPrice       int64   `json:"final_total_price"`
	MilestonePayment      int64   `json:"milestone_payment"`
	FinalBalancingPayment int64   `json:"final_balancing_payment"`
}

// Installment24 представляет рассрочку на 24 месяца
type Installment24 struct {
	Price            int64     `json:"price"`
	Base             int64     `json:"base"`
	MilestonePayment int64     `json:"milestone_payment"`
	Tiers            [3]Tier24 `json:"tiers"`
}
