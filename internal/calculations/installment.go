package calculations

import (
	"github.com/shopspring/decimal"

	"github.com/semiekhin/rizalta-bot-dev/pkg/utils"
)

func checkInstallmentPrice(price int64) error {
	if price <= 0 {
		return invalid("price", "цена должна быть положительной, получено %d", price)
	}
	if price < ServiceFee {
		return invalid("price", "цена %d меньше сервисного сбора %d", price, ServiceFee)
	}
	return nil
}

func downPayment(base int64, tier int) int64 {
	return utils.RoundRub(decimal.NewFromInt(base).Mul(tierRates[tier]))
}

// Calculate12 рассчитывает рассрочку 0% на 12 месяцев по трём вариантам первоначального взноса
func Calculate12(price int64) (*Installment12, error) {
	if err := checkInstallmentPrice(price); err != nil {
		return nil, err
	}

	base := price - ServiceFee
	plan := &Installment12{Price: price, Base: base}

	// 30%: равные платежи
	pv30 := downPayment(base, 0)
	monthly30 := utils.RoundRub(decimal.NewFromInt(base - pv30).Div(decimal.NewFromInt(12)))
	plan.Tiers[0] = Tier12{
		Percent:       TierPercents[0],
		DownPayment:   pv30,
		MonthlyAmount: monthly30,
		FixedPayments: 11,
		FinalPayment:  monthly30,
	}

	// 40% и 50%: 11 фиксированных платежей, 12-й забирает остаток (может быть отрицательным)
	for i, fixed := range [2]int64{Fixed12Tier40, Fixed12Tier50} {
		tier := i + 1
		pv := downPayment(base, tier)
		plan.Tiers[tier] = Tier12{
			Percent:       TierPercents[tier],
			DownPayment:   pv,
			MonthlyAmount: fixed,
			FixedPayments: 11,
			FinalPayment:  (base - pv) - 11*fixed,
		}
	}

	return plan, nil
}

// Calculate24 рассчитывает рассрочку на 24 месяца с удорожанием 12/9/6%
func Calculate24(price int64) (*Installment24, error) {
	if err := checkInstallmentPrice(price); err != nil {
		return nil, err
	}

	base := price - ServiceFee
	milestone := utils.RoundRub(decimal.NewFromInt(base).Mul(milestoneRate))
	plan := &Installment24{Price: price, Base: base, MilestonePayment: milestone}

	pv30 := downPayment(base, 0)
	remaining30 := base - pv30
	markup30 := utils.RoundRub(decimal.NewFromInt(remaining30).Mul(markupRates[0]))
	monthly30 := utils.RoundRub(decimal.NewFromInt(remaining30 + markup30).Div(decimal.NewFromInt(24)))
	plan.Tiers[0] = Tier24{
		Percent:               TierPercents[0],
		MarkupRate:            markupRates[0].InexactFloat64(),
		DownPayment:           pv30,
		Remaining:             remaining30,
		MonthlyAmount:         monthly30,
		MarkupAmount:          markup30,
		FinalTotalPrice:       price + markup30,
		FinalBalancingPayment: monthly30,
	}

	// 40% и 50%: два блока по 11 фиксированных платежей, 12-й месяц - 10% базы,
	// 24-й - балансирующий платёж. Платёж 12-го месяца вычитается один раз.
	for i, fixed := range [2]int64{Fixed24Tier40, Fixed24Tier50} {
		tier := i + 1
		pv := downPayment(base, tier)
		remaining := base - pv
		markup := utils.RoundRub(decimal.NewFromInt(remaining).Mul(markupRates[tier]))
		paid := 11*fixed + milestone + 11*fixed
		plan.Tiers[tier] = Tier24{
			Percent:               TierPercents[tier],
			MarkupRate:            markupRates[tier].InexactFloat64(),
			DownPayment:           pv,
			Remaining:             remaining,
			MonthlyAmount:         fixed,
			MarkupAmount:          markup,
			FinalTotalPrice:       price + markup,
			MilestonePayment:      milestone,
			FinalBalancingPayment: (remaining + markup) - paid,
		}
	}

	return plan, nil
}

// EqualPayments сообщает, что все 12 платежей одинаковы (вариант 30%)
func (t Tier12) EqualPayments() bool {
	return t.Percent == TierPercents[0]
}

// Schedule разворачивает вариант в помесячный график
func (t Tier12) Schedule() []Payment {
	schedule := make([]Payment, 0, 13)
	schedule = append(schedule, Payment{Month: 0, Amount: t.DownPayment, Kind: PaymentDown})
	for m := 1; m <= t.FixedPayments; m++ {
		schedule = append(schedule, Payment{Month: m, Amount: t.MonthlyAmount, Kind: PaymentMonthly})
	}
	last := PaymentBalancing
	if t.EqualPayments() {
		last = PaymentMonthly
	}
	schedule = append(schedule, Payment{Month: t.FixedPayments + 1, Amount: t.FinalPayment, Kind: last})
	return schedule
}

// EqualPayments сообщает, что все 24 платежа одинаковы (вариант 30%)
func (t Tier24) EqualPayments() bool {
	return t.MilestonePayment == 0 && t.Percent == TierPercents[0]
}

// Schedule разворачивает вариант в помесячный график
func (t Tier24) Schedule() []Payment {
	schedule := make([]Payment, 0, 25)
	schedule = append(schedule, Payment{Month: 0, Amount: t.DownPayment, Kind: PaymentDown})

	if t.EqualPayments() {
		for m := 1; m <= 24; m++ {
			schedule = append(schedule, Payment{Month: m, Amount: t.MonthlyAmount, Kind: PaymentMonthly})
		}
		return schedule
	}

	for m := 1; m <= 23; m++ {
		if m == 12 {
			schedule = append(schedule, Payment{Month: m, Amount: t.MilestonePayment, Kind: PaymentMilestone})
			continue
		}
		schedule = append(schedule, Payment{Month: m, Amount: t.MonthlyAmount, Kind: PaymentMonthly})
	}
	schedule = append(schedule, Payment{Month: 24, Amount: t.FinalBalancingPayment, Kind: PaymentBalancing})
	return schedule
}

// Total суммирует все платежи графика, включая первый взнос
func Total(schedule []Payment) int64 {
	var total int64
	for _, p := range schedule {
		total += p.Amount
	}
	return total
}
