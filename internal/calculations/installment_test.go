package calculations

import (
	"errors"
	"testing"
)

func TestCalculate12(t *testing.T) {
	tests := []struct {
		name      string
		price     int64
		wantError bool
		want      [3]Tier12
	}{
		{
			name:  "price 15.3 mln",
			price: 15300000,
			want: [3]Tier12{
				{Percent: 30, DownPayment: 4545000, MonthlyAmount: 883750, FixedPayments: 11, FinalPayment: 883750},
				{Percent: 40, DownPayment: 6060000, MonthlyAmount: 200000, FixedPayments: 11, FinalPayment: 6890000},
				{Percent: 50, DownPayment: 7575000, MonthlyAmount: 100000, FixedPayments: 11, FinalPayment: 6475000},
			},
		},
		{
			name:  "price 21 726 000",
			price: 21726000,
			want: [3]Tier12{
				{Percent: 30, DownPayment: 6472800, MonthlyAmount: 1258600, FixedPayments: 11, FinalPayment: 1258600},
				{Percent: 40, DownPayment: 8630400, MonthlyAmount: 200000, FixedPayments: 11, FinalPayment: 10745600},
				{Percent: 50, DownPayment: 10788000, MonthlyAmount: 100000, FixedPayments: 11, FinalPayment: 9688000},
			},
		},
		{
			name:  "half rouble rounds away from zero",
			price: 12345679,
			want: [3]Tier12{
				{Percent: 30, DownPayment: 3658704, MonthlyAmount: 711415, FixedPayments: 11, FinalPayment: 711415},
				{Percent: 40, DownPayment: 4878272, MonthlyAmount: 200000, FixedPayments: 11, FinalPayment: 5117407},
				{Percent: 50, DownPayment: 6097840, MonthlyAmount: 100000, FixedPayments: 11, FinalPayment: 4997839},
			},
		},
		{
			name:  "price equals service fee",
			price: ServiceFee,
			want: [3]Tier12{
				{Percent: 30, FixedPayments: 11},
				{Percent: 40, MonthlyAmount: 200000, FixedPayments: 11, FinalPayment: -2200000},
				{Percent: 50, MonthlyAmount: 100000, FixedPayments: 11, FinalPayment: -1100000},
			},
		},
		{name: "price below service fee", price: 149999, wantError: true},
		{name: "zero price", price: 0, wantError: true},
		{name: "negative price", price: -15300000, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Calculate12(tt.price)
			if (err != nil) != tt.wantError {
				t.Fatalf("Calculate12() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if plan.Base != tt.price-ServiceFee {
				t.Errorf("expected base %d, got %d", tt.price-ServiceFee, plan.Base)
			}
			for i, want := range tt.want {
				if plan.Tiers[i] != want {
					t.Errorf("tier %d = %+v, want %+v", i, plan.Tiers[i], want)
				}
			}
		})
	}
}

func TestCalculate12Schedule(t *testing.T) {
	for _, price := range []int64{15300000, 21726000, 12345679, ServiceFee} {
		plan, err := Calculate12(price)
		if err != nil {
			t.Fatalf("Calculate12(%d) error = %v", price, err)
		}

		for _, tier := range plan.Tiers {
			schedule := tier.Schedule()
			if len(schedule) != 13 {
				t.Fatalf("expected 13 payments, got %d", len(schedule))
			}
			if schedule[0].Kind != PaymentDown || schedule[0].Amount != tier.DownPayment {
				t.Errorf("month 0 must be the down payment")
			}

			total := Total(schedule)
			if tier.EqualPayments() {
				// Равные платежи: расхождение не больше погрешности округления 12 платежей
				if diff := total - plan.Base; diff < -12 || diff > 12 {
					t.Errorf("price %d tier %d: residual %d exceeds rounding", price, tier.Percent, diff)
				}
				continue
			}
			if total != plan.Base {
				t.Errorf("price %d tier %d: schedule total %d != base %d", price, tier.Percent, total, plan.Base)
			}
			if schedule[12].Kind != PaymentBalancing {
				t.Errorf("last payment of tier %d must be balancing", tier.Percent)
			}
		}
	}
}

func TestCalculate24(t *testing.T) {
	tests := []struct {
		name      string
		price     int64
		milestone int64
		want      [3]Tier24
	}{
		{
			name:      "price 15.3 mln",
			price:     15300000,
			milestone: 1515000,
			want: [3]Tier24{
				{Percent: 30, MarkupRate: 0.12, DownPayment: 4545000, Remaining: 10605000, MonthlyAmount: 494900,
					MarkupAmount: 1272600, FinalTotalPrice: 16572600, FinalBalancingPayment: 494900},
				{Percent: 40, MarkupRate: 0.09, DownPayment: 6060000, Remaining: 9090000, MonthlyAmount: 250000,
					MarkupAmount: 818100, FinalTotalPrice: 16118100, MilestonePayment: 1515000, FinalBalancingPayment: 2893100},
				{Percent: 50, MarkupRate: 0.06, DownPayment: 7575000, Remaining: 7575000, MonthlyAmount: 150000,
					MarkupAmount: 454500, FinalTotalPrice: 15754500, MilestonePayment: 1515000, FinalBalancingPayment: 3214500},
			},
		},
		{
			name:      "price 21 726 000",
			price:     21726000,
			milestone: 2157600,
			want: [3]Tier24{
				{Percent: 30, MarkupRate: 0.12, DownPayment: 6472800, Remaining: 15103200, MonthlyAmount: 704816,
					MarkupAmount: 1812384, FinalTotalPrice: 23538384, FinalBalancingPayment: 704816},
				{Percent: 40, MarkupRate: 0.09, DownPayment: 8630400, Remaining: 12945600, MonthlyAmount: 250000,
					MarkupAmount: 1165104, FinalTotalPrice: 22891104, MilestonePayment: 2157600, FinalBalancingPayment: 6453104},
				{Percent: 50, MarkupRate: 0.06, DownPayment: 10788000, Remaining: 10788000, MonthlyAmount: 150000,
					MarkupAmount: 647280, FinalTotalPrice: 22373280, MilestonePayment: 2157600, FinalBalancingPayment: 5977680},
			},
		},
		{
			name:      "half rouble rounds away from zero",
			price:     12345679,
			milestone: 1219568,
			want: [3]Tier24{
				{Percent: 30, MarkupRate: 0.12, DownPayment: 3658704, Remaining: 8536975, MonthlyAmount: 398392,
					MarkupAmount: 1024437, FinalTotalPrice: 13370116, FinalBalancingPayment: 398392},
				{Percent: 40, MarkupRate: 0.09, DownPayment: 4878272, Remaining: 7317407, MonthlyAmount: 250000,
					MarkupAmount: 658567, FinalTotalPrice: 13004246, MilestonePayment: 1219568, FinalBalancingPayment: 1256406},
				{Percent: 50, MarkupRate: 0.06, DownPayment: 6097840, Remaining: 6097839, MonthlyAmount: 150000,
					MarkupAmount: 365870, FinalTotalPrice: 12711549, MilestonePayment: 1219568, FinalBalancingPayment: 1944141},
			},
		},
		{
			name:  "price equals service fee",
			price: ServiceFee,
			want: [3]Tier24{
				{Percent: 30, MarkupRate: 0.12, FinalTotalPrice: ServiceFee},
				{Percent: 40, MarkupRate: 0.09, MonthlyAmount: 250000, FinalTotalPrice: ServiceFee, FinalBalancingPayment: -5500000},
				{Percent: 50, MarkupRate: 0.06, MonthlyAmount: 150000, FinalTotalPrice: ServiceFee, FinalBalancingPayment: -3300000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Calculate24(tt.price)
			if err != nil {
				t.Fatalf("Calculate24() error = %v", err)
			}
			if plan.MilestonePayment != tt.milestone {
				t.Errorf("expected milestone %d, got %d", tt.milestone, plan.MilestonePayment)
			}
			for i, want := range tt.want {
				if plan.Tiers[i] != want {
					t.Errorf("tier %d = %+v, want %+v", i, plan.Tiers[i], want)
				}
			}
		})
	}
}

func TestCalculate24Balances(t *testing.T) {
	for _, price := range []int64{15300000, 21726000, 12345679, 99999999, ServiceFee} {
		plan, err := Calculate24(price)
		if err != nil {
			t.Fatalf("Calculate24(%d) error = %v", price, err)
		}

		for _, tier := range plan.Tiers {
			if tier.FinalTotalPrice != price+tier.MarkupAmount {
				t.Errorf("final total must be price plus markup")
			}
			if tier.DownPayment+tier.Remaining != plan.Base {
				t.Errorf("down payment plus remaining must equal base")
			}

			schedule := tier.Schedule()
			if len(schedule) != 25 {
				t.Fatalf("expected 25 payments, got %d", len(schedule))
			}

			if tier.EqualPayments() {
				if diff := Total(schedule) - (plan.Base + tier.MarkupAmount); diff < -24 || diff > 24 {
					t.Errorf("price %d: residual %d exceeds rounding", price, diff)
				}
				continue
			}

			// Платёж 12-го месяца учитывается один раз
			paid := 11*tier.MonthlyAmount + tier.MilestonePayment + 11*tier.MonthlyAmount + tier.FinalBalancingPayment
			if paid != tier.Remaining+tier.MarkupAmount {
				t.Errorf("price %d tier %d: paid %d != remaining+markup %d", price, tier.Percent, paid, tier.Remaining+tier.MarkupAmount)
			}
			if Total(schedule) != plan.Base+tier.MarkupAmount {
				t.Errorf("price %d tier %d: schedule total %d != %d", price, tier.Percent, Total(schedule), plan.Base+tier.MarkupAmount)
			}
			if schedule[12].Kind != PaymentMilestone || schedule[24].Kind != PaymentBalancing {
				t.Errorf("unexpected schedule shape for tier %d", tier.Percent)
			}
		}
	}
}

func TestCalculate24Invalid(t *testing.T) {
	for _, price := range []int64{-1, 0, ServiceFee - 1} {
		if _, err := Calculate24(price); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Calculate24(%d): expected ErrInvalidInput, got %v", price, err)
		}
	}
}
