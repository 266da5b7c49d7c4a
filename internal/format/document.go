package format

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/semiekhin/rizalta-bot-dev/internal/calculations"
	"github.com/semiekhin/rizalta-bot-dev/internal/lots"
)

// DeliveryQuarter - срок сдачи комплекса
const DeliveryQuarter = "4 кв. 2027"

// BuildingName возвращает название корпуса для коммерческого предложения
func BuildingName(building int) string {
	if building == 1 {
		return `Корпус 1 — "Family"`
	}
	return `Корпус 2 — "Business"`
}

// LotType определяет тип апартамента по числу комнат и площади
func LotType(area float64, rooms int) string {
	switch {
	case rooms == 2:
		return "Евро-2"
	case area <= 26:
		return "Студия"
	case area <= 35:
		return "1-комнатная"
	default:
		return "1-комнатная Large"
	}
}

type documentTier12 struct {
	Percent int
	Down    string
	Lines   []string
}

type documentTier24 struct {
	Percent int
	Markup  int
	Down    string
	Lines   []string
	Total   string
}

type documentData struct {
	Lot        *lots.Lot
	Building   string
	Type       string
	Area       string
	Price      string
	PricePerM2 string
	Delivery   string
	Tiers12    []documentTier12
	Tiers24    []documentTier24
	ServiceFee string
}

var documentTemplate = template.Must(template.New("proposal").Parse(`<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="UTF-8">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Montserrat', sans-serif; font-size: 11px; color: #333333; background: #FFFFFF; }
.header { background: #313D20; height: 80px; text-align: center; padding-top: 15px; }
.header h1 { color: #FFFFFF; padding-top: 10px; }
.title-bar { background: #DCB764; padding: 10px 25px; overflow: hidden; color: #313D20; }
.title-left { float: left; font-weight: 600; font-size: 13px; }
.title-right { float: right; }
.main { padding: 20px 25px; }
.unit-card { border: 1px solid #ddd; margin-bottom: 15px; }
.unit-header { background: #313D20; color: #FFFFFF; padding: 10px 15px; overflow: hidden; font-weight: 600; font-size: 14px; }
.unit-code { float: left; }
.unit-price { float: right; color: #DCB764; }
.unit-body { padding: 15px; overflow: hidden; }
.unit-layout { float: left; width: 40%; }
.unit-layout img { max-width: 100%; max-height: 180px; }
.unit-details { float: right; width: 55%; }
.detail-row { padding: 6px 0; border-bottom: 1px solid #eee; }
.detail-label { color: #666; font-size: 9px; }
.detail-value { font-weight: 500; }
.installment-section { background: #F6F0E3; padding: 12px 15px; margin-top: 10px; overflow: hidden; }
.installment-title { font-weight: 600; color: #313D20; margin-bottom: 10px; padding-bottom: 6px; border-bottom: 2px solid #313D20; }
.installment-title.gold { border-bottom-color: #DCB764; }
.inst-card { float: left; width: 32%; margin-right: 2%; padding: 8px; border: 1px solid #313D20; background: #FFFFFF; }
.inst-card:last-child { margin-right: 0; }
.inst-card.gold { border-color: #DCB764; }
.inst-card-title { font-weight: 600; font-size: 10px; color: #313D20; margin-bottom: 5px; }
.inst-card-pv { font-size: 12px; font-weight: 600; color: #313D20; margin-bottom: 3px; }
.inst-card-monthly { font-size: 9px; color: #666; line-height: 1.3; }
.badge { display: inline-block; background: #dc2626; color: white; font-size: 8px; padding: 1px 4px; border-radius: 2px; margin-left: 3px; }
.inst-total { margin-top: 5px; padding-top: 5px; border-top: 1px solid #ddd; font-size: 9px; color: #DCB764; }
.footer { background: #313D20; color: #FFFFFF; text-align: center; padding: 12px; font-size: 9px; letter-spacing: 2px; position: fixed; bottom: 0; width: 100%; }
.note { font-size: 8px; color: #888; margin-top: 8px; font-style: italic; }
</style>
</head>
<body>
<div class="header"><h1>RIZALTA</h1></div>
<div class="title-bar">
  <div class="title-left">Коммерческое предложение</div>
  <div class="title-right">{{.Building}} • {{.Lot.Floor}} этаж • {{.Area}} м²</div>
</div>
<div class="main">
  <div class="unit-card">
    <div class="unit-header">
      <div class="unit-code">{{.Type}} • {{.Lot.Code}}</div>
      <div class="unit-price">{{.Price}}</div>
    </div>
    <div class="unit-body">
      <div class="unit-layout">{{if .Lot.LayoutURL}}<img src="{{.Lot.LayoutURL}}" alt="Планировка">{{else}}<p style="color:#999">Планировка</p>{{end}}</div>
      <div class="unit-details">
        <div class="detail-row"><div class="detail-label">Площадь</div><div class="detail-value">{{.Area}} м²</div></div>
        <div class="detail-row"><div class="detail-label">Этаж</div><div class="detail-value">{{.Lot.Floor}}</div></div>
        <div class="detail-row"><div class="detail-label">Корпус</div><div class="detail-value">{{.Building}}</div></div>
        <div class="detail-row"><div class="detail-label">Срок сдачи</div><div class="detail-value">{{.Delivery}}</div></div>
        <div class="detail-row"><div class="detail-label">Цена за м²</div><div class="detail-value">{{.PricePerM2}}</div></div>
      </div>
    </div>
    <div class="installment-section">
      <div class="installment-title">Рассрочка 0% на 12 месяцев</div>
      {{range .Tiers12}}<div class="inst-card">
        <div class="inst-card-title">ПВ {{.Percent}}%</div>
        <div class="inst-card-pv">{{.Down}}</div>
        <div class="inst-card-monthly">{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
      </div>{{end}}
    </div>
    {{if .Tiers24}}<div class="installment-section">
      <div class="installment-title gold">Рассрочка на 24 месяца</div>
      {{range .Tiers24}}<div class="inst-card gold">
        <div class="inst-card-title">ПВ {{.Percent}}% <span class="badge">+{{.Markup}}%</span></div>
        <div class="inst-card-pv">{{.Down}}</div>
        <div class="inst-card-monthly">{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
        <div class="inst-total">Итого: {{.Total}}</div>
      </div>{{end}}
    </div>{{end}}
    <div class="note">* Расчёт с учётом вычета {{.ServiceFee}}</div>
  </div>
</div>
<div class="footer">RIZALTA RESORT BELOKURIKHA</div>
</body>
</html>
`))

// RenderDocument формирует HTML коммерческого предложения для конвертации в PDF.
// Если i24 равен nil, блок 24-месячной рассрочки не выводится
func RenderDocument(lot *lots.Lot, i12 *calculations.Installment12, i24 *calculations.Installment24) (string, error) {
	if lot == nil || i12 == nil {
		return "", fmt.Errorf("lot and 12-month plan are required")
	}

	data := documentData{
		Lot:        lot,
		Building:   BuildingName(lot.Building),
		Type:       LotType(lot.AreaM2, lot.Rooms),
		Area:       Area(lot.AreaM2),
		Price:      Money(lot.PriceRub),
		PricePerM2: Money(lot.PricePerM2()),
		Delivery:   DeliveryQuarter,
		ServiceFee: Money(calculations.ServiceFee),
	}

	for _, t := range i12.Tiers {
		tier := documentTier12{Percent: t.Percent, Down: Money(t.DownPayment)}
		if t.EqualPayments() {
			tier.Lines = []string{fmt.Sprintf("12 мес × %s", Money(t.MonthlyAmount))}
		} else {
			tier.Lines = []string{
				fmt.Sprintf("%d мес × %s", t.FixedPayments, Money(t.MonthlyAmount)),
				fmt.Sprintf("12-й: %s", Money(t.FinalPayment)),
			}
		}
		data.Tiers12 = append(data.Tiers12, tier)
	}

	if i24 != nil {
		for i, t := range i24.Tiers {
			tier := documentTier24{
				Percent: t.Percent,
				Markup:  calculations.MarkupPercents[i],
				Down:    Money(t.DownPayment),
				Total:   Money(t.FinalTotalPrice),
			}
			if t.EqualPayments() {
				tier.Lines = []string{fmt.Sprintf("24 мес × %s", Money(t.MonthlyAmount))}
			} else {
				tier.Lines = []string{
					fmt.Sprintf("11 × %s + 12-й: %s", Money(t.MonthlyAmount), Money(t.MilestonePayment)),
					fmt.Sprintf("11 × %s + 24-й: %s", Money(t.MonthlyAmount), Money(t.FinalBalancingPayment)),
				}
			}
			data.Tiers24 = append(data.Tiers24, tier)
		}
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render proposal: %w", err)
	}
	return buf.String(), nil
}
