package format

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/semiekhin/rizalta-bot-dev/internal/calculations"
)

// WorkbookSheet - имя листа с расчётом
const WorkbookSheet = "Расчет прибыли"

// Встроенные форматы чисел Excel
const (
	numFmtPercent0 = 9 // 0%
	numFmtDecimal2 = 2 // 0.00
	numFmtThousand = 3 // #,##0
)

// Первая строка лет аренды и строка итогов
const (
	headerRow    = 10
	firstYearRow = 11
	totalsRow    = firstYearRow + calculations.ProjectionYears
)

var columnWidths = map[string]float64{
	"A": 8.66, "B": 16, "C": 18, "D": 13, "E": 21,
	"F": 18, "G": 18, "H": 22, "I": 20, "J": 20, "K": 15.55,
	"L": 16.5, "M": 16.5, "N": 17.5,
}

type workbookStyles struct {
	header   int
	center   int
	money    int
	decimal  int
	percent  int
	keyRate  int
	keyYears int
	rentYear int
	bold     int
	title    int
}

func newWorkbookStyles(f *excelize.File) (*workbookStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	wrap := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	redBold := &excelize.Font{Bold: true, Color: "FF0000"}

	s := &workbookStyles{}
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.header, &excelize.Style{Border: border, Font: &excelize.Font{Bold: true}, Alignment: wrap}},
		{&s.center, &excelize.Style{Border: border, Alignment: center}},
		{&s.money, &excelize.Style{Border: border, Alignment: center, NumFmt: numFmtThousand}},
		{&s.decimal, &excelize.Style{Border: border, Alignment: center, NumFmt: numFmtDecimal2}},
		{&s.percent, &excelize.Style{Border: border, Alignment: center, NumFmt: numFmtPercent0}},
		{&s.keyRate, &excelize.Style{Border: border, Alignment: center, Font: redBold, NumFmt: numFmtPercent0}},
		{&s.keyYears, &excelize.Style{Border: border, Alignment: center, Font: redBold, NumFmt: numFmtDecimal2}},
		{&s.rentYear, &excelize.Style{Border: border, Alignment: center, Font: &excelize.Font{Color: "0070C0"}}},
		{&s.bold, &excelize.Style{Border: border, Alignment: center, Font: &excelize.Font{Bold: true}}},
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}

type sheetWriter struct {
	f      *excelize.File
	styles *workbookStyles
	err    error
}

func (w *sheetWriter) set(cell string, value interface{}, style int) {
	if w.err != nil {
		return
	}
	if value != nil {
		if w.err = w.f.SetCellValue(WorkbookSheet, cell, value); w.err != nil {
			return
		}
	}
	w.err = w.f.SetCellStyle(WorkbookSheet, cell, cell, style)
}

// RenderWorkbook строит книгу с расчётом прибыли. В ячейки пишутся
// вычисленные значения, формул нет
func RenderWorkbook(p *calculations.Projection) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", WorkbookSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	w := &sheetWriter{f: f, styles: styles}
	w.dimensions()
	w.params(p.Summary)
	w.tableHeader()
	for i, y := range p.Years {
		w.yearRow(firstYearRow+i, y)
	}
	w.totals(p.Summary)

	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to fill workbook: %w", w.err)
	}
	return f, nil
}

// WriteWorkbook записывает книгу в w
func WriteWorkbook(out io.Writer, p *calculations.Projection) error {
	f, err := RenderWorkbook(p)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *sheetWriter) dimensions() {
	for col, width := range columnWidths {
		if w.err != nil {
			return
		}
		w.err = w.f.SetColWidth(WorkbookSheet, col, col, width)
	}
	for row := 1; row <= totalsRow; row++ {
		if w.err != nil {
			return
		}
		height := 21.0
		switch {
		case row == 3:
			height = 25
		case row == 5 || row == headerRow:
			height = 80
		case row == 9:
			height = 17
		case row == totalsRow:
			height = 24
		case row >= firstYearRow:
			height = 29
		}
		w.err = w.f.SetRowHeight(WorkbookSheet, row, height)
	}
}

func (w *sheetWriter) params(s calculations.ProjectionSummary) {
	w.set("C3", "Расчет прибыли", w.styles.title)

	headers := [][2]string{
		{"B5", "Площадь, м2"},
		{"C5", "Цена за м2"},
		{"D5", "Стоимость, руб"},
		{"F5", "Расходы, %"},
		{"G5", "Прибыль от роста стоимости кв.м. апартамента в год, %"},
		{"H5", "Срок окупаемости апартамента, лет"},
		{"I5", "Срок окупаемости апартамента (от сдачи), лет"},
	}
	for _, h := range headers {
		w.set(h[0], h[1], w.styles.header)
	}
	if w.err == nil {
		w.err = w.f.MergeCell(WorkbookSheet, "D5", "E5")
	}
	if w.err == nil {
		w.err = w.f.MergeCell(WorkbookSheet, "D6", "E6")
	}

	w.set("B6", s.Area, w.styles.center)
	w.set("C6", s.PricePerM2, w.styles.money)
	w.set("D6", s.Cost, w.styles.money)
	w.set("E6", nil, w.styles.center)
	w.set("F6", calculations.ExpenseRatio.InexactFloat64(), w.styles.percent)
	w.set("G6", calculations.GrowthRate(calculations.FirstYear+1).InexactFloat64(), w.styles.keyRate)
	w.set("H6", s.PaybackYears, w.styles.keyYears)
	w.set("I6", s.PaybackRentalYears, w.styles.keyYears)
}

func (w *sheetWriter) tableHeader() {
	headers := map[string]string{
		"B": "Год",
		"C": "Стоимость сдачи номера в сутки (округл.), руб",
		"D": "Загрузка отеля,%",
		"E": "Стоимость сдачи номера в год, руб",
		"F": "Расходы, руб",
		"G": "Прибыль от сдачи апартамента, руб",
		"H": "Накопительная прибыль от сдачи апартамента, руб",
		"I": "Прибыль от роста стоимости кв.м. апартамента, руб",
		"J": "Прибыль накопительно",
		"L": "Прибыль от сдачи апартамента в год, %",
		"M": "Прибыль роста цены от стоимости апартамента в год, %",
		"N": "Общая прибыль от стоимости апартамента в год, %",
	}
	for col, title := range headers {
		w.set(fmt.Sprintf("%s%d", col, headerRow), title, w.styles.header)
	}
}

func (w *sheetWriter) yearRow(row int, y calculations.YearlyProjection) {
	cell := func(col string) string { return fmt.Sprintf("%s%d", col, row) }

	if !y.Operating() {
		// До начала эксплуатации колонки аренды пустые, только рамка
		w.set(cell("B"), y.Year, w.styles.center)
		for _, col := range []string{"C", "D", "E", "F", "G", "H", "L"} {
			w.set(cell(col), nil, w.styles.center)
		}
		w.set(cell("I"), y.GrowthProfit, w.styles.money)
		w.set(cell("J"), y.CumulativeProfit, w.styles.money)
		w.set(cell("M"), y.GrowthPct, w.styles.decimal)
		w.set(cell("N"), y.TotalPct, w.styles.decimal)
		return
	}

	w.set(cell("B"), y.Year, w.styles.rentYear)
	w.set(cell("C"), y.DailyRate, w.styles.money)
	w.set(cell("D"), y.Occupancy, w.styles.center)
	w.set(cell("E"), y.GrossRent, w.styles.money)
	w.set(cell("F"), y.Expenses, w.styles.money)
	w.set(cell("G"), y.RentalProfit, w.styles.money)
	w.set(cell("H"), y.CumulativeRental, w.styles.money)
	w.set(cell("I"), y.GrowthProfit, w.styles.money)
	w.set(cell("J"), y.CumulativeProfit, w.styles.money)
	w.set(cell("L"), y.RentalPct, w.styles.decimal)
	w.set(cell("M"), y.GrowthPct, w.styles.decimal)
	w.set(cell("N"), y.TotalPct, w.styles.decimal)
}

func (w *sheetWriter) totals(s calculations.ProjectionSummary) {
	cell := func(col string) string { return fmt.Sprintf("%s%d", col, totalsRow) }

	w.set(cell("B"), "Итого", w.styles.bold)
	for _, col := range []string{"C", "D", "L", "M"} {
		w.set(cell(col), nil, w.styles.center)
	}
	w.set(cell("E"), s.TotalGrossRent, w.styles.money)
	w.set(cell("F"), s.TotalExpenses, w.styles.money)
	w.set(cell("G"), s.TotalRental, w.styles.money)
	w.set(cell("H"), s.TotalRental, w.styles.money)
	w.set(cell("I"), s.TotalGrowth, w.styles.money)
	w.set(cell("J"), s.TotalProfit, w.styles.money)
	w.set(cell("N"), s.AvgAnnualPct, w.styles.decimal)
}
