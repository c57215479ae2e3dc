package report

import (
	"github.com/shopspring/decimal"

	"github.com/yuji-8024/t-kento/internal/aggregate"
	"github.com/yuji-8024/t-kento/internal/hours"
	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/pay"
)

// SummaryRow 残業時間集計：成员表第 39 行的时间带汇总
type SummaryRow struct {
	Member string                        `json:"member"`
	Bands  map[model.Band]hours.Duration `json:"bands"`
}

// Display returns the "h:mm" text for band, blank when zero.
func (r SummaryRow) Display(band model.Band) string {
	return r.Bands[band].Display
}

// TotalHours 四个时间带合计
func (r SummaryRow) TotalHours() float64 {
	var sum float64
	for _, d := range r.Bands {
		sum += d.Hours
	}
	return sum
}

// SummaryStats 残業時間集計の統計情報
type SummaryStats struct {
	MemberCount  int     `json:"memberCount"`
	TotalHours   float64 `json:"totalHours"`
	AverageHours float64 `json:"averageHours"` // 仅统计有数据的成员
	MaxHours     float64 `json:"maxHours"`
}

// SummaryView 残業時間集計
type SummaryView struct {
	Rows  []SummaryRow `json:"rows"`
	Stats SummaryStats `json:"stats"`
}

// BuildSummary turns headline cells into the summary view.
func BuildSummary(res aggregate.SummaryResult) *SummaryView {
	v := &SummaryView{Rows: make([]SummaryRow, 0, len(res.Members))}
	withData := 0
	for _, member := range res.Members {
		row := SummaryRow{Member: member, Bands: make(map[model.Band]hours.Duration, 4)}
		for _, band := range model.Bands() {
			row.Bands[band] = res.Bands[member][band]
		}
		total := row.TotalHours()
		v.Stats.TotalHours += total
		if total > 0 {
			withData++
		}
		if total > v.Stats.MaxHours {
			v.Stats.MaxHours = total
		}
		v.Rows = append(v.Rows, row)
	}
	v.Stats.MemberCount = len(v.Rows)
	if withData > 0 {
		v.Stats.AverageHours = v.Stats.TotalHours / float64(withData)
	}
	return v
}

// SplitRow 休日平日仕訳：一名成员
type SplitRow struct {
	Member string                         `json:"member"`
	Bands  map[model.Band]model.BandHours `json:"bands"`
}

// HolidayDisplay 休日工时 "h:mm"
func (r SplitRow) HolidayDisplay(band model.Band) string {
	return hours.Format(r.Bands[band].HolidayHours)
}

// WeekdayDisplay 平日工时 "h:mm"
func (r SplitRow) WeekdayDisplay(band model.Band) string {
	return hours.Format(r.Bands[band].WeekdayHours)
}

// SplitStats 休日平日仕訳の統計情報
type SplitStats struct {
	TotalHolidayHours float64 `json:"totalHolidayHours"`
	TotalWeekdayHours float64 `json:"totalWeekdayHours"`
	TotalHours        float64 `json:"totalHours"`
	HolidayRatio      float64 `json:"holidayRatio"` // 0..1
}

// SplitView 休日平日仕訳
type SplitView struct {
	Rows  []SplitRow `json:"rows"`
	Stats SplitStats `json:"stats"`
}

// BuildSplit turns aggregated detail rows into the split view.
func BuildSplit(res aggregate.Result) *SplitView {
	v := &SplitView{Rows: make([]SplitRow, 0, len(res.Members))}
	for _, member := range res.Members {
		row := SplitRow{Member: member, Bands: make(map[model.Band]model.BandHours, 4)}
		for _, band := range model.Bands() {
			h := res.Hours[member][band]
			row.Bands[band] = h
			v.Stats.TotalHolidayHours += h.HolidayHours
			v.Stats.TotalWeekdayHours += h.WeekdayHours
		}
		v.Rows = append(v.Rows, row)
	}
	v.Stats.TotalHours = v.Stats.TotalHolidayHours + v.Stats.TotalWeekdayHours
	if v.Stats.TotalHours > 0 {
		v.Stats.HolidayRatio = v.Stats.TotalHolidayHours / v.Stats.TotalHours
	}
	return v
}

// PayRow 残業代計算：一名成员
type PayRow struct {
	Member         string                         `json:"member"`
	RateName       string                         `json:"rateName"`
	WorkHours      map[model.Band]float64         `json:"workHours"`
	Pay            map[model.Band]decimal.Decimal `json:"pay"`
	TotalWorkHours float64                        `json:"totalWorkHours"`
	TotalPay       decimal.Decimal                `json:"totalPay"`
}

// PayStats 残業代計算の統計情報
type PayStats struct {
	TotalPay       decimal.Decimal `json:"totalPay"`
	TotalWorkHours float64         `json:"totalWorkHours"` // 所有成员，含未匹配单价者
	AveragePay     decimal.Decimal `json:"averagePay"`
}

// PayView 残業代計算
type PayView struct {
	Rows      []PayRow            `json:"rows"`
	Stats     PayStats            `json:"stats"`
	Unmatched []string            `json:"unmatched,omitempty"`
	Ambiguous map[string][]string `json:"ambiguous,omitempty"`
}

// workHours is a band's holiday plus weekday hours, each snapped to minutes.
func workHours(h model.BandHours) float64 {
	return hours.Canonical(h.HolidayHours) + hours.Canonical(h.WeekdayHours)
}

// BuildPay joins pay amounts with the hours they were computed from.
func BuildPay(pr pay.Result, split aggregate.Result) *PayView {
	v := &PayView{
		Rows:      make([]PayRow, 0, len(pr.Members)),
		Unmatched: pr.Unmatched,
		Ambiguous: pr.Ambiguous,
	}
	v.Stats.TotalPay = decimal.Zero
	for _, member := range pr.Members {
		row := PayRow{
			Member:    member,
			RateName:  pr.RateName[member],
			WorkHours: make(map[model.Band]float64, 4),
			Pay:       make(map[model.Band]decimal.Decimal, 4),
			TotalPay:  decimal.Zero,
		}
		for _, band := range model.Bands() {
			wh := workHours(split.Hours[member][band])
			p := pr.Pay[member][band].Total()
			row.WorkHours[band] = wh
			row.Pay[band] = p
			row.TotalWorkHours += wh
			row.TotalPay = row.TotalPay.Add(p)
		}
		v.Stats.TotalPay = v.Stats.TotalPay.Add(row.TotalPay)
		v.Rows = append(v.Rows, row)
	}

	for _, member := range split.Members {
		for _, band := range model.Bands() {
			v.Stats.TotalWorkHours += workHours(split.Hours[member][band])
		}
	}
	v.Stats.AveragePay = decimal.Zero
	if len(v.Rows) > 0 {
		v.Stats.AveragePay = v.Stats.TotalPay.Div(decimal.NewFromInt(int64(len(v.Rows))))
	}
	return v
}
