// Package pay turns holiday/weekday band hours into overtime pay.
package pay

import (
	"github.com/shopspring/decimal"

	"github.com/yuji-8024/t-kento/internal/aggregate"
	"github.com/yuji-8024/t-kento/internal/hours"
	"github.com/yuji-8024/t-kento/internal/match"
	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/rates"
)

var sixty = decimal.NewFromInt(60)

// slotRule 时间带 → (休日单价, 平日单价)
type slotRule struct {
	holiday         model.RateSlot
	weekday         model.RateSlot
	weekdayBillable bool // HolidayDaytime 无平日单价
}

var matrix = map[model.Band]slotRule{
	model.HolidayDaytime:       {holiday: model.SlotF},
	model.ExtendedEvening:      {holiday: model.SlotF, weekday: model.SlotD, weekdayBillable: true},
	model.LateNight:            {holiday: model.SlotG, weekday: model.SlotE, weekdayBillable: true},
	model.ExtendedEarlyMorning: {holiday: model.SlotG, weekday: model.SlotE, weekdayBillable: true},
}

// Slots returns the rate slots applied to holiday and weekday hours of band.
// ok is false for the weekday side of bands that have no weekday rate.
func Slots(band model.Band) (holiday model.RateSlot, weekday model.RateSlot, ok bool) {
	r := matrix[band]
	return r.holiday, r.weekday, r.weekdayBillable
}

// Amount is hours, snapped to whole minutes, times an hourly rate.
func Amount(h float64, rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	minutes := hours.Minutes(h)
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(minutes).Mul(rate).Div(sixty)
}

// MemberPay 单个成员四个时间带的金额
type MemberPay map[model.Band]model.BandPay

// Total 合计金额
func (m MemberPay) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range m {
		sum = sum.Add(p.Total())
	}
	return sum
}

// Compute applies the band/rate matrix to one member's hours.
func Compute(bandHours map[model.Band]model.BandHours, rv model.RateVector) MemberPay {
	out := make(MemberPay, len(matrix))
	for _, band := range model.Bands() {
		h := bandHours[band]
		rule := matrix[band]
		p := model.BandPay{
			HolidayPay: Amount(h.HolidayHours, rv.Slot(rule.holiday)),
			WeekdayPay: decimal.Zero,
		}
		if rule.weekdayBillable {
			p.WeekdayPay = Amount(h.WeekdayHours, rv.Slot(rule.weekday))
		}
		out[band] = p
	}
	return out
}

// Result is the pay view for every member that matched a rate row.
type Result struct {
	Members   []string             `json:"members"`
	Pay       map[string]MemberPay `json:"pay"`
	RateName  map[string]string    `json:"rateName"` // 成员表 → 单价表中的名称
	Unmatched []string             `json:"unmatched,omitempty"`
	Ambiguous map[string][]string  `json:"ambiguous,omitempty"`
}

// ComputeAll prices every member of split with the first rate row whose
// name matches the sheet name. Members without a rate row are left out.
func ComputeAll(split aggregate.Result, table *rates.Table) Result {
	res := Result{
		Pay:      make(map[string]MemberPay, len(split.Members)),
		RateName: make(map[string]string, len(split.Members)),
	}
	names := table.Names()
	for _, member := range split.Members {
		name, ok := match.Match(member, names)
		if !ok {
			res.Unmatched = append(res.Unmatched, member)
			continue
		}
		if hits := match.Ambiguous(member, names); len(hits) > 1 {
			if res.Ambiguous == nil {
				res.Ambiguous = make(map[string][]string)
			}
			res.Ambiguous[member] = hits
		}
		rv, _ := table.Get(name)
		res.Members = append(res.Members, member)
		res.Pay[member] = Compute(split.Hours[member], rv)
		res.RateName[member] = name
	}
	return res
}
