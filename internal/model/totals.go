package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// BandHours 某成员某时间带的休日/平日工时
type BandHours struct {
	HolidayHours float64
	WeekdayHours float64
}

// Total 休日 + 平日
func (h BandHours) Total() float64 {
	return h.HolidayHours + h.WeekdayHours
}

// Add accumulates d into the holiday or weekday bucket.
func (h *BandHours) Add(d float64, holiday bool) {
	if d <= 0 {
		return
	}
	if holiday {
		h.HolidayHours += d
		return
	}
	h.WeekdayHours += d
}

func (h BandHours) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		HolidayHours float64 `json:"holidayHours"`
		WeekdayHours float64 `json:"weekdayHours"`
		TotalHours   float64 `json:"totalHours"`
	}{h.HolidayHours, h.WeekdayHours, h.Total()})
}

// BandPay 某成员某时间带的休日/平日金额
type BandPay struct {
	HolidayPay decimal.Decimal
	WeekdayPay decimal.Decimal
}

// Total 休日 + 平日
func (p BandPay) Total() decimal.Decimal {
	return p.HolidayPay.Add(p.WeekdayPay)
}

func (p BandPay) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		HolidayPay decimal.Decimal `json:"holidayPay"`
		WeekdayPay decimal.Decimal `json:"weekdayPay"`
		TotalPay   decimal.Decimal `json:"totalPay"`
	}{p.HolidayPay, p.WeekdayPay, p.Total()})
}
