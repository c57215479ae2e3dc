package model

import "github.com/shopspring/decimal"

// RateSlot identifies one of the four hourly rates on the rate sheet.
// The names follow the sheet columns they are read from.
type RateSlot int

const (
	SlotD RateSlot = iota // 平日 18:00-22:00
	SlotE                 // 平日 22:00-09:00
	SlotF                 // 休日 09:00-22:00
	SlotG                 // 休日 22:00-09:00
)

// RateSlots returns the slots in sheet column order.
func RateSlots() []RateSlot {
	return []RateSlot{SlotD, SlotE, SlotF, SlotG}
}

func (s RateSlot) String() string {
	switch s {
	case SlotD:
		return "D"
	case SlotE:
		return "E"
	case SlotF:
		return "F"
	case SlotG:
		return "G"
	default:
		return "?"
	}
}

// RateVector 成员单价
type RateVector struct {
	EveningWeekday decimal.Decimal `json:"eveningWeekday"`
	NightWeekday   decimal.Decimal `json:"nightWeekday"`
	HolidayDaytime decimal.Decimal `json:"holidayDaytime"`
	HolidayNight   decimal.Decimal `json:"holidayNight"`
}

// Slot returns the rate stored in s; unknown slots are zero.
func (r RateVector) Slot(s RateSlot) decimal.Decimal {
	switch s {
	case SlotD:
		return r.EveningWeekday
	case SlotE:
		return r.NightWeekday
	case SlotF:
		return r.HolidayDaytime
	case SlotG:
		return r.HolidayNight
	default:
		return decimal.Zero
	}
}

// Set stores v in slot s.
func (r *RateVector) Set(s RateSlot, v decimal.Decimal) {
	switch s {
	case SlotD:
		r.EveningWeekday = v
	case SlotE:
		r.NightWeekday = v
	case SlotF:
		r.HolidayDaytime = v
	case SlotG:
		r.HolidayNight = v
	}
}
