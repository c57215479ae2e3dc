// Package dayclass decides whether a detail row falls on a holiday.
package dayclass

import (
	"math"
	"strings"
	"time"

	"github.com/yuji-8024/t-kento/internal/workbook"
)

// HolidayToken is the marker written in column C for public holidays.
const HolidayToken = "祝日"

// serialEpoch is day 0 of the spreadsheet date serial (1900 date system).
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var (
	weekendTokens = map[string]struct{}{
		"土": {}, "日": {}, "土曜日": {}, "日曜日": {},
		"Sat": {}, "Sun": {}, "Saturday": {}, "Sunday": {},
	}
	weekdayTokens = map[string]struct{}{
		"月": {}, "火": {}, "水": {}, "木": {}, "金": {},
		"月曜日": {}, "火曜日": {}, "水曜日": {}, "木曜日": {}, "金曜日": {},
		"Mon": {}, "Tue": {}, "Wed": {}, "Thu": {}, "Fri": {},
		"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {}, "Friday": {},
	}
)

// Classify reports whether the row whose date cell is date and whose
// marker cell is marker counts as a holiday. Saturdays and Sundays are
// always holidays; the marker can only turn a weekday into a holiday.
func Classify(date, marker workbook.Value) bool {
	if date.IsAbsent() {
		return false
	}

	switch date.Kind {
	case workbook.KindDateTime:
		return byWeekday(date.Time.Weekday(), marker)
	case workbook.KindNumber:
		t, ok := FromSerial(date.Number)
		if !ok {
			return IsMarked(marker)
		}
		return byWeekday(t.Weekday(), marker)
	case workbook.KindText:
		s := strings.TrimSpace(date.Text)
		if t, ok := workbook.ParseDate(s); ok {
			return byWeekday(t.Weekday(), marker)
		}
		if _, ok := weekendTokens[s]; ok {
			return true
		}
		if _, ok := weekdayTokens[s]; ok {
			return IsMarked(marker)
		}
		return false
	default:
		// 单独的时刻值不带日期信息
		return false
	}
}

// IsMarked reports whether marker, trimmed, is exactly the holiday token.
func IsMarked(marker workbook.Value) bool {
	return marker.Kind == workbook.KindText && strings.TrimSpace(marker.Text) == HolidayToken
}

// FromSerial converts a spreadsheet date serial to a date. The fractional
// (time) part is dropped.
func FromSerial(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 0 || serial > 2958465 {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, int(math.Floor(serial))), true
}

func byWeekday(wd time.Weekday, marker workbook.Value) bool {
	if wd == time.Saturday || wd == time.Sunday {
		return true
	}
	return IsMarked(marker)
}
