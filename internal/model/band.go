package model

import "fmt"

// Band 应动时间带
type Band int

const (
	HolidayDaytime       Band = iota // 09:00-18:00
	ExtendedEvening                  // 18:00-22:00
	LateNight                        // 22:00-05:00
	ExtendedEarlyMorning             // 05:00-09:00
)

type bandInfo struct {
	key    string
	label  string
	column string
}

var bandTable = [...]bandInfo{
	HolidayDaytime:       {key: "holiday_daytime", label: "休日時間帯の応動（09:00-18:00）", column: "K"},
	ExtendedEvening:      {key: "extended_evening", label: "平日・休日時間外の応動（18:00-22:00）", column: "O"},
	LateNight:            {key: "late_night", label: "平日・休日深夜の応動（22:00-05:00）", column: "S"},
	ExtendedEarlyMorning: {key: "extended_early_morning", label: "平日・休日時間外の応動（05:00-09:00）", column: "W"},
}

// HeadlineRow is the row of the per-band aggregate cell on a member sheet.
// Merged cells sometimes keep the value one row below.
const (
	HeadlineRow         = 39
	HeadlineFallbackRow = 40
)

// Bands returns all bands in display order.
func Bands() []Band {
	return []Band{HolidayDaytime, ExtendedEvening, LateNight, ExtendedEarlyMorning}
}

// Valid reports whether b is one of the four defined bands.
func (b Band) Valid() bool {
	return b >= HolidayDaytime && b <= ExtendedEarlyMorning
}

// Key 机器可读标识
func (b Band) Key() string {
	if !b.Valid() {
		return fmt.Sprintf("band(%d)", int(b))
	}
	return bandTable[b].key
}

// Label 显示名称
func (b Band) Label() string {
	if !b.Valid() {
		return b.Key()
	}
	return bandTable[b].label
}

// Column is the detail column holding per-day durations for the band.
func (b Band) Column() string {
	if !b.Valid() {
		return ""
	}
	return bandTable[b].column
}

// Anchor returns the headline cell for the band, e.g. "K39".
func (b Band) Anchor() string {
	return fmt.Sprintf("%s%d", b.Column(), HeadlineRow)
}

// FallbackAnchor returns the cell below the headline anchor, e.g. "K40".
func (b Band) FallbackAnchor() string {
	return fmt.Sprintf("%s%d", b.Column(), HeadlineFallbackRow)
}

func (b Band) String() string {
	return b.Key()
}

// MarshalText lets Band be used as a JSON object key.
func (b Band) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid band %d", int(b))
	}
	return []byte(b.Key()), nil
}
