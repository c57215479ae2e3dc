// Package hours normalises raw duration cells into decimal hours and the
// "h:mm" text shown to users.
package hours

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuji-8024/t-kento/internal/workbook"
)

// Duration 归一化后的时长
type Duration struct {
	Hours   float64 `json:"hours"`
	Display string  `json:"display"`
}

// IsZero reports whether d rounds to 0:00.
func (d Duration) IsZero() bool {
	return d.Display == ""
}

// MaxHours is the largest duration accepted from a cell or total. Larger
// values are treated as unreadable so the h:mm split stays inside int range.
const MaxHours = 1 << 20

var reDecimal = regexp.MustCompile(`\d+\.?\d*`)

// Parse converts a raw cell into a Duration. It never fails: anything it
// cannot read is zero.
func Parse(v workbook.Value) Duration {
	h := ToHours(v)
	return Duration{Hours: h, Display: Format(h)}
}

// ToHours converts a raw cell into decimal hours (>= 0).
//
// Numeric cells are day fractions (1.0 = 24h). Text is read as "h:mm[:ss]"
// first, then as a plain number where values below 1 are day fractions and
// anything else is already hours.
func ToHours(v workbook.Value) float64 {
	switch v.Kind {
	case workbook.KindTimeOfDay:
		return clamp(float64(v.Hour) + float64(v.Minute)/60)
	case workbook.KindDateTime:
		return clamp(float64(v.Time.Hour()) + float64(v.Time.Minute())/60)
	case workbook.KindNumber:
		return clamp(v.Number * 24)
	case workbook.KindText:
		return FromText(v.Text)
	default:
		return 0
	}
}

// FromText parses a free-form duration string.
func FromText(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if strings.Contains(s, ":") {
		if h, ok := parseClock(s); ok {
			return clamp(h)
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return clamp(dayFractionOrHours(f))
	}

	if m := reDecimal.FindString(s); m != "" {
		if f, err := strconv.ParseFloat(m, 64); err == nil {
			return clamp(dayFractionOrHours(f))
		}
	}
	return 0
}

func parseClock(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return float64(h) + float64(m)/60, true
}

func dayFractionOrHours(f float64) float64 {
	if f < 1 {
		return f * 24
	}
	return f
}

func clamp(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 || h > MaxHours {
		return 0
	}
	return h
}

// Split breaks hours into whole hours and rounded minutes. 59.5 minutes or
// more carries into the next hour.
func Split(hours float64) (h, m int) {
	hours = clamp(hours)
	h = int(hours)
	m = int(math.Round((hours - float64(h)) * 60))
	if m >= 60 {
		h++
		m -= 60
	}
	return h, m
}

// Format renders hours as "h:mm". Zero renders as "".
func Format(hours float64) string {
	h, m := Split(hours)
	if h == 0 && m == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", h, m)
}

// Canonical snaps hours to whole minutes (h + m/60), the same precision
// that Format shows.
func Canonical(hours float64) float64 {
	h, m := Split(hours)
	return float64(h) + float64(m)/60
}

// Minutes returns hours snapped to whole minutes as a minute count.
func Minutes(hours float64) int64 {
	h, m := Split(hours)
	return int64(h)*60 + int64(m)
}
