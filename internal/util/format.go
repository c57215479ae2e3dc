package util

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatYen 金额显示为 "¥1,234"，0 显示为空
func FormatYen(d decimal.Decimal) string {
	if !d.Round(0).IsPositive() {
		return ""
	}
	return "¥" + humanize.Comma(d.Round(0).IntPart())
}

// FormatYenAlways is FormatYen but renders zero as "¥0" (totals and stats).
func FormatYenAlways(d decimal.Decimal) string {
	if d.Round(0).IsNegative() {
		return "¥0"
	}
	return "¥" + humanize.Comma(d.Round(0).IntPart())
}

// FormatWorkHours 工时显示为一位小数，0 显示为空
func FormatWorkHours(hours float64) string {
	if hours <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", hours)
}

// FormatHoursStat 统计值：一位小数加“時間”
func FormatHoursStat(hours float64) string {
	return fmt.Sprintf("%.1f時間", hours)
}

// FormatPercent 比例（0..1）显示为 "12.3%"
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FormatBytes 文件大小
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
