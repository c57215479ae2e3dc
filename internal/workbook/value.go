package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind 单元格原始值类型
type Kind int

const (
	KindAbsent Kind = iota
	KindTimeOfDay
	KindDateTime
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindTimeOfDay:
		return "time"
	case KindDateTime:
		return "datetime"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the raw content of one cell. Exactly one payload field is
// meaningful, selected by Kind.
type Value struct {
	Kind   Kind
	Hour   int
	Minute int
	Time   time.Time
	Number float64
	Text   string
}

// Absent 空单元格
func Absent() Value { return Value{Kind: KindAbsent} }

// TimeOfDay 时刻值（无日期）
func TimeOfDay(hour, minute int) Value {
	return Value{Kind: KindTimeOfDay, Hour: hour, Minute: minute}
}

// DateTime 日期或日期时间
func DateTime(t time.Time) Value { return Value{Kind: KindDateTime, Time: t} }

// Number 数值（时间类单元格按“1 天 = 1.0”解释）
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// Text 文本
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// IsAbsent reports whether the cell is empty. Whitespace-only text counts
// as empty.
func (v Value) IsAbsent() bool {
	switch v.Kind {
	case KindAbsent:
		return true
	case KindText:
		return strings.TrimSpace(v.Text) == ""
	default:
		return false
	}
}

// String renders the value the way a user would read it in the cell.
func (v Value) String() string {
	switch v.Kind {
	case KindTimeOfDay:
		return fmt.Sprintf("%d:%02d", v.Hour, v.Minute)
	case KindDateTime:
		if v.Time.Hour() == 0 && v.Time.Minute() == 0 && v.Time.Second() == 0 {
			return v.Time.Format("2006-01-02")
		}
		return v.Time.Format("2006-01-02 15:04:05")
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindText:
		return v.Text
	default:
		return ""
	}
}
