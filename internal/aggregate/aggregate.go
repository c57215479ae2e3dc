// Package aggregate sums per-day on-call durations on member sheets into
// holiday and weekday hours per time band.
package aggregate

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/yuji-8024/t-kento/internal/dayclass"
	"github.com/yuji-8024/t-kento/internal/hours"
	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/workbook"
)

// Member sheet layout.
const (
	FirstDetailRow = 8
	LastDetailRow  = 38
	DateColumn     = "B"
	MarkerColumn   = "C"
)

// MinHours 低于或等于该值的明细行不计入（约 1/60/24 小时）
const MinHours = 0.000694

// DefaultReservedSheets are the sheets that never describe a member.
var DefaultReservedSheets = []string{"まとめ", "記入例", "報告書format", "残業代"}

// MemberHours 单个成员四个时间带的工时
type MemberHours map[model.Band]model.BandHours

// Total 四个时间带合计
func (m MemberHours) Total() float64 {
	var sum float64
	for _, h := range m {
		sum += h.Total()
	}
	return sum
}

// Result is the holiday/weekday split for every member that could be read.
type Result struct {
	Members  []string               `json:"members"`
	Hours    map[string]MemberHours `json:"hours"`
	Warnings []model.SheetWarning   `json:"warnings,omitempty"`
	Undated  int                    `json:"undated"` // 有工时但无日期的行，不计入
}

// Options 聚合选项
type Options struct {
	Reserved []string // 为空时使用 DefaultReservedSheets
	Logger   *slog.Logger
}

// Aggregator 成员表聚合器
type Aggregator struct {
	reserved []string
	logger   *slog.Logger
}

// New 创建聚合器
func New(opts Options) *Aggregator {
	reserved := opts.Reserved
	if len(reserved) == 0 {
		reserved = DefaultReservedSheets
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Aggregator{reserved: reserved, logger: logger}
}

// Reserved returns the deny-list in use.
func (a *Aggregator) Reserved() []string {
	return append([]string(nil), a.reserved...)
}

// Members returns the member sheets of acc in workbook order.
func (a *Aggregator) Members(acc workbook.Accessor) []string {
	return MemberSheets(acc.SheetNames(), a.reserved)
}

// MemberSheets filters reserved names out of all, keeping order.
func MemberSheets(all, reserved []string) []string {
	deny := make(map[string]struct{}, len(reserved))
	for _, name := range reserved {
		deny[name] = struct{}{}
	}
	members := make([]string, 0, len(all))
	for _, name := range all {
		if _, ok := deny[name]; ok {
			continue
		}
		members = append(members, name)
	}
	return members
}

// Aggregate scans rows 8..38 of every band column on each member sheet.
// A sheet that fails is logged, reported in Warnings and left out.
func (a *Aggregator) Aggregate(acc workbook.Accessor, members []string) Result {
	res := Result{Hours: make(map[string]MemberHours, len(members))}
	for _, member := range members {
		mh, undated, err := a.aggregateSheet(acc, member)
		if err != nil {
			a.warn(&res.Warnings, member, err)
			continue
		}
		res.Members = append(res.Members, member)
		res.Hours[member] = mh
		res.Undated += undated
	}
	return res
}

func (a *Aggregator) aggregateSheet(acc workbook.Accessor, sheet string) (mh MemberHours, undated int, err error) {
	defer func() {
		if r := recover(); r != nil {
			mh, undated, err = nil, 0, fmt.Errorf("panic: %v", r)
		}
	}()

	mh = make(MemberHours, 4)
	for _, band := range model.Bands() {
		var totals model.BandHours
		for row := FirstDetailRow; row <= LastDetailRow; row++ {
			raw, err := acc.Cell(sheet, workbook.Axis(band.Column(), row))
			if err != nil {
				return nil, 0, err
			}
			h := hours.ToHours(raw)
			if h <= MinHours {
				continue
			}

			date, err := acc.Cell(sheet, workbook.Axis(DateColumn, row))
			if err != nil {
				return nil, 0, err
			}
			if date.IsAbsent() {
				undated++
				continue
			}
			marker, err := acc.Cell(sheet, workbook.Axis(MarkerColumn, row))
			if err != nil {
				return nil, 0, err
			}
			totals.Add(h, dayclass.Classify(date, marker))
		}
		mh[band] = totals
	}
	return mh, undated, nil
}

func (a *Aggregator) warn(warnings *[]model.SheetWarning, sheet string, err error) {
	a.logger.Warn("sheet skipped", "sheet", sheet, "member", sheet, "error", err)
	*warnings = append(*warnings, model.SheetWarning{
		Sheet:   sheet,
		Message: fmt.Sprintf("シート '%s' の処理中にエラーが発生しました: %v", sheet, err),
	})
}
