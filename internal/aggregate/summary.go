package aggregate

import (
	"fmt"

	"github.com/yuji-8024/t-kento/internal/hours"
	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/workbook"
)

// MemberSummary 成员表头部汇总单元格（第 39 行）的值
type MemberSummary map[model.Band]hours.Duration

// Total 四个时间带合计
func (m MemberSummary) Total() float64 {
	var sum float64
	for _, d := range m {
		sum += d.Hours
	}
	return sum
}

// SummaryResult is the headline view read from the band anchor cells.
type SummaryResult struct {
	Members  []string                 `json:"members"`
	Bands    map[string]MemberSummary `json:"bands"`
	Warnings []model.SheetWarning     `json:"warnings,omitempty"`
}

// Summarize reads the headline cell of each band (K39/O39/S39/W39). When the
// anchor is empty the row below is tried, since merged cells sometimes keep
// their value there.
func (a *Aggregator) Summarize(acc workbook.Accessor, members []string) SummaryResult {
	res := SummaryResult{Bands: make(map[string]MemberSummary, len(members))}
	for _, member := range members {
		ms, err := a.summarizeSheet(acc, member)
		if err != nil {
			a.warn(&res.Warnings, member, err)
			continue
		}
		res.Members = append(res.Members, member)
		res.Bands[member] = ms
	}
	return res
}

func (a *Aggregator) summarizeSheet(acc workbook.Accessor, sheet string) (ms MemberSummary, err error) {
	defer func() {
		if r := recover(); r != nil {
			ms, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	ms = make(MemberSummary, 4)
	for _, band := range model.Bands() {
		v, err := acc.Cell(sheet, band.Anchor())
		if err != nil {
			return nil, err
		}
		if v.IsAbsent() {
			if v, err = acc.Cell(sheet, band.FallbackAnchor()); err != nil {
				return nil, err
			}
		}
		d := hours.Parse(v)
		if d.Hours <= 0 {
			d = hours.Duration{}
		}
		ms[band] = d
	}
	return ms, nil
}
