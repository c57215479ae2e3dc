// Package rates reads the per-member hourly rates from the rate sheet.
package rates

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/workbook"
)

// Rate sheet layout: one member per row from C30 down, rates in D..G.
const (
	DefaultSheet = "残業代"
	AnchorRow    = 30
	NameColumn   = "C"
)

// Row 单价表中的一行
type Row struct {
	Row   int              `json:"row"`
	Name  string           `json:"name"`
	Rates model.RateVector `json:"rates"`
}

// Rows yields rate rows starting at AnchorRow, keyed by sheet row number.
// It stops at the first row whose name cell is blank and never reads past
// it. A read error also ends the sequence; use Load to see the error.
func Rows(acc workbook.Accessor, sheet string) iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		_ = scan(acc, sheet, func(r Row) bool { return yield(r.Row, r) })
	}
}

func scan(acc workbook.Accessor, sheet string, yield func(Row) bool) error {
	for row := AnchorRow; ; row++ {
		nameCell, err := acc.Cell(sheet, workbook.Axis(NameColumn, row))
		if err != nil {
			return err
		}
		name := strings.TrimSpace(nameCell.String())
		if nameCell.IsAbsent() || name == "" {
			return nil
		}

		r := Row{Row: row, Name: name}
		// slot 名即所在列
		for _, slot := range model.RateSlots() {
			v, err := acc.Cell(sheet, workbook.Axis(slot.String(), row))
			if err != nil {
				return err
			}
			r.Rates.Set(slot, ParseRate(v))
		}
		if !yield(r) {
			return nil
		}
	}
}

// Table 成员名 → 单价，保持表中出现顺序
type Table struct {
	names []string
	rates map[string]model.RateVector
}

// NewTable 创建空单价表
func NewTable() *Table {
	return &Table{rates: make(map[string]model.RateVector)}
}

// Put stores v under name. A repeated name keeps its first position and
// takes the latest rates.
func (t *Table) Put(name string, v model.RateVector) {
	if _, ok := t.rates[name]; !ok {
		t.names = append(t.names, name)
	}
	t.rates[name] = v
}

// Get 按名称精确查找
func (t *Table) Get(name string) (model.RateVector, bool) {
	v, ok := t.rates[name]
	return v, ok
}

// Names returns member names in sheet order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Len 行数
func (t *Table) Len() int {
	return len(t.names)
}

// Load reads the whole rate sheet. A workbook without the sheet yields an
// empty table: pay cannot be computed, which is not an error.
func Load(acc workbook.Accessor, sheet string) (*Table, error) {
	t := NewTable()
	if !workbook.HasSheet(acc, sheet) {
		return t, nil
	}
	err := scan(acc, sheet, func(r Row) bool {
		t.Put(r.Name, r.Rates)
		return true
	})
	if err != nil {
		if errors.Is(err, workbook.ErrSheetNotFound) {
			return NewTable(), nil
		}
		return nil, fmt.Errorf("read rate sheet %s: %w", sheet, err)
	}
	return t, nil
}

// ParseRate converts a rate cell to a non-negative decimal. Blank,
// non-numeric and negative cells are zero.
func ParseRate(v workbook.Value) decimal.Decimal {
	var d decimal.Decimal
	switch v.Kind {
	case workbook.KindNumber:
		d = decimal.NewFromFloat(v.Number)
	case workbook.KindText:
		s := strings.TrimSpace(v.Text)
		s = strings.NewReplacer(",", "", "¥", "", "￥", "", "円", "").Replace(s)
		parsed, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	default:
		return decimal.Zero
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
