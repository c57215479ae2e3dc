package workbook

import "fmt"

// Memory is an in-memory Accessor. The .xls backend loads into it and
// tests use it to describe sheets cell by cell.
type Memory struct {
	order  []string
	sheets map[string]map[string]Value
}

// NewMemory 创建空的内存工作簿
func NewMemory() *Memory {
	return &Memory{sheets: make(map[string]map[string]Value)}
}

// AddSheet creates sheet if it does not exist yet.
func (m *Memory) AddSheet(sheet string) {
	if _, ok := m.sheets[sheet]; ok {
		return
	}
	m.order = append(m.order, sheet)
	m.sheets[sheet] = make(map[string]Value)
}

// Set stores v at axis, creating the sheet on first use.
func (m *Memory) Set(sheet, axis string, v Value) {
	m.AddSheet(sheet)
	m.sheets[sheet][axis] = v
}

// SheetNames 按添加顺序返回 sheet 名
func (m *Memory) SheetNames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Cell 读取单元格，未设置的单元格返回 Absent
func (m *Memory) Cell(sheet, axis string) (Value, error) {
	cells, ok := m.sheets[sheet]
	if !ok {
		return Absent(), fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	v, ok := cells[axis]
	if !ok {
		return Absent(), nil
	}
	return v, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
