package workbook

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// xlsMaxCol 成员表只用到 A..W，单价表只用到 C..G，读到 AZ 足够
const xlsMaxCol = 52

// OpenXLS reads a legacy .xls workbook into memory. The BIFF reader only
// exposes formatted text, so cells are re-typed from that text.
func OpenXLS(r io.Reader) (*Memory, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: no worksheet found", ErrUnreadable)
	}

	m := NewMemory()
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		m.AddSheet(sheet.Name)
		for rowIdx := 0; rowIdx <= int(sheet.MaxRow); rowIdx++ {
			row := sheet.Row(rowIdx)
			if row == nil {
				continue
			}
			last := row.LastCol()
			if last > xlsMaxCol {
				last = xlsMaxCol
			}
			for colIdx := row.FirstCol(); colIdx <= last; colIdx++ {
				text := row.Col(colIdx)
				if strings.TrimSpace(text) == "" {
					continue
				}
				col, err := excelize.ColumnNumberToName(colIdx + 1)
				if err != nil {
					continue
				}
				m.Set(sheet.Name, Axis(col, rowIdx+1), valueFromText(text))
			}
		}
	}
	return m, nil
}

// valueFromText re-types formatted cell text: numbers become Number, full
// dates become DateTime, everything else (including "1:30") stays Text.
func valueFromText(text string) Value {
	trimmed := strings.TrimSpace(text)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(f)
	}
	if t, ok := ParseDate(trimmed); ok {
		return DateTime(t)
	}
	return Text(text)
}
