package workbook

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newStyledFile(t *testing.T) (*excelize.File, string) {
	t.Helper()

	f := excelize.NewFile()
	sheet := "山田"
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	return f, sheet
}

func setStyled(t *testing.T, f *excelize.File, sheet, axis string, value any, style *excelize.Style) {
	t.Helper()

	require.NoError(t, f.SetCellValue(sheet, axis, value))
	if style == nil {
		return
	}
	id, err := f.NewStyle(style)
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, axis, axis, id))
}

func TestXLSXCellClassification(t *testing.T) {
	f, sheet := newStyledFile(t)
	elapsed := "[h]:mm"
	ymd := "yyyy/m/d"

	setStyled(t, f, sheet, "K8", 0.0625, &excelize.Style{NumFmt: 20})
	setStyled(t, f, sheet, "K9", 1.5, &excelize.Style{CustomNumFmt: &elapsed})
	setStyled(t, f, sheet, "K10", 0.25, nil)
	setStyled(t, f, sheet, "K11", "1:30", nil)
	setStyled(t, f, sheet, "B8", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), nil)
	setStyled(t, f, sheet, "B9", 45445, &excelize.Style{CustomNumFmt: &ymd})
	setStyled(t, f, sheet, "C8", "祝日", nil)

	x := NewXLSX(f)
	t.Cleanup(func() { _ = x.Close() })

	v, err := x.Cell(sheet, "K8")
	require.NoError(t, err)
	assert.Equal(t, KindTimeOfDay, v.Kind)
	assert.Equal(t, 1, v.Hour)
	assert.Equal(t, 30, v.Minute)

	v, err = x.Cell(sheet, "K9")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, v.Kind)
	assert.InDelta(t, 1.5, v.Number, 1e-9)

	v, err = x.Cell(sheet, "K10")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, v.Kind)

	v, err = x.Cell(sheet, "K11")
	require.NoError(t, err)
	assert.Equal(t, Text("1:30"), v)

	v, err = x.Cell(sheet, "B8")
	require.NoError(t, err)
	require.Equal(t, KindDateTime, v.Kind)
	assert.Equal(t, time.Sunday, v.Time.Weekday())

	v, err = x.Cell(sheet, "B9")
	require.NoError(t, err)
	require.Equal(t, KindDateTime, v.Kind)
	assert.Equal(t, "2024-06-02", v.Time.Format("2006-01-02"))

	v, err = x.Cell(sheet, "C8")
	require.NoError(t, err)
	assert.Equal(t, Text("祝日"), v)

	v, err = x.Cell(sheet, "W38")
	require.NoError(t, err)
	assert.True(t, v.IsAbsent())
}

func TestXLSXMissingSheet(t *testing.T) {
	f, _ := newStyledFile(t)
	x := NewXLSX(f)

	_, err := x.Cell("残業代", "C30")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestOpenRoundTrip(t *testing.T) {
	f, sheet := newStyledFile(t)
	setStyled(t, f, sheet, "S8", 0.0625, &excelize.Style{NumFmt: 20})
	_, err := f.NewSheet("残業代")
	require.NoError(t, err)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	wb, err := Open(bytes.NewReader(buf.Bytes()), "overtime.XLSX")
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	assert.Equal(t, []string{sheet, "残業代"}, wb.SheetNames())
	v, err := wb.Cell(sheet, "S8")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(1, 30), v)
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	_, err := Open(bytes.NewReader(nil), "overtime.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Open(bytes.NewReader([]byte("not a zip")), "overtime.xlsx")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestClassifyNumFmtCode(t *testing.T) {
	cases := map[string]numFmtClass{
		"yyyy/m/d":               fmtDate,
		"h:mm":                   fmtTime,
		"[h]:mm":                 fmtElapsed,
		"yyyy/m/d h:mm":          fmtDateTime,
		"0.00":                   fmtGeneral,
		`[$-411]ggge"年"m"月"d"日"`: fmtDate,
		`h"時間"mm"分"`:             fmtTime,
		"[Red]0.00;[Blue]-0.00":  fmtGeneral,
	}
	for code, want := range cases {
		assert.Equal(t, want, classifyNumFmtCode(code), code)
	}
}

func TestValueFromText(t *testing.T) {
	assert.Equal(t, Number(0.0625), valueFromText("0.0625"))
	assert.Equal(t, Text("1:30"), valueFromText("1:30"))
	assert.Equal(t, Text("土"), valueFromText("土"))

	v := valueFromText("2024-06-05")
	require.Equal(t, KindDateTime, v.Kind)
	assert.Equal(t, time.Wednesday, v.Time.Weekday())
}

func TestMemoryAccessor(t *testing.T) {
	m := NewMemory()
	m.Set("山田", "K8", TimeOfDay(2, 0))
	m.AddSheet("残業代")

	assert.Equal(t, []string{"山田", "残業代"}, m.SheetNames())
	assert.True(t, HasSheet(m, "残業代"))

	v, err := m.Cell("山田", "K9")
	require.NoError(t, err)
	assert.True(t, v.IsAbsent())

	_, err = m.Cell("佐藤", "K8")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}
