package workbook

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// numFmtClass 数字格式分类
type numFmtClass int

const (
	fmtGeneral numFmtClass = iota
	fmtDate
	fmtTime
	fmtDateTime
	fmtElapsed // [h]:mm 之类的累计时长
)

// XLSX is an Accessor backed by excelize.
type XLSX struct {
	file     *excelize.File
	sheets   []string
	date1904 bool
	formats  map[int]numFmtClass
}

// OpenXLSX 读取 .xlsx/.xlsm 工作簿
func OpenXLSX(r io.Reader) (*XLSX, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return NewXLSX(f), nil
}

// NewXLSX wraps an already opened excelize file.
func NewXLSX(f *excelize.File) *XLSX {
	x := &XLSX{
		file:    f,
		sheets:  f.GetSheetList(),
		formats: make(map[int]numFmtClass),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		x.date1904 = *props.Date1904
	}
	return x
}

// SheetNames 按工作簿顺序返回 sheet 名
func (x *XLSX) SheetNames() []string {
	out := make([]string, len(x.sheets))
	copy(out, x.sheets)
	return out
}

// Cell 读取单元格原始值并按数字格式归类
func (x *XLSX) Cell(sheet, axis string) (Value, error) {
	if !HasSheet(x, sheet) {
		return Absent(), fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}

	raw, err := x.file.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return Absent(), fmt.Errorf("read %s!%s: %w", sheet, axis, err)
	}
	if strings.TrimSpace(raw) == "" {
		return Absent(), nil
	}

	cellType, err := x.file.GetCellType(sheet, axis)
	if err != nil {
		return Absent(), fmt.Errorf("cell type %s!%s: %w", sheet, axis, err)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeBool, excelize.CellTypeError:
		return Text(raw), nil
	case excelize.CellTypeDate:
		if t, ok := ParseDate(raw); ok {
			return DateTime(t), nil
		}
		return Text(raw), nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Text(raw), nil
	}

	switch x.formatOf(sheet, axis) {
	case fmtDate, fmtDateTime:
		return x.serialToDateTime(f, raw)
	case fmtTime:
		if f >= 0 && f < 1 {
			return timeOfDayFromFraction(f), nil
		}
		return x.serialToDateTime(f, raw)
	default:
		return Number(f), nil
	}
}

// Close 关闭文件
func (x *XLSX) Close() error {
	if x.file == nil {
		return nil
	}
	return x.file.Close()
}

func (x *XLSX) serialToDateTime(f float64, raw string) (Value, error) {
	t, err := excelize.ExcelDateToTime(f, x.date1904)
	if err != nil {
		return Text(raw), nil
	}
	return DateTime(t), nil
}

func (x *XLSX) formatOf(sheet, axis string) numFmtClass {
	styleID, err := x.file.GetCellStyle(sheet, axis)
	if err != nil {
		return fmtGeneral
	}
	if class, ok := x.formats[styleID]; ok {
		return class
	}

	class := fmtGeneral
	if style, err := x.file.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			class = classifyNumFmtCode(*style.CustomNumFmt)
		} else {
			class = classifyBuiltinNumFmt(style.NumFmt)
		}
	}
	x.formats[styleID] = class
	return class
}

func classifyBuiltinNumFmt(id int) numFmtClass {
	switch {
	case id >= 14 && id <= 17:
		return fmtDate
	case id >= 18 && id <= 21, id == 45, id == 47:
		return fmtTime
	case id == 22:
		return fmtDateTime
	case id == 46:
		return fmtElapsed
	// ja-JP 内置格式：27-31/34-36/50-58 为日期，32/33 为時分
	case id >= 27 && id <= 31, id >= 34 && id <= 36, id >= 50 && id <= 58:
		return fmtDate
	case id == 32 || id == 33:
		return fmtTime
	default:
		return fmtGeneral
	}
}

var (
	reQuoted  = regexp.MustCompile(`"[^"]*"`)
	reBracket = regexp.MustCompile(`\[[^\]]*\]`)
	reElapsed = regexp.MustCompile(`(?i)\[(h+|m+|s+)\]`)
)

func classifyNumFmtCode(code string) numFmtClass {
	// 只看第一段（正数格式）
	if i := strings.Index(code, ";"); i >= 0 {
		code = code[:i]
	}
	if reElapsed.MatchString(code) {
		return fmtElapsed
	}
	code = reQuoted.ReplaceAllString(code, "")
	code = reBracket.ReplaceAllString(code, "")
	code = strings.ReplaceAll(code, `\`, "")
	lower := strings.ToLower(code)

	hasDate := strings.ContainsAny(lower, "yd")
	hasTime := strings.ContainsAny(lower, "hs") || strings.Contains(lower, "am/pm")

	switch {
	case hasDate && hasTime:
		return fmtDateTime
	case hasDate:
		return fmtDate
	case hasTime:
		return fmtTime
	default:
		return fmtGeneral
	}
}

func timeOfDayFromFraction(f float64) Value {
	secs := int(math.Round(f * 86400))
	secs %= 86400
	return TimeOfDay(secs/3600, (secs%3600)/60)
}
