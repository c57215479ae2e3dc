package workbook

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrUnreadable is returned when the uploaded document cannot be opened.
	ErrUnreadable = errors.New("workbook unreadable")
	// ErrUnsupportedFormat is returned for file extensions other than .xlsx/.xlsm/.xls.
	ErrUnsupportedFormat = errors.New("unsupported workbook format")
	// ErrSheetNotFound is returned when a cell is requested from a missing sheet.
	ErrSheetNotFound = errors.New("sheet not found")
)

// Accessor 只读单元格访问接口
type Accessor interface {
	// SheetNames returns sheet names in workbook order.
	SheetNames() []string
	// Cell returns the raw value at axis (e.g. "K8") on sheet.
	Cell(sheet, axis string) (Value, error)
}

// Workbook 已打开的工作簿
type Workbook interface {
	Accessor
	io.Closer
}

// HasSheet reports whether acc contains a sheet named name.
func HasSheet(acc Accessor, name string) bool {
	for _, s := range acc.SheetNames() {
		if s == name {
			return true
		}
	}
	return false
}

// Axis joins a column letter and a 1-based row, e.g. Axis("K", 8) == "K8".
func Axis(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}

// Open opens r according to the extension of filename.
func Open(r io.Reader, filename string) (Workbook, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		return OpenXLSX(r)
	case ".xls":
		return OpenXLS(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// SupportedExtension reports whether filename can be passed to Open.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	default:
		return false
	}
}
