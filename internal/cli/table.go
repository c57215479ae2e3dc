package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorHeader = lipgloss.Color("#fe8019")
	colorDim    = lipgloss.Color("#928374")
	colorYellow = lipgloss.Color("#fabd2f")
	colorGreen  = lipgloss.Color("#8ec07c")
)

// styles 终端输出样式；关闭颜色时全部为空样式
type styles struct {
	header lipgloss.Style
	dim    lipgloss.Style
	warn   lipgloss.Style
	total  lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{header: plain, dim: plain, warn: plain, total: plain}
	}
	return styles{
		header: lipgloss.NewStyle().Foreground(colorHeader).Bold(true),
		dim:    lipgloss.NewStyle().Foreground(colorDim),
		warn:   lipgloss.NewStyle().Foreground(colorYellow),
		total:  lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	}
}

// section renders a title with an underline sized to its visible width.
func (s styles) section(title string) string {
	return s.header.Render(title) + "\n" + s.dim.Render(strings.Repeat("─", lipgloss.Width(title))) + "\n"
}

// table renders an aligned table. Widths come from lipgloss.Width so
// full-width member names and labels line up.
func (s styles) table(headers []string, rows [][]string, rightAlign map[int]bool) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if style != nil {
				cell = style.Render(cell)
			}
			if rightAlign[i] {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, &s.header)
	for i, w := range widths {
		b.WriteString(s.dim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}
