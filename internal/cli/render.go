package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/report"
	"github.com/yuji-8024/t-kento/internal/util"
)

// rightAfterFirst 除第一列（メンバー）外全部右对齐
func rightAfterFirst(cols int) map[int]bool {
	m := make(map[int]bool, cols)
	for i := 1; i < cols; i++ {
		m[i] = true
	}
	return m
}

func renderReport(s styles, rep *report.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.dim.Render("ファイル:"), rep.Filename)
	fmt.Fprintf(&b, "%s %s\n\n", s.dim.Render("メンバー:"), strings.Join(rep.Members, ", "))

	for _, n := range rep.Notices {
		b.WriteString(s.warn.Render(n) + "\n")
	}
	for _, w := range rep.Warnings {
		b.WriteString(s.warn.Render(w.Message) + "\n")
	}
	if rep.Undated > 0 {
		b.WriteString(s.warn.Render(fmt.Sprintf("日付のない行 %d 件は仕訳から除外しました", rep.Undated)) + "\n")
	}
	if len(rep.Notices)+len(rep.Warnings) > 0 || rep.Undated > 0 {
		b.WriteString("\n")
	}

	if rep.Summary != nil {
		b.WriteString(renderSummary(s, rep.Summary))
	}
	if rep.Split != nil {
		b.WriteString(renderSplit(s, rep.Split))
	}
	if rep.Pay != nil {
		b.WriteString(renderPay(s, rep.Pay))
	}
	return b.String()
}

func renderSummary(s styles, v *report.SummaryView) string {
	headers := []string{"メンバー"}
	for _, band := range model.Bands() {
		headers = append(headers, band.Label())
	}
	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		row := []string{r.Member}
		for _, band := range model.Bands() {
			row = append(row, r.Display(band))
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString(s.section("残業時間集計"))
	b.WriteString(s.table(headers, rows, rightAfterFirst(len(headers))))
	fmt.Fprintf(&b, "%s %d  %s %s  %s %s  %s %s\n\n",
		s.dim.Render("メンバー数"), v.Stats.MemberCount,
		s.dim.Render("合計"), s.total.Render(util.FormatHoursStat(v.Stats.TotalHours)),
		s.dim.Render("平均"), util.FormatHoursStat(v.Stats.AverageHours),
		s.dim.Render("最大"), util.FormatHoursStat(v.Stats.MaxHours))
	return b.String()
}

func renderSplit(s styles, v *report.SplitView) string {
	headers := []string{"メンバー"}
	for _, band := range model.Bands() {
		headers = append(headers, band.Label()+"_休日", band.Label()+"_平日")
	}
	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		row := []string{r.Member}
		for _, band := range model.Bands() {
			row = append(row, r.HolidayDisplay(band), r.WeekdayDisplay(band))
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString(s.section("休日平日仕訳"))
	b.WriteString(s.table(headers, rows, rightAfterFirst(len(headers))))
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s  %s %s\n\n",
		s.dim.Render("休日"), util.FormatHoursStat(v.Stats.TotalHolidayHours),
		s.dim.Render("平日"), util.FormatHoursStat(v.Stats.TotalWeekdayHours),
		s.dim.Render("合計"), s.total.Render(util.FormatHoursStat(v.Stats.TotalHours)),
		s.dim.Render("休日比率"), util.FormatPercent(v.Stats.HolidayRatio))
	return b.String()
}

func renderPay(s styles, v *report.PayView) string {
	headers := []string{"メンバー", "単価"}
	for _, band := range model.Bands() {
		headers = append(headers, "請求："+band.Label())
	}
	headers = append(headers, "稼働時間", "請求額")

	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		row := []string{r.Member, r.RateName}
		for _, band := range model.Bands() {
			row = append(row, util.FormatYen(r.Pay[band]))
		}
		row = append(row, util.FormatWorkHours(r.TotalWorkHours), util.FormatYen(r.TotalPay))
		rows = append(rows, row)
	}

	align := rightAfterFirst(len(headers))
	align[1] = false

	var b strings.Builder
	b.WriteString(s.section("残業代計算"))
	b.WriteString(s.table(headers, rows, align))
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n",
		s.dim.Render("合計請求額"), s.total.Render(util.FormatYenAlways(v.Stats.TotalPay)),
		s.dim.Render("総稼働時間"), util.FormatHoursStat(v.Stats.TotalWorkHours),
		s.dim.Render("平均請求額"), util.FormatYenAlways(v.Stats.AveragePay))

	if len(v.Unmatched) > 0 {
		b.WriteString(s.warn.Render("単価が見つからないメンバー: "+strings.Join(v.Unmatched, ", ")) + "\n")
	}
	members := make([]string, 0, len(v.Ambiguous))
	for m := range v.Ambiguous {
		members = append(members, m)
	}
	sort.Strings(members)
	for _, m := range members {
		b.WriteString(s.warn.Render(fmt.Sprintf("%s は複数の単価行に一致しました: %s", m, strings.Join(v.Ambiguous[m], ", "))) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}
