package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yuji-8024/t-kento/internal/dayclass"
	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/workbook"
)

// buildOvertimeWorkbook 构造一个最小的残業報告 workbook：
// まとめ/記入例/残業代 + 两名成员（山田、佐藤）
func buildOvertimeWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetName("Sheet1", "まとめ"))
	for _, name := range []string{"記入例", "山田", "佐藤", "残業代"} {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}

	timeStyle, err := f.NewStyle(&excelize.Style{NumFmt: 20}) // h:mm
	require.NoError(t, err)
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)

	setTime := func(sheet, axis string, dayFraction float64) {
		require.NoError(t, f.SetCellValue(sheet, axis, dayFraction))
		require.NoError(t, f.SetCellStyle(sheet, axis, axis, timeStyle))
	}
	setDate := func(sheet, axis string, d time.Time) {
		require.NoError(t, f.SetCellValue(sheet, axis, d))
		require.NoError(t, f.SetCellStyle(sheet, axis, axis, dateStyle))
	}

	sunday := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)

	// 山田: 日曜深夜 1:30, 水曜(祝日) 深夜 1:30, 水曜 18-22 2:00
	setDate("山田", "B8", sunday)
	setTime("山田", "S8", 1.5/24)
	setDate("山田", "B9", wednesday)
	require.NoError(t, f.SetCellValue("山田", "C9", dayclass.HolidayToken))
	setTime("山田", "S9", 1.5/24)
	setDate("山田", "B10", wednesday)
	setTime("山田", "O10", 2.0/24)
	setTime("山田", "S39", 3.0/24)
	setTime("山田", "O39", 2.0/24)

	// 佐藤: 单价表里没有
	setDate("佐藤", "B8", wednesday)
	setTime("佐藤", "W8", 0.5/24)
	setTime("佐藤", "W39", 0.5/24)

	require.NoError(t, f.SetCellValue("残業代", "C30", "山田 太郎"))
	for axis, v := range map[string]int{"D30": 2000, "E30": 2500, "F30": 3000, "G30": 4000} {
		require.NoError(t, f.SetCellValue("残業代", axis, v))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestProcessFullReport(t *testing.T) {
	p := NewPipeline(Options{})
	rep, err := p.Process(buildOvertimeWorkbook(t), "overtime.xlsx", ViewAll)
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.Len(t, rep.FileHash, 64)
	assert.Positive(t, rep.FileSize)
	assert.Equal(t, []string{"山田", "佐藤"}, rep.Members)
	assert.Empty(t, rep.Warnings)
	assert.Empty(t, rep.Notices)

	require.NotNil(t, rep.Summary)
	require.Len(t, rep.Summary.Rows, 2)
	assert.Equal(t, "3:00", rep.Summary.Rows[0].Display(model.LateNight))
	assert.Equal(t, "2:00", rep.Summary.Rows[0].Display(model.ExtendedEvening))
	assert.Equal(t, "", rep.Summary.Rows[0].Display(model.HolidayDaytime))
	assert.Equal(t, 2, rep.Summary.Stats.MemberCount)
	assert.InDelta(t, 5.5, rep.Summary.Stats.TotalHours, 1e-9)
	assert.InDelta(t, 2.75, rep.Summary.Stats.AverageHours, 1e-9)
	assert.InDelta(t, 5.0, rep.Summary.Stats.MaxHours, 1e-9)

	require.NotNil(t, rep.Split)
	yamada := rep.Split.Rows[0]
	assert.Equal(t, "3:00", yamada.HolidayDisplay(model.LateNight))
	assert.Equal(t, "", yamada.WeekdayDisplay(model.LateNight))
	assert.Equal(t, "2:00", yamada.WeekdayDisplay(model.ExtendedEvening))
	assert.Equal(t, "0:30", rep.Split.Rows[1].WeekdayDisplay(model.ExtendedEarlyMorning))
	assert.InDelta(t, 3.0, rep.Split.Stats.TotalHolidayHours, 1e-9)
	assert.InDelta(t, 2.5, rep.Split.Stats.TotalWeekdayHours, 1e-9)
	assert.InDelta(t, 3.0/5.5, rep.Split.Stats.HolidayRatio, 1e-9)

	require.NotNil(t, rep.Pay)
	require.Len(t, rep.Pay.Rows, 1)
	row := rep.Pay.Rows[0]
	assert.Equal(t, "山田", row.Member)
	assert.Equal(t, "山田 太郎", row.RateName)
	assert.True(t, row.Pay[model.LateNight].Equal(decimal.NewFromInt(12000)), row.Pay[model.LateNight].String())
	assert.True(t, row.Pay[model.ExtendedEvening].Equal(decimal.NewFromInt(4000)))
	assert.True(t, row.TotalPay.Equal(decimal.NewFromInt(16000)))
	assert.InDelta(t, 5.0, row.TotalWorkHours, 1e-9)
	assert.Equal(t, []string{"佐藤"}, rep.Pay.Unmatched)
	assert.InDelta(t, 5.5, rep.Pay.Stats.TotalWorkHours, 1e-9)
	assert.True(t, rep.Pay.Stats.AveragePay.Equal(decimal.NewFromInt(16000)))

	roles := map[string]model.SheetRole{}
	for _, s := range rep.Sheets {
		roles[s.Sheet] = s.Role
	}
	assert.Equal(t, model.SheetRoleReserved, roles["まとめ"])
	assert.Equal(t, model.SheetRoleRate, roles["残業代"])
	assert.Equal(t, model.SheetRoleMember, roles["山田"])

	rec := rep.Record()
	assert.Equal(t, "report", rec.View)
	assert.Equal(t, 5, rec.TotalSheets)
	assert.Equal(t, 2, rec.MemberSheets)
	assert.Equal(t, 2, rec.SkippedSheets)
}

func TestProcessRejectsBadFiles(t *testing.T) {
	p := NewPipeline(Options{})

	_, err := p.Process(bytes.NewBufferString("not a workbook"), "broken.xlsx", ViewAll)
	assert.ErrorIs(t, err, workbook.ErrUnreadable)

	_, err = p.Process(bytes.NewBufferString("a,b"), "data.csv", ViewAll)
	assert.ErrorIs(t, err, workbook.ErrUnsupportedFormat)
}

func TestRunWithoutMembers(t *testing.T) {
	m := workbook.NewMemory()
	m.AddSheet("まとめ")
	m.AddSheet("残業代")

	rep := NewPipeline(Options{}).Run(m, ViewAll)
	assert.Empty(t, rep.Members)
	assert.Equal(t, []string{NoticeNoMembers}, rep.Notices)
	assert.Nil(t, rep.Split)
}

func TestRunWithoutRateSheet(t *testing.T) {
	m := workbook.NewMemory()
	m.Set("山田", "K8", workbook.TimeOfDay(1, 0))
	m.Set("山田", "B8", workbook.DateTime(time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)))

	rep := NewPipeline(Options{}).Run(m, ViewSplit)
	require.NotNil(t, rep.Split)
	assert.Nil(t, rep.Pay)
	assert.Nil(t, rep.Summary)
	assert.Contains(t, rep.Notices, NoticeNoRates)
}

func TestRunCustomReservedSheets(t *testing.T) {
	m := workbook.NewMemory()
	m.Set("集計", "K39", workbook.TimeOfDay(9, 0))
	m.Set("山田", "K39", workbook.TimeOfDay(1, 0))

	rep := NewPipeline(Options{Reserved: []string{"集計"}}).Run(m, ViewSummary)
	assert.Equal(t, []string{"山田"}, rep.Members)
	assert.InDelta(t, 1.0, rep.Summary.Stats.TotalHours, 1e-9)
}

func TestRunRenamedRateSheetIsNotAMember(t *testing.T) {
	m := workbook.NewMemory()
	m.Set("山田", "K39", workbook.TimeOfDay(1, 0))
	m.Set("単価", "C30", workbook.Text("山田"))
	m.Set("単価", "D30", workbook.Number(2000))
	m.Set("単価", "K39", workbook.TimeOfDay(5, 0))

	p := NewPipeline(Options{Reserved: []string{"まとめ"}, RateSheet: "単価"})
	assert.Contains(t, p.Reserved(), "単価")

	rep := p.Run(m, ViewAll)
	assert.Equal(t, []string{"山田"}, rep.Members)
	assert.InDelta(t, 1.0, rep.Summary.Stats.TotalHours, 1e-9)
	for _, s := range rep.Sheets {
		if s.Sheet == "単価" {
			assert.Equal(t, model.SheetRoleRate, s.Role)
		}
	}
}

func TestRunRecordsSheetWarnings(t *testing.T) {
	acc := brokenAccessor{Memory: workbook.NewMemory(), bad: "佐藤"}
	acc.Set("山田", "K39", workbook.TimeOfDay(1, 0))
	acc.AddSheet("佐藤")

	rep := NewPipeline(Options{}).Run(acc, ViewAll)
	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, "佐藤", rep.Warnings[0].Sheet)
	for _, s := range rep.Sheets {
		if s.Sheet == "佐藤" {
			assert.Equal(t, "error", s.Status)
		}
	}
}

type brokenAccessor struct {
	*workbook.Memory
	bad string
}

func (b brokenAccessor) Cell(sheet, axis string) (workbook.Value, error) {
	if sheet == b.bad {
		return workbook.Absent(), workbook.ErrSheetNotFound
	}
	return b.Memory.Cell(sheet, axis)
}
