package pay

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuji-8024/t-kento/internal/aggregate"
	"github.com/yuji-8024/t-kento/internal/dayclass"
	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/rates"
	"github.com/yuji-8024/t-kento/internal/workbook"
)

func dec(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func assertDec(t *testing.T, want int64, got decimal.Decimal, note ...string) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "want %d got %s %v", want, got, note)
}

func TestComputeHolidayDaytime(t *testing.T) {
	rv := model.RateVector{HolidayDaytime: dec(3000), EveningWeekday: dec(9999)}
	got := Compute(map[model.Band]model.BandHours{
		model.HolidayDaytime: {HolidayHours: 2.0},
	}, rv)

	p := got[model.HolidayDaytime]
	assertDec(t, 6000, p.HolidayPay)
	assertDec(t, 0, p.WeekdayPay)
	assertDec(t, 6000, p.Total())
}

func TestComputeMatrix(t *testing.T) {
	rv := model.RateVector{
		EveningWeekday: dec(1000), // D
		NightWeekday:   dec(2000), // E
		HolidayDaytime: dec(3000), // F
		HolidayNight:   dec(4000), // G
	}
	one := model.BandHours{HolidayHours: 1, WeekdayHours: 1}
	got := Compute(map[model.Band]model.BandHours{
		model.HolidayDaytime:       one,
		model.ExtendedEvening:      one,
		model.LateNight:            one,
		model.ExtendedEarlyMorning: one,
	}, rv)

	assertDec(t, 3000, got[model.HolidayDaytime].HolidayPay)
	assertDec(t, 0, got[model.HolidayDaytime].WeekdayPay, "weekday daytime is never paid")
	assertDec(t, 3000, got[model.ExtendedEvening].HolidayPay)
	assertDec(t, 1000, got[model.ExtendedEvening].WeekdayPay)
	assertDec(t, 4000, got[model.LateNight].HolidayPay)
	assertDec(t, 2000, got[model.LateNight].WeekdayPay)
	assertDec(t, 4000, got[model.ExtendedEarlyMorning].HolidayPay)
	assertDec(t, 2000, got[model.ExtendedEarlyMorning].WeekdayPay)
	assertDec(t, 19000, got.Total())
}

func TestComputeMissingBandsAreZero(t *testing.T) {
	got := Compute(nil, model.RateVector{HolidayNight: dec(4000)})
	require.Len(t, got, 4)
	assertDec(t, 0, got.Total())
}

func TestAmountSnapsToMinutes(t *testing.T) {
	// 1.33333 h displays as 1:20 and is paid as 80 minutes
	assertDec(t, 4000, Amount(1.33333, dec(3000)))
	assertDec(t, 0, Amount(0, dec(3000)))
	assertDec(t, 0, Amount(2, dec(-1)))
	assert.True(t, Amount(0.5, decimal.RequireFromString("1000.50")).Equal(decimal.RequireFromString("500.25")))
}

func TestSlots(t *testing.T) {
	h, _, ok := Slots(model.HolidayDaytime)
	assert.Equal(t, model.SlotF, h)
	assert.False(t, ok)

	h, w, ok := Slots(model.ExtendedEarlyMorning)
	assert.Equal(t, model.SlotG, h)
	assert.Equal(t, model.SlotE, w)
	assert.True(t, ok)
}

// 日曜の深夜 1:30 と、水曜＋祝日マークの深夜 1:30 は同じ金額になる
func TestEndToEndSundayAndMarkedWednesday(t *testing.T) {
	sunday := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)

	build := func(date time.Time, marker string) *workbook.Memory {
		m := workbook.NewMemory()
		m.AddSheet("まとめ")
		m.Set("山田", "S8", workbook.TimeOfDay(1, 30))
		m.Set("山田", "B8", workbook.DateTime(date))
		if marker != "" {
			m.Set("山田", "C8", workbook.Text(marker))
		}
		m.Set(rates.DefaultSheet, "C30", workbook.Text("山田 太郎"))
		m.Set(rates.DefaultSheet, "G30", workbook.Number(4000))
		return m
	}

	for name, m := range map[string]*workbook.Memory{
		"sunday":          build(sunday, ""),
		"marked wednesday": build(wednesday, dayclass.HolidayToken),
	} {
		t.Run(name, func(t *testing.T) {
			agg := aggregate.New(aggregate.Options{})
			split := agg.Aggregate(m, agg.Members(m))
			require.Equal(t, []string{"山田"}, split.Members)
			assert.InDelta(t, 1.5, split.Hours["山田"][model.LateNight].HolidayHours, 1e-9)

			table, err := rates.Load(m, rates.DefaultSheet)
			require.NoError(t, err)

			res := ComputeAll(split, table)
			require.Equal(t, []string{"山田"}, res.Members)
			assert.Equal(t, "山田 太郎", res.RateName["山田"])
			assertDec(t, 6000, res.Pay["山田"][model.LateNight].HolidayPay)
			assertDec(t, 6000, res.Pay["山田"].Total())
		})
	}
}

func TestComputeAllExcludesUnmatched(t *testing.T) {
	split := aggregate.Result{
		Members: []string{"山田", "佐藤", "鈴木"},
		Hours: map[string]aggregate.MemberHours{
			"山田": {model.LateNight: {HolidayHours: 1}},
			"佐藤": {model.LateNight: {HolidayHours: 1}},
			"鈴木": {model.LateNight: {HolidayHours: 1}},
		},
	}
	table := rates.NewTable()
	table.Put("山田 太郎", model.RateVector{HolidayNight: dec(100)})
	table.Put("佐藤 花子", model.RateVector{HolidayNight: dec(200)})
	table.Put("佐藤 一郎", model.RateVector{HolidayNight: dec(300)})

	res := ComputeAll(split, table)
	assert.Equal(t, []string{"山田", "佐藤"}, res.Members)
	assert.Equal(t, []string{"鈴木"}, res.Unmatched)
	assert.Equal(t, "佐藤 花子", res.RateName["佐藤"])
	assertDec(t, 200, res.Pay["佐藤"].Total())
	assert.Equal(t, []string{"佐藤 花子", "佐藤 一郎"}, res.Ambiguous["佐藤"])
	_, ok := res.Pay["鈴木"]
	assert.False(t, ok)
}

func TestComputeAllWithoutRates(t *testing.T) {
	split := aggregate.Result{Members: []string{"山田"}, Hours: map[string]aggregate.MemberHours{"山田": {}}}
	res := ComputeAll(split, rates.NewTable())
	assert.Empty(t, res.Members)
	assert.Equal(t, []string{"山田"}, res.Unmatched)
}
