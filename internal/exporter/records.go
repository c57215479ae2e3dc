package exporter

import (
	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/report"
	"github.com/yuji-8024/t-kento/internal/util"
)

// summaryRecord 残業時間集計 CSV 行
type summaryRecord struct {
	Member         string `csv:"メンバー"`
	HolidayDaytime string `csv:"休日時間帯の応動（09:00-18:00）"`
	Evening        string `csv:"平日・休日時間外の応動（18:00-22:00）"`
	LateNight      string `csv:"平日・休日深夜の応動（22:00-05:00）"`
	EarlyMorning   string `csv:"平日・休日時間外の応動（05:00-09:00）"`
}

// splitRecord 休日平日仕訳 CSV 行
type splitRecord struct {
	Member                string `csv:"メンバー"`
	HolidayDaytimeHoliday string `csv:"休日時間帯の応動（09:00-18:00）_休日"`
	HolidayDaytimeWeekday string `csv:"休日時間帯の応動（09:00-18:00）_平日"`
	EveningHoliday        string `csv:"平日・休日時間外の応動（18:00-22:00）_休日"`
	EveningWeekday        string `csv:"平日・休日時間外の応動（18:00-22:00）_平日"`
	LateNightHoliday      string `csv:"平日・休日深夜の応動（22:00-05:00）_休日"`
	LateNightWeekday      string `csv:"平日・休日深夜の応動（22:00-05:00）_平日"`
	EarlyMorningHoliday   string `csv:"平日・休日時間外の応動（05:00-09:00）_休日"`
	EarlyMorningWeekday   string `csv:"平日・休日時間外の応動（05:00-09:00）_平日"`
}

// payRecord 残業代計算 CSV 行：稼働 4 列在左，請求 4 列在右
type payRecord struct {
	Member             string `csv:"メンバー"`
	WorkHolidayDaytime string `csv:"稼働：休日時間帯の応動（09:00-18:00）"`
	WorkEvening        string `csv:"稼働：平日・休日時間外の応動（18:00-22:00）"`
	WorkLateNight      string `csv:"稼働：平日・休日深夜の応動（22:00-05:00）"`
	WorkEarlyMorning   string `csv:"稼働：平日・休日時間外の応動（05:00-09:00）"`
	PayHolidayDaytime  string `csv:"請求：休日時間帯の応動（09:00-18:00）"`
	PayEvening         string `csv:"請求：平日・休日時間外の応動（18:00-22:00）"`
	PayLateNight       string `csv:"請求：平日・休日深夜の応動（22:00-05:00）"`
	PayEarlyMorning    string `csv:"請求：平日・休日時間外の応動（05:00-09:00）"`
	TotalWorkHours     string `csv:"稼働時間"`
	TotalPay           string `csv:"請求額"`
}

func summaryRecords(v *report.SummaryView) []*summaryRecord {
	out := make([]*summaryRecord, 0, len(v.Rows))
	for _, r := range v.Rows {
		out = append(out, &summaryRecord{
			Member:         r.Member,
			HolidayDaytime: r.Display(model.HolidayDaytime),
			Evening:        r.Display(model.ExtendedEvening),
			LateNight:      r.Display(model.LateNight),
			EarlyMorning:   r.Display(model.ExtendedEarlyMorning),
		})
	}
	return out
}

func splitRecords(v *report.SplitView) []*splitRecord {
	out := make([]*splitRecord, 0, len(v.Rows))
	for _, r := range v.Rows {
		out = append(out, &splitRecord{
			Member:                r.Member,
			HolidayDaytimeHoliday: r.HolidayDisplay(model.HolidayDaytime),
			HolidayDaytimeWeekday: r.WeekdayDisplay(model.HolidayDaytime),
			EveningHoliday:        r.HolidayDisplay(model.ExtendedEvening),
			EveningWeekday:        r.WeekdayDisplay(model.ExtendedEvening),
			LateNightHoliday:      r.HolidayDisplay(model.LateNight),
			LateNightWeekday:      r.WeekdayDisplay(model.LateNight),
			EarlyMorningHoliday:   r.HolidayDisplay(model.ExtendedEarlyMorning),
			EarlyMorningWeekday:   r.WeekdayDisplay(model.ExtendedEarlyMorning),
		})
	}
	return out
}

func payRecords(v *report.PayView) []*payRecord {
	out := make([]*payRecord, 0, len(v.Rows))
	for _, r := range v.Rows {
		out = append(out, &payRecord{
			Member:             r.Member,
			WorkHolidayDaytime: util.FormatWorkHours(r.WorkHours[model.HolidayDaytime]),
			WorkEvening:        util.FormatWorkHours(r.WorkHours[model.ExtendedEvening]),
			WorkLateNight:      util.FormatWorkHours(r.WorkHours[model.LateNight]),
			WorkEarlyMorning:   util.FormatWorkHours(r.WorkHours[model.ExtendedEarlyMorning]),
			PayHolidayDaytime:  util.FormatYen(r.Pay[model.HolidayDaytime]),
			PayEvening:         util.FormatYen(r.Pay[model.ExtendedEvening]),
			PayLateNight:       util.FormatYen(r.Pay[model.LateNight]),
			PayEarlyMorning:    util.FormatYen(r.Pay[model.ExtendedEarlyMorning]),
			TotalWorkHours:     util.FormatWorkHours(r.TotalWorkHours),
			TotalPay:           util.FormatYen(r.TotalPay),
		})
	}
	return out
}
