// Package report runs one uploaded workbook through aggregation and pay
// computation and shapes the results into the three user-facing views.
package report

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/yuji-8024/t-kento/internal/aggregate"
	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/pay"
	"github.com/yuji-8024/t-kento/internal/rates"
	"github.com/yuji-8024/t-kento/internal/workbook"
)

// View 需要生成的视图
type View int

const (
	ViewSummary View = 1 << iota // 残業時間集計
	ViewSplit                    // 休日平日仕訳 + 残業代計算

	ViewAll = ViewSummary | ViewSplit
)

func (v View) String() string {
	switch v {
	case ViewSummary:
		return "summary"
	case ViewSplit:
		return "split"
	case ViewAll:
		return "report"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// 用户可见提示
const (
	NoticeNoMembers   = "メンバーのシートが見つかりませんでした。"
	NoticeNoData      = "残業時間のデータが見つかりませんでした。"
	NoticeNoRates     = "残業代シートから単価データを読み込めませんでした。"
	NoticeNoPayResult = "残業代の計算に失敗しました。"
)

// Options 流水线选项
type Options struct {
	Reserved  []string
	RateSheet string
	Logger    *slog.Logger
}

// Pipeline 处理单个工作簿
type Pipeline struct {
	agg       *aggregate.Aggregator
	rateSheet string
	logger    *slog.Logger
	now       func() time.Time
}

// NewPipeline 创建流水线
func NewPipeline(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rateSheet := opts.RateSheet
	if rateSheet == "" {
		rateSheet = rates.DefaultSheet
	}
	// 单价表不论是否列入固定名单都不是成员表
	reserved := opts.Reserved
	if len(reserved) == 0 {
		reserved = aggregate.DefaultReservedSheets
	}
	if !slices.Contains(reserved, rateSheet) {
		reserved = append(slices.Clone(reserved), rateSheet)
	}
	return &Pipeline{
		agg:       aggregate.New(aggregate.Options{Reserved: reserved, Logger: logger}),
		rateSheet: rateSheet,
		logger:    logger,
		now:       time.Now,
	}
}

// Reserved 当前使用的固定 sheet 名单
func (p *Pipeline) Reserved() []string {
	return p.agg.Reserved()
}

// RateSheet 单价表名称
func (p *Pipeline) RateSheet() string {
	return p.rateSheet
}

// Report 一次处理的完整结果
type Report struct {
	RunID     string               `json:"runId"`
	Filename  string               `json:"filename,omitempty"`
	FileSize  int64                `json:"fileSize,omitempty"`
	FileHash  string               `json:"fileHash,omitempty"`
	View      View                 `json:"-"`
	Sheets    []model.SheetStatus  `json:"sheets"`
	Reserved  []string             `json:"reserved"`
	Members   []string             `json:"members"`
	Summary   *SummaryView         `json:"summary,omitempty"`
	Split     *SplitView           `json:"split,omitempty"`
	Pay       *PayView             `json:"pay,omitempty"`
	Warnings  []model.SheetWarning `json:"warnings,omitempty"`
	Notices   []string             `json:"notices,omitempty"`
	Undated   int                  `json:"undated,omitempty"`
	StartedAt time.Time            `json:"startedAt"`
	Duration  time.Duration        `json:"duration"`
}

// Process reads a whole upload, opens it by extension and runs it. Open
// failures are returned wrapped; nothing partial is produced.
func (p *Pipeline) Process(r io.Reader, filename string, views View) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", workbook.ErrUnreadable, err)
	}
	wb, err := workbook.Open(bytes.NewReader(data), filename)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sum := sha256.Sum256(data)
	rep := p.Run(wb, views)
	rep.Filename = filename
	rep.FileSize = int64(len(data))
	rep.FileHash = hex.EncodeToString(sum[:])
	return rep, nil
}

// Run builds the requested views from an already opened workbook.
func (p *Pipeline) Run(acc workbook.Accessor, views View) *Report {
	start := p.now()
	rep := &Report{
		RunID:     uuid.NewString(),
		View:      views,
		Reserved:  p.agg.Reserved(),
		StartedAt: start,
	}
	rep.Members = p.agg.Members(acc)
	logger := p.logger.With("run", rep.RunID)
	logger.Info("workbook opened", "sheets", len(acc.SheetNames()), "members", len(rep.Members), "view", views.String())

	if len(rep.Members) == 0 {
		rep.Notices = append(rep.Notices, NoticeNoMembers)
	} else {
		if views&ViewSummary != 0 {
			p.runSummary(acc, rep)
		}
		if views&ViewSplit != 0 {
			p.runSplit(acc, rep, logger)
		}
	}

	rep.Sheets = p.sheetStatuses(acc, rep)
	rep.Duration = p.now().Sub(start)
	logger.Info("workbook processed", "warnings", len(rep.Warnings), "undated", rep.Undated, "duration", rep.Duration)
	return rep
}

func (p *Pipeline) runSummary(acc workbook.Accessor, rep *Report) {
	res := p.agg.Summarize(acc, rep.Members)
	rep.Warnings = appendWarnings(rep.Warnings, res.Warnings)
	rep.Summary = BuildSummary(res)
	if len(rep.Summary.Rows) == 0 {
		rep.Notices = append(rep.Notices, NoticeNoData)
	}
}

func (p *Pipeline) runSplit(acc workbook.Accessor, rep *Report, logger *slog.Logger) {
	split := p.agg.Aggregate(acc, rep.Members)
	rep.Warnings = appendWarnings(rep.Warnings, split.Warnings)
	rep.Undated = split.Undated
	rep.Split = BuildSplit(split)
	if len(rep.Split.Rows) == 0 {
		rep.Notices = append(rep.Notices, NoticeNoData)
		return
	}

	table, err := rates.Load(acc, p.rateSheet)
	if err != nil {
		logger.Warn("rate sheet unreadable", "sheet", p.rateSheet, "error", err)
		rep.Warnings = append(rep.Warnings, model.SheetWarning{Sheet: p.rateSheet, Message: err.Error()})
		table = rates.NewTable()
	}
	if table.Len() == 0 {
		rep.Notices = append(rep.Notices, NoticeNoRates)
		return
	}

	pr := pay.ComputeAll(split, table)
	for member, hits := range pr.Ambiguous {
		logger.Warn("member matches several rate rows", "member", member, "candidates", hits, "used", pr.RateName[member])
	}
	rep.Pay = BuildPay(pr, split)
	if len(rep.Pay.Rows) == 0 {
		rep.Notices = append(rep.Notices, NoticeNoPayResult)
	}
}

func (p *Pipeline) sheetStatuses(acc workbook.Accessor, rep *Report) []model.SheetStatus {
	failed := make(map[string]string, len(rep.Warnings))
	for _, w := range rep.Warnings {
		failed[w.Sheet] = w.Message
	}
	reserved := make(map[string]bool, len(rep.Reserved))
	for _, name := range rep.Reserved {
		reserved[name] = true
	}

	names := acc.SheetNames()
	out := make([]model.SheetStatus, 0, len(names))
	for _, name := range names {
		st := model.SheetStatus{Sheet: name, Role: model.SheetRoleMember, Status: "processed"}
		switch {
		case name == p.rateSheet:
			st.Role = model.SheetRoleRate
			if rep.Pay == nil {
				st.Status = "skipped"
			}
		case reserved[name]:
			st.Role = model.SheetRoleReserved
			st.Status = "skipped"
		}
		if msg, ok := failed[name]; ok {
			st.Status = "error"
			st.Error = msg
		}
		out = append(out, st)
	}
	return out
}

// appendWarnings adds warnings for sheets not reported yet; the summary and
// split passes usually fail on the same sheet.
func appendWarnings(dst, src []model.SheetWarning) []model.SheetWarning {
	for _, w := range src {
		dup := false
		for _, d := range dst {
			if d.Sheet == w.Sheet {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, w)
		}
	}
	return dst
}

// Record converts the report into run log metadata.
func (r *Report) Record() *model.RunRecord {
	skipped := 0
	for _, s := range r.Sheets {
		if s.Status != "processed" {
			skipped++
		}
	}
	return &model.RunRecord{
		ID:            r.RunID,
		Filename:      r.Filename,
		FileSize:      r.FileSize,
		FileHash:      r.FileHash,
		View:          r.View.String(),
		TotalSheets:   len(r.Sheets),
		MemberSheets:  len(r.Members),
		SkippedSheets: skipped,
		Warnings:      len(r.Warnings),
		Status:        "success",
		Duration:      r.Duration,
		StartedAt:     r.StartedAt,
	}
}
