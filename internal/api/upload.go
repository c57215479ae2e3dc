package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yuji-8024/t-kento/internal/model"
	"github.com/yuji-8024/t-kento/internal/report"
	"github.com/yuji-8024/t-kento/internal/util"
	"github.com/yuji-8024/t-kento/internal/workbook"
)

// Download 一个可下载的 CSV
type Download struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// ViewResponse /summary 与 /split 的响应
type ViewResponse struct {
	*report.Report
	Downloads []Download `json:"downloads"`
}

// process 处理一次上传：校验 → 计算 → 导出 → 记录运行日志
func (h *Handler) process(c *gin.Context, view report.View) {
	fh, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, CodeBadRequest, "アップロードファイルが見つかりません")
		return
	}
	if !workbook.SupportedExtension(fh.Filename) {
		errorResponse(c, http.StatusBadRequest, CodeUnsupported, "対応していないファイル形式です（.xlsx / .xls のみ）")
		return
	}
	if fh.Size > h.maxUpload {
		errorResponse(c, http.StatusRequestEntityTooLarge, CodeTooLarge,
			fmt.Sprintf("ファイルサイズが上限（%s）を超えています", util.FormatBytes(h.maxUpload)))
		return
	}

	started := time.Now()
	rep, err := h.run(fh, view)
	if err != nil {
		h.recordFailure(fh, view, started, err)
		status, code := http.StatusInternalServerError, CodeInternal
		if errors.Is(err, workbook.ErrUnreadable) || errors.Is(err, workbook.ErrUnsupportedFormat) {
			status, code = http.StatusUnprocessableEntity, CodeUnreadable
		}
		h.logger.Warn("upload rejected", "file", fh.Filename, "view", view.String(), "error", err)
		errorResponse(c, status, code, "ファイルの読み込み中にエラーが発生しました: "+err.Error())
		return
	}

	resp := ViewResponse{Report: rep, Downloads: []Download{}}
	if h.exporter != nil {
		files, err := h.exporter.Export(rep, nil)
		if err != nil {
			h.logger.Error("export failed", "run", rep.RunID, "error", err)
		}
		for _, f := range files {
			token := h.downloads.put(f, DownloadTTL)
			resp.Downloads = append(resp.Downloads, Download{
				Kind: string(f.Kind),
				Name: f.Name,
				URL:  "/api/export/download/" + token,
				Size: f.Size,
			})
		}
	}

	h.recordRun(rep.Record(), rep.Sheets)
	success(c, resp)
}

func (h *Handler) run(fh *multipart.FileHeader, view report.View) (*report.Report, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return h.pipeline.Process(f, fh.Filename, view)
}

func (h *Handler) recordFailure(fh *multipart.FileHeader, view report.View, started time.Time, cause error) {
	h.recordRun(&model.RunRecord{
		ID:           uuid.NewString(),
		Filename:     fh.Filename,
		FileSize:     fh.Size,
		View:         view.String(),
		Status:       "failed",
		ErrorMessage: cause.Error(),
		Duration:     time.Since(started),
		StartedAt:    started,
	}, nil)
}

func (h *Handler) recordRun(rec *model.RunRecord, sheets []model.SheetStatus) {
	if h.store == nil {
		return
	}
	if err := h.store.RecordRun(rec, sheets); err != nil {
		h.logger.Error("run log write failed", "run", rec.ID, "error", err)
	}
}

// Summary 残業時間集計
// POST /api/summary (multipart: file)
func (h *Handler) Summary(c *gin.Context) {
	h.process(c, report.ViewSummary)
}

// Split 休日平日仕訳と残業代計算
// POST /api/split (multipart: file)
func (h *Handler) Split(c *gin.Context) {
	h.process(c, report.ViewSplit)
}
