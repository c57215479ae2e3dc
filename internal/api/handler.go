// Package api serves the overtime workbook engine over HTTP.
package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yuji-8024/t-kento/internal/exporter"
	"github.com/yuji-8024/t-kento/internal/logging"
	"github.com/yuji-8024/t-kento/internal/report"
	"github.com/yuji-8024/t-kento/internal/store"
)

// DownloadTTL 下载链接有效期
const DownloadTTL = 10 * time.Minute

// Options 处理器依赖
type Options struct {
	Pipeline       *report.Pipeline
	Exporter       *exporter.Exporter
	Store          *store.Store // 为 nil 时不记录运行日志
	MaxUploadBytes int64
	Logger         *slog.Logger
	Version        string
}

// Handler API 处理器
type Handler struct {
	pipeline  *report.Pipeline
	exporter  *exporter.Exporter
	store     *store.Store
	downloads *exportDownloadStore
	maxUpload int64
	logger    *slog.Logger
	version   string
	startedAt time.Time
}

// NewHandler 创建 API 处理器
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &Handler{
		pipeline:  opts.Pipeline,
		exporter:  opts.Exporter,
		store:     opts.Store,
		downloads: newExportDownloadStore(),
		maxUpload: maxUpload,
		logger:    logger,
		version:   opts.Version,
		startedAt: time.Now(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 残業時間集計
	router.POST("/summary", h.Summary)
	// 休日平日仕訳 + 残業代計算
	router.POST("/split", h.Split)

	// 运行记录
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id", h.GetRun)

	// CSV 下载（一次性）
	router.GET("/export/download/:token", h.DownloadExport)
}
