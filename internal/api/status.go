package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态
type StatusResponse struct {
	Version          string   `json:"version"`
	Uptime           string   `json:"uptime"`
	RunLog           bool     `json:"runLog"`
	TotalRuns        int      `json:"totalRuns"`
	LastRunAt        string   `json:"lastRunAt"`
	PendingDownloads int      `json:"pendingDownloads"`
	ReservedSheets   []string `json:"reservedSheets"`
	MaxUploadBytes   int64    `json:"maxUploadBytes"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Version:          h.version,
		Uptime:           time.Since(h.startedAt).Round(time.Second).String(),
		RunLog:           h.store != nil,
		PendingDownloads: h.downloads.count(),
		ReservedSheets:   h.pipeline.Reserved(),
		MaxUploadBytes:   h.maxUpload,
	}

	if h.store != nil {
		if n, err := h.store.CountRuns(); err == nil {
			resp.TotalRuns = n
		}
		if runs, err := h.store.ListRuns(1); err == nil && len(runs) > 0 {
			resp.LastRunAt = runs[0].StartedAt.Format(time.RFC3339)
		}
	}

	success(c, resp)
}
