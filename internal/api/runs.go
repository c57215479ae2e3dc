package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListRuns 最近的运行记录
// GET /api/runs?limit=50
func (h *Handler) ListRuns(c *gin.Context) {
	if h.store == nil {
		errorResponse(c, http.StatusServiceUnavailable, CodeRunLogDisabled, "実行ログは無効です")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 500 {
		errorResponse(c, http.StatusBadRequest, CodeBadRequest, "limit が不正です")
		return
	}

	runs, err := h.store.ListRuns(limit)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}
	success(c, gin.H{"runs": runs})
}

// GetRun 单次运行详情（含 sheet 状态）
// GET /api/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	if h.store == nil {
		errorResponse(c, http.StatusServiceUnavailable, CodeRunLogDisabled, "実行ログは無効です")
		return
	}
	id := c.Param("id")
	run, err := h.store.GetRun(id)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}
	if run == nil {
		errorResponse(c, http.StatusNotFound, CodeNotFound, "実行ログが見つかりません")
		return
	}
	sheets, err := h.store.ListRunSheets(id)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}
	success(c, gin.H{"run": run, "sheets": sheets})
}
