package api

import (
	"mime"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// DownloadExport 下载导出的 CSV（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		errorResponse(c, http.StatusBadRequest, CodeBadRequest, "token がありません")
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		errorResponse(c, http.StatusNotFound, CodeNotFound, "ダウンロードリンクの有効期限が切れています")
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		errorResponse(c, http.StatusNotFound, CodeNotFound, "エクスポートファイルが存在しません")
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": item.fileName}))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.File(item.filePath)

	h.downloads.delete(token)
	removeExport(item.filePath)
}
