package data

import (
	"net/http"

	"meal-planner/internal/core/storage"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 資料匯出匯入處理程序
type Handler struct {
	store storage.Store
}

// NewHandler 創建資料匯出匯入處理程序
func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store}
}

// HandleExport 匯出全部持久化資料
func (h *Handler) HandleExport(c *gin.Context) {
	payload, err := storage.ExportData(c.Request.Context(), h.store)
	if err != nil {
		common.LogError("資料匯出失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": common.ErrStorageUnavailable.Message,
			"code":  common.ErrStorageUnavailable.Code,
		})
		return
	}
	c.JSON(http.StatusOK, payload)
}

// HandleImport 匯入資料
// 逐鍵驗證、逐鍵寫入：格式不對的鍵跳過，其餘照常匯入
func (h *Handler) HandleImport(c *gin.Context) {
	var payload storage.ExportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": common.ErrInvalidImportFormat.Message,
			"code":  common.ErrInvalidImportFormat.Code,
		})
		return
	}

	report, err := storage.ImportData(c.Request.Context(), h.store, &payload)
	if err != nil {
		common.LogError("資料匯入失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": common.ErrStorageUnavailable.Message,
			"code":  common.ErrStorageUnavailable.Code,
		})
		return
	}

	common.LogInfo("資料匯入完成",
		zap.Strings("imported", report.Imported),
		zap.Strings("skipped", report.Skipped),
	)
	c.JSON(http.StatusOK, report)
}
