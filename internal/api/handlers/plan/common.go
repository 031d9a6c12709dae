package plan

import (
	"errors"
	"net/http"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// respondError 統一的錯誤回應
// 業務錯誤帶自己的狀態碼與代碼，驗證錯誤一律 400，其餘視為 500
func respondError(c *gin.Context, err error) {
	var customErr *common.CustomError
	if errors.As(err, &customErr) {
		c.JSON(customErr.Status, gin.H{
			"error": customErr.Message,
			"code":  customErr.Code,
		})
		return
	}
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
		"code":  common.ErrCodeInternalError,
	})
}
