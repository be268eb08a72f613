// Package handlers HTTP 處理器共用的回應格式
package handlers

import (
	"errors"
	"net/http"

	"recipe-matcher/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody 錯誤回應
type ErrorBody struct {
	Error common.ErrorResponse `json:"error"`
}

// RespondError 依錯誤類型回應對應的狀態碼與錯誤代碼
func RespondError(c *gin.Context, err error) {
	var customErr *common.CustomError
	status := http.StatusInternalServerError
	resp := common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: common.ErrInternalError.Message,
	}

	switch {
	case common.IsValidationError(err):
		status = http.StatusBadRequest
		resp.Code = common.ErrCodeInvalidRequest
		resp.Message = common.ErrInvalidRequest.Message
		resp.Details = err.Error()
	case errors.As(err, &customErr):
		status = customErr.Status
		resp.Code = customErr.Code
		resp.Message = customErr.Message
		if customErr.Err != nil && gin.IsDebugging() {
			resp.Details = customErr.Err.Error()
		}
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求處理失敗", fields...)
	}

	c.AbortWithStatusJSON(status, ErrorBody{Error: resp})
}

// RespondBadRequest 請求格式錯誤
func RespondBadRequest(c *gin.Context, err error) {
	RespondError(c, common.NewValidationError(err.Error()))
}
