package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blues/mfs/internal/campaign"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// EngineErrorResponse 将引擎前置条件错误映射为 HTTP 状态码
func EngineErrorResponse(c *gin.Context, err error) {
	ErrorResponse(c, statusForError(err), err.Error())
}

// statusForError 引擎错误到状态码的映射
func statusForError(err error) int {
	switch {
	case errors.Is(err, campaign.ErrNotOwner),
		errors.Is(err, campaign.ErrNotADonor):
		return http.StatusForbidden
	case errors.Is(err, campaign.ErrInvalidMilestone),
		errors.Is(err, campaign.ErrInvalidUpdate):
		return http.StatusNotFound
	case errors.Is(err, campaign.ErrZeroAmount),
		errors.Is(err, campaign.ErrInvalidAmount),
		errors.Is(err, campaign.ErrEmptyDescription),
		errors.Is(err, campaign.ErrEmptyTitle),
		errors.Is(err, campaign.ErrInvalidDuration),
		errors.Is(err, campaign.ErrOverflow):
		return http.StatusBadRequest
	case errors.Is(err, campaign.ErrTransferFailed):
		return http.StatusBadGateway
	default:
		// 时间门控、状态门控和资金不足都是当前状态下的冲突
		return http.StatusConflict
	}
}
