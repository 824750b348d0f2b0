package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blues/mfs/internal/logic"
)

// EventHandler 通知记录处理器
type EventHandler struct {
	eventLogic *logic.EventLogic
}

// NewEventHandler 创建通知记录处理器
func NewEventHandler(eventLogic *logic.EventLogic) *EventHandler {
	return &EventHandler{eventLogic: eventLogic}
}

// GetEvents 分页获取通知记录
func (h *EventHandler) GetEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	events, total, err := h.eventLogic.ListEvents(page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	pagination := Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	SuccessResponse(c, http.StatusOK, "获取通知记录成功", GetEventsResponse{
		Events:     events,
		Pagination: pagination,
	})
}
