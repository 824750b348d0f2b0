package handler

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/blues/mfs/internal/logic"
)

// UpdateHandler 项目更新处理器
type UpdateHandler struct {
	updateLogic *logic.UpdateLogic
}

// NewUpdateHandler 创建项目更新处理器
func NewUpdateHandler(updateLogic *logic.UpdateLogic) *UpdateHandler {
	return &UpdateHandler{updateLogic: updateLogic}
}

// PostUpdate 发布更新
func (h *UpdateHandler) PostUpdate(c *gin.Context) {
	var req PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return
	}

	index, err := h.updateLogic.PostUpdate(common.HexToAddress(req.Address), req.Title, req.Content)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "发布更新成功", gin.H{"index": index})
}

// GetUpdates 获取全部更新
func (h *UpdateHandler) GetUpdates(c *gin.Context) {
	views, err := h.updateLogic.ListUpdates()
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "获取更新列表成功", gin.H{"updates": views})
}

// GetUpdate 按下标获取更新
func (h *UpdateHandler) GetUpdate(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("id"))
	if err != nil || index < 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的更新下标")
		return
	}

	view, err := h.updateLogic.GetUpdate(index)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取更新成功", view)
}
