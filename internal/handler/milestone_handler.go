package handler

import (
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/blues/mfs/internal/logic"
)

// MilestoneHandler 里程碑处理器
type MilestoneHandler struct {
	milestoneLogic *logic.MilestoneLogic
}

// NewMilestoneHandler 创建里程碑处理器
func NewMilestoneHandler(milestoneLogic *logic.MilestoneLogic) *MilestoneHandler {
	return &MilestoneHandler{milestoneLogic: milestoneLogic}
}

// CreateMilestone 创建里程碑
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return
	}
	fundAmount, ok := new(big.Int).SetString(req.FundAmount, 10)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的金额")
		return
	}

	index, err := h.milestoneLogic.CreateMilestone(
		common.HexToAddress(req.Address),
		req.Description,
		fundAmount,
		time.Duration(req.VotingDays)*24*time.Hour,
	)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "创建里程碑成功", gin.H{"index": index})
}

// GetMilestones 获取全部里程碑
func (h *MilestoneHandler) GetMilestones(c *gin.Context) {
	views, err := h.milestoneLogic.ListMilestones()
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "获取里程碑列表成功", gin.H{"milestones": views})
}

// GetMilestone 按下标获取里程碑
func (h *MilestoneHandler) GetMilestone(c *gin.Context) {
	index, ok := h.parseIndex(c)
	if !ok {
		return
	}

	view, err := h.milestoneLogic.GetMilestone(index)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取里程碑成功", view)
}

// Vote 投票
func (h *MilestoneHandler) Vote(c *gin.Context) {
	index, ok := h.parseIndex(c)
	if !ok {
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return
	}

	if err := h.milestoneLogic.Vote(index, common.HexToAddress(req.Address), *req.Approve); err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "投票成功", gin.H{
		"index":   index,
		"approve": *req.Approve,
	})
}

// GetVoteFlag 查询投票标志
func (h *MilestoneHandler) GetVoteFlag(c *gin.Context) {
	index, ok := h.parseIndex(c)
	if !ok {
		return
	}
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return
	}

	voted, err := h.milestoneLogic.HasVoted(index, common.HexToAddress(address))
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取投票标志成功", gin.H{"has_voted": voted})
}

// FinalizeVote 结束投票，任何人可调用
func (h *MilestoneHandler) FinalizeVote(c *gin.Context) {
	index, ok := h.parseIndex(c)
	if !ok {
		return
	}

	state, err := h.milestoneLogic.FinalizeVote(index)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "投票结算完成", gin.H{
		"index": index,
		"state": string(state),
	})
}

// ReleaseFunds 发放里程碑资金
func (h *MilestoneHandler) ReleaseFunds(c *gin.Context) {
	index, ok := h.parseIndex(c)
	if !ok {
		return
	}

	var req ReleaseFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return
	}

	if err := h.milestoneLogic.ReleaseFunds(index, common.HexToAddress(req.Address)); err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "资金发放成功", gin.H{"index": index})
}

// parseIndex 解析路径中的里程碑下标
func (h *MilestoneHandler) parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("id"))
	if err != nil || index < 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的里程碑下标")
		return 0, false
	}
	return index, true
}
