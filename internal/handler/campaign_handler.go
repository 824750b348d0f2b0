package handler

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/blues/mfs/internal/logic"
)

// CampaignHandler 活动账本处理器
type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
}

// NewCampaignHandler 创建活动处理器
func NewCampaignHandler(campaignLogic *logic.CampaignLogic) *CampaignHandler {
	return &CampaignHandler{campaignLogic: campaignLogic}
}

// GetCampaign 获取活动概览
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "获取活动信息成功", h.campaignLogic.GetInfo())
}

// GetBalance 查询捐款人余额
func (h *CampaignHandler) GetBalance(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return
	}

	balance := h.campaignLogic.BalanceOf(common.HexToAddress(address))
	SuccessResponse(c, http.StatusOK, "获取余额成功", gin.H{
		"address": common.HexToAddress(address).Hex(),
		"balance": balance.String(),
	})
}

// Contribute 捐款
func (h *CampaignHandler) Contribute(c *gin.Context) {
	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return
	}
	amount, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok || amount.Sign() < 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的金额")
		return
	}

	if err := h.campaignLogic.Contribute(common.HexToAddress(req.Address), amount); err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "捐款成功", gin.H{
		"address": common.HexToAddress(req.Address).Hex(),
		"amount":  amount.String(),
	})
}

// Refund 退款
func (h *CampaignHandler) Refund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return
	}

	amount, err := h.campaignLogic.Refund(common.HexToAddress(req.Address))
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "退款成功", gin.H{
		"address": common.HexToAddress(req.Address).Hex(),
		"amount":  amount.String(),
	})
}

// Withdraw 所有者提取
func (h *CampaignHandler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return
	}

	amount, err := h.campaignLogic.Withdraw(common.HexToAddress(req.Address))
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "提取成功", gin.H{"amount": amount.String()})
}

// EndCampaign 关闭活动标志
func (h *CampaignHandler) EndCampaign(c *gin.Context) {
	var req EndCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return
	}

	if err := h.campaignLogic.EndCampaign(common.HexToAddress(req.Address)); err != nil {
		EngineErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "活动已关闭", nil)
}

// RejectDeposit 拒绝绕过捐款入口的直接转入
func (h *CampaignHandler) RejectDeposit(c *gin.Context) {
	ErrorResponse(c, http.StatusConflict, "不接受直接转入，请使用捐款接口")
}
