package handler

import "github.com/blues/mfs/internal/model"

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// ContributeRequest 捐款请求
type ContributeRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

// RefundRequest 退款请求
type RefundRequest struct {
	Address string `json:"address" binding:"required"`
}

// WithdrawRequest 提取请求
type WithdrawRequest struct {
	Address string `json:"address" binding:"required"`
}

// EndCampaignRequest 关闭活动请求
type EndCampaignRequest struct {
	Address string `json:"address" binding:"required"`
}

// CreateMilestoneRequest 创建里程碑请求
type CreateMilestoneRequest struct {
	Address     string `json:"address" binding:"required"`
	Description string `json:"description" binding:"required"`
	FundAmount  string `json:"fund_amount" binding:"required"`
	VotingDays  int    `json:"voting_days" binding:"required"`
}

// VoteRequest 投票请求
type VoteRequest struct {
	Address string `json:"address" binding:"required"`
	Approve *bool  `json:"approve" binding:"required"`
}

// ReleaseFundsRequest 发放请求
type ReleaseFundsRequest struct {
	Address string `json:"address" binding:"required"`
}

// PostUpdateRequest 发布更新请求
type PostUpdateRequest struct {
	Address string `json:"address" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// GetEventsResponse 通知记录响应
type GetEventsResponse struct {
	Events     []model.Event `json:"events"`
	Pagination Pagination    `json:"pagination"`
}
