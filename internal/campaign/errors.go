package campaign

import "errors"

// 前置条件错误，每个失败的请求恰好返回其中一种，状态保持调用前原样
var (
	// 权限
	ErrNotOwner  = errors.New("caller is not the campaign owner")
	ErrNotADonor = errors.New("caller has no contribution balance")

	// 时间门控
	ErrCampaignClosed         = errors.New("campaign deadline has passed")
	ErrVotingNotActive        = errors.New("milestone is not in voting state")
	ErrVotingStillActive      = errors.New("milestone voting period has not ended")
	ErrWithdrawalNotAvailable = errors.New("withdrawal requires the funding goal to be reached")
	ErrRefundUnavailable      = errors.New("refund requires deadline passed and goal not reached")

	// 状态门控
	ErrInvalidMilestone     = errors.New("milestone index out of range")
	ErrInvalidUpdate        = errors.New("update index out of range")
	ErrMilestoneNotApproved = errors.New("milestone is not approved")
	ErrAlreadyReleased      = errors.New("milestone funds already released")
	ErrAlreadyVoted         = errors.New("donor already voted on this milestone")

	// 输入校验
	ErrZeroAmount       = errors.New("amount must be greater than zero")
	ErrInvalidAmount    = errors.New("invalid fund amount")
	ErrEmptyDescription = errors.New("description must not be empty")
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrInvalidDuration  = errors.New("duration must be greater than zero")

	// 资金不足
	ErrInsufficientFunds = errors.New("pool balance below requested amount")
	ErrNothingToWithdraw = errors.New("pool balance is zero")
	ErrNothingToRefund   = errors.New("no contribution balance to refund")

	// 转账与数值
	ErrTransferFailed = errors.New("value transfer failed")
	ErrOverflow       = errors.New("amount overflows the maximum value")
)
