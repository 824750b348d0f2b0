package campaign

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// NotificationType 通知类型
type NotificationType string

const (
	NotifyContributed            NotificationType = "Contributed"
	NotifyMilestoneCreated       NotificationType = "MilestoneCreated"
	NotifyVoteCast               NotificationType = "VoteCast"
	NotifyMilestoneApproved      NotificationType = "MilestoneApproved"
	NotifyMilestoneRejected      NotificationType = "MilestoneRejected"
	NotifyMilestoneFundsReleased NotificationType = "MilestoneFundsReleased"
	NotifyCampaignUpdatePosted   NotificationType = "CampaignUpdatePosted"
	NotifyWithdrawn              NotificationType = "Withdrawn"
	NotifyRefundIssued           NotificationType = "RefundIssued"
)

// Notification 成功请求产生的通知记录，供外部观察者消费
type Notification struct {
	Type      NotificationType
	Milestone int // 里程碑相关通知的下标，其余为 -1
	Donor     common.Address
	Amount    *big.Int
	Approve   bool
	Weight    *big.Int
	Title     string
	At        time.Time
}
