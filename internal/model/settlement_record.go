package model

import (
	"time"

	"gorm.io/gorm"
)

// SettlementRecord 结算记录，覆盖里程碑发放和所有者提取两类出账
type SettlementRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	RequestID      string `json:"request_id" gorm:"uniqueIndex;not null"`
	SettlementType string `json:"settlement_type" gorm:"not null"` // release, withdraw
	MilestoneIndex *int   `json:"milestone_index"`                 // release 时记录里程碑下标
	ToAddress      string `json:"to_address" gorm:"not null"`
	Amount         string `json:"amount" gorm:"type:numeric(78,0);not null"`
}

// SettlementType 结算类型
type SettlementType string

const (
	SettlementTypeRelease  SettlementType = "release"  // 里程碑资金发放
	SettlementTypeWithdraw SettlementType = "withdraw" // 所有者提取
)
