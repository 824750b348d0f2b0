package model

import (
	"time"

	"gorm.io/gorm"
)

// VoteRecord 投票记录，仅追加，不可清除。
// 每个 (里程碑, 地址) 组合至多一行，权重为投票时刻的余额快照。
type VoteRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	MilestoneIndex int       `json:"milestone_index" gorm:"not null;uniqueIndex:idx_milestone_voter"`
	VoterAddress   string    `json:"voter_address" gorm:"not null;uniqueIndex:idx_milestone_voter"`
	Approve        bool      `json:"approve" gorm:"not null"`
	Weight         string    `json:"weight" gorm:"type:numeric(78,0);not null"`
	CastAt         time.Time `json:"cast_at" gorm:"not null"`
}
