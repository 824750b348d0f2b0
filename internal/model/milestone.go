package model

import (
	"time"

	"gorm.io/gorm"
)

// Milestone 里程碑投影，MilestoneIndex 为引擎内的下标
type Milestone struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	MilestoneIndex int       `json:"milestone_index" gorm:"uniqueIndex;not null"`
	Description    string    `json:"description" gorm:"type:text;not null"`
	FundAmount     string    `json:"fund_amount" gorm:"type:numeric(78,0);not null"`
	VoteDeadline   time.Time `json:"vote_deadline" gorm:"not null"`
	YesWeight      string    `json:"yes_weight" gorm:"type:numeric(78,0);default:0"`
	NoWeight       string    `json:"no_weight" gorm:"type:numeric(78,0);default:0"`
	State          string    `json:"state" gorm:"default:'voting'"` // voting, approved, rejected
	Released       bool      `json:"released" gorm:"default:false"`
}
