package model

import (
	"time"

	"gorm.io/gorm"
)

// Event 通知记录，每个成功的状态变更请求产生一条
type Event struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	EventType      string    `json:"event_type" gorm:"index;not null"`
	MilestoneIndex int       `json:"milestone_index" gorm:"default:-1"`
	Address        string    `json:"address"`
	Amount         string    `json:"amount" gorm:"type:numeric(78,0)"`
	Data           string    `json:"data" gorm:"type:text"`
	OccurredAt     time.Time `json:"occurred_at" gorm:"index;not null"`
}
