package model

import (
	"time"

	"gorm.io/gorm"
)

// CampaignUpdate 项目方更新，仅追加的文本日志
type CampaignUpdate struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	UpdateIndex int       `json:"update_index" gorm:"uniqueIndex;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Content     string    `json:"content" gorm:"type:text"`
	PostedAt    time.Time `json:"posted_at" gorm:"not null"`
}
