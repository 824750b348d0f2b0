package model

import (
	"time"

	"gorm.io/gorm"
)

// RefundRecord 退款记录
type RefundRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	RequestID string `json:"request_id" gorm:"uniqueIndex;not null"`
	Address   string `json:"address" gorm:"index;not null"`
	Amount    string `json:"amount" gorm:"type:numeric(78,0);not null"`
}
