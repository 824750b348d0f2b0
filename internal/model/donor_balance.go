package model

import (
	"time"

	"gorm.io/gorm"
)

// DonorBalance 捐款人余额投影
type DonorBalance struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Address string `json:"address" gorm:"uniqueIndex;not null"`
	Balance string `json:"balance" gorm:"type:numeric(78,0);default:0"`
}
