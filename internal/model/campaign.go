package model

import (
	"time"

	"gorm.io/gorm"
)

// Campaign 活动状态投影，单行，引擎状态的持久化镜像
type Campaign struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// 不可变核心参数
	OwnerAddress string    `json:"owner_address" gorm:"not null"`
	GoalAmount   string    `json:"goal_amount" gorm:"type:numeric(78,0);not null"`
	Deadline     time.Time `json:"deadline" gorm:"not null"`

	// 可变状态
	Active           bool   `json:"active" gorm:"default:true"`
	TotalContributed string `json:"total_contributed" gorm:"type:numeric(78,0);default:0"`
	PoolBalance      string `json:"pool_balance" gorm:"type:numeric(78,0);default:0"`
}
