package store

import (
	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/model"
)

// Store 持久化接口。记录行仅追加，活动投影整体覆盖。
type Store interface {
	// 活动状态投影
	SaveSnapshot(s campaign.Snapshot) error
	// LoadSnapshot 无已存活动时返回 (nil, nil)
	LoadSnapshot() (*campaign.Snapshot, error)

	// 资金流水
	CreateContributeRecord(r *model.ContributeRecord) error
	CreateRefundRecord(r *model.RefundRecord) error
	CreateSettlementRecord(r *model.SettlementRecord) error

	// 通知
	CreateEvent(e *model.Event) error
	ListEvents(page, pageSize int) ([]model.Event, int64, error)
}
