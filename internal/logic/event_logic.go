package logic

import (
	"github.com/blues/mfs/internal/model"
	"github.com/blues/mfs/internal/store"
)

// EventLogic 通知记录业务逻辑
type EventLogic struct {
	store store.Store
}

// NewEventLogic 创建通知记录业务逻辑
func NewEventLogic(s store.Store) *EventLogic {
	return &EventLogic{store: s}
}

// ListEvents 分页查询通知记录
func (l *EventLogic) ListEvents(page, pageSize int) ([]model.Event, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return l.store.ListEvents(page, pageSize)
}
