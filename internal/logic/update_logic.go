package logic

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/logger"
	"github.com/blues/mfs/internal/store"
)

// UpdateLogic 项目更新业务逻辑
type UpdateLogic struct {
	engine *campaign.Campaign
	store  store.Store
}

// NewUpdateLogic 创建项目更新业务逻辑
func NewUpdateLogic(engine *campaign.Campaign, s store.Store) *UpdateLogic {
	return &UpdateLogic{engine: engine, store: s}
}

// PostUpdate 发布更新
func (l *UpdateLogic) PostUpdate(caller common.Address, title, content string) (int, error) {
	index, err := l.engine.PostUpdate(caller, title, content)
	if err != nil {
		return 0, err
	}
	if err := l.store.SaveSnapshot(l.engine.Snapshot()); err != nil {
		logger.Error("Failed to persist campaign projection: %v", err)
	}
	return index, nil
}

// UpdateView 更新视图
type UpdateView struct {
	Index    int       `json:"index"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	PostedAt time.Time `json:"posted_at"`
}

// GetUpdate 按下标读取更新
func (l *UpdateLogic) GetUpdate(index int) (UpdateView, error) {
	u, err := l.engine.UpdateByIndex(index)
	if err != nil {
		return UpdateView{}, err
	}
	return UpdateView{Index: u.Index, Title: u.Title, Content: u.Content, PostedAt: u.PostedAt}, nil
}

// ListUpdates 全部更新
func (l *UpdateLogic) ListUpdates() ([]UpdateView, error) {
	count := l.engine.UpdateCount()
	views := make([]UpdateView, 0, count)
	for i := 0; i < count; i++ {
		v, err := l.GetUpdate(i)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
