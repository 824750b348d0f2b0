package logic

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/logger"
	"github.com/blues/mfs/internal/model"
	"github.com/blues/mfs/internal/store"
)

// MilestoneLogic 里程碑业务逻辑
type MilestoneLogic struct {
	engine *campaign.Campaign
	store  store.Store
}

// NewMilestoneLogic 创建里程碑业务逻辑
func NewMilestoneLogic(engine *campaign.Campaign, s store.Store) *MilestoneLogic {
	return &MilestoneLogic{engine: engine, store: s}
}

// CreateMilestone 创建里程碑
func (l *MilestoneLogic) CreateMilestone(caller common.Address, description string, fundAmount *big.Int, votingDuration time.Duration) (int, error) {
	index, err := l.engine.CreateMilestone(caller, description, fundAmount, votingDuration)
	if err != nil {
		return 0, err
	}
	l.persistProjection()
	return index, nil
}

// Vote 投票
func (l *MilestoneLogic) Vote(index int, donor common.Address, approve bool) error {
	if err := l.engine.Vote(index, donor, approve); err != nil {
		return err
	}
	l.persistProjection()
	return nil
}

// FinalizeVote 结束投票并结算
func (l *MilestoneLogic) FinalizeVote(index int) (campaign.MilestoneState, error) {
	state, err := l.engine.FinalizeVote(index)
	if err != nil {
		return "", err
	}
	l.persistProjection()
	return state, nil
}

// ReleaseFunds 发放里程碑资金并落库结算流水
func (l *MilestoneLogic) ReleaseFunds(index int, caller common.Address) error {
	if err := l.engine.ReleaseFunds(index, caller); err != nil {
		return err
	}

	m, err := l.engine.MilestoneByIndex(index)
	if err == nil {
		milestoneIndex := index
		record := model.SettlementRecord{
			RequestID:      uuid.NewString(),
			SettlementType: string(model.SettlementTypeRelease),
			MilestoneIndex: &milestoneIndex,
			ToAddress:      caller.Hex(),
			Amount:         m.FundAmount.String(),
		}
		if err := l.store.CreateSettlementRecord(&record); err != nil {
			logger.Error("Failed to persist release record for milestone %d: %v", index, err)
		}
	}
	l.persistProjection()
	return nil
}

// MilestoneView 里程碑视图
type MilestoneView struct {
	Index         int       `json:"index"`
	Description   string    `json:"description"`
	FundAmount    string    `json:"fund_amount"`
	VoteDeadline  time.Time `json:"vote_deadline"`
	YesWeight     string    `json:"yes_weight"`
	NoWeight      string    `json:"no_weight"`
	State         string    `json:"state"`
	Released      bool      `json:"released"`
	YesPercentage int64     `json:"yes_percentage"`
}

// GetMilestone 按下标读取里程碑
func (l *MilestoneLogic) GetMilestone(index int) (MilestoneView, error) {
	m, err := l.engine.MilestoneByIndex(index)
	if err != nil {
		return MilestoneView{}, err
	}
	pct, err := l.engine.YesPercentage(index)
	if err != nil {
		return MilestoneView{}, err
	}
	return MilestoneView{
		Index:         m.Index,
		Description:   m.Description,
		FundAmount:    m.FundAmount.String(),
		VoteDeadline:  m.VoteDeadline,
		YesWeight:     m.YesWeight.String(),
		NoWeight:      m.NoWeight.String(),
		State:         string(m.State),
		Released:      m.Released,
		YesPercentage: pct,
	}, nil
}

// ListMilestones 全部里程碑
func (l *MilestoneLogic) ListMilestones() ([]MilestoneView, error) {
	count := l.engine.MilestoneCount()
	views := make([]MilestoneView, 0, count)
	for i := 0; i < count; i++ {
		v, err := l.GetMilestone(i)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// HasVoted 查询投票标志
func (l *MilestoneLogic) HasVoted(index int, donor common.Address) (bool, error) {
	return l.engine.HasVoted(index, donor)
}

// DueMilestones 投票期已过而仍在投票状态的里程碑下标
func (l *MilestoneLogic) DueMilestones(now time.Time) []int {
	var due []int
	for i := 0; i < l.engine.MilestoneCount(); i++ {
		m, err := l.engine.MilestoneByIndex(i)
		if err != nil {
			continue
		}
		if m.State == campaign.MilestoneStateVoting && now.After(m.VoteDeadline) {
			due = append(due, i)
		}
	}
	return due
}

// persistProjection 覆盖写入活动投影，失败只记录日志
func (l *MilestoneLogic) persistProjection() {
	if err := l.store.SaveSnapshot(l.engine.Snapshot()); err != nil {
		logger.Error("Failed to persist campaign projection: %v", err)
	}
}
