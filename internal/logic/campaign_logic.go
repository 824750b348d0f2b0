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

// CampaignLogic 活动账本业务逻辑
type CampaignLogic struct {
	engine *campaign.Campaign
	store  store.Store
}

// NewCampaignLogic 创建活动业务逻辑
func NewCampaignLogic(engine *campaign.Campaign, s store.Store) *CampaignLogic {
	return &CampaignLogic{engine: engine, store: s}
}

// Contribute 记录捐款并落库流水
func (l *CampaignLogic) Contribute(donor common.Address, amount *big.Int) error {
	if err := l.engine.Contribute(donor, amount); err != nil {
		return err
	}

	record := model.ContributeRecord{
		RequestID: uuid.NewString(),
		Address:   donor.Hex(),
		Amount:    amount.String(),
	}
	if err := l.store.CreateContributeRecord(&record); err != nil {
		logger.Error("Failed to persist contribute record for %s: %v", donor.Hex(), err)
	}
	l.persistProjection()
	return nil
}

// Refund 退款并落库流水，流水金额取引擎串行执行后的实际出账
func (l *CampaignLogic) Refund(donor common.Address) (*big.Int, error) {
	amount, err := l.engine.Refund(donor)
	if err != nil {
		return nil, err
	}

	record := model.RefundRecord{
		RequestID: uuid.NewString(),
		Address:   donor.Hex(),
		Amount:    amount.String(),
	}
	if err := l.store.CreateRefundRecord(&record); err != nil {
		logger.Error("Failed to persist refund record for %s: %v", donor.Hex(), err)
	}
	l.persistProjection()
	return amount, nil
}

// Withdraw 所有者提取并落库结算流水
func (l *CampaignLogic) Withdraw(caller common.Address) (*big.Int, error) {
	amount, err := l.engine.Withdraw(caller)
	if err != nil {
		return nil, err
	}

	record := model.SettlementRecord{
		RequestID:      uuid.NewString(),
		SettlementType: string(model.SettlementTypeWithdraw),
		ToAddress:      caller.Hex(),
		Amount:         amount.String(),
	}
	if err := l.store.CreateSettlementRecord(&record); err != nil {
		logger.Error("Failed to persist withdrawal record: %v", err)
	}
	l.persistProjection()
	return amount, nil
}

// EndCampaign 关闭活动标志
func (l *CampaignLogic) EndCampaign(caller common.Address) error {
	if err := l.engine.EndCampaign(caller); err != nil {
		return err
	}
	l.persistProjection()
	return nil
}

// BalanceOf 查询余额
func (l *CampaignLogic) BalanceOf(donor common.Address) *big.Int {
	return l.engine.BalanceOf(donor)
}

// Info 活动概览
type Info struct {
	Owner              string        `json:"owner"`
	GoalAmount         string        `json:"goal_amount"`
	Deadline           time.Time     `json:"deadline"`
	Active             bool          `json:"active"`
	TotalContributed   string        `json:"total_contributed"`
	PoolBalance        string        `json:"pool_balance"`
	ProgressPercentage int64         `json:"progress_percentage"`
	TimeRemaining      time.Duration `json:"time_remaining_seconds"`
}

// GetInfo 读取活动概览
func (l *CampaignLogic) GetInfo() Info {
	return Info{
		Owner:              l.engine.Owner().Hex(),
		GoalAmount:         l.engine.GoalAmount().String(),
		Deadline:           l.engine.Deadline(),
		Active:             l.engine.Active(),
		TotalContributed:   l.engine.TotalContributed().String(),
		PoolBalance:        l.engine.PoolBalance().String(),
		ProgressPercentage: l.engine.ProgressPercentage(),
		TimeRemaining:      l.engine.TimeRemaining() / time.Second,
	}
}

// persistProjection 覆盖写入活动投影。失败只记录日志，
// 引擎状态是进程内的事实来源，投影在下一次成功写入时补齐。
func (l *CampaignLogic) persistProjection() {
	if err := l.store.SaveSnapshot(l.engine.Snapshot()); err != nil {
		logger.Error("Failed to persist campaign projection: %v", err)
	}
}
