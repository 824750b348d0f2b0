package store

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// campaignRowID 活动投影单行主键
const campaignRowID = 1

// GormStore 基于 gorm 的持久化实现
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建持久化实现
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// SaveSnapshot 覆盖写入活动投影，单个事务内完成
func (s *GormStore) SaveSnapshot(snap campaign.Snapshot) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		row := model.Campaign{
			ID:               campaignRowID,
			OwnerAddress:     snap.Owner.Hex(),
			GoalAmount:       snap.GoalAmount.String(),
			Deadline:         snap.Deadline,
			Active:           snap.Active,
			TotalContributed: snap.TotalContributed.String(),
			PoolBalance:      snap.PoolBalance.String(),
		}
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to save campaign row: %w", err)
		}

		for donor, balance := range snap.Balances {
			var b model.DonorBalance
			err := tx.Where(model.DonorBalance{Address: donor.Hex()}).
				Assign(map[string]interface{}{"balance": balance.String()}).
				FirstOrCreate(&b).Error
			if err != nil {
				return fmt.Errorf("failed to save balance for %s: %w", donor.Hex(), err)
			}
		}

		for _, m := range snap.Milestones {
			var row model.Milestone
			// 下标可能为零值，条件必须用 map 而不是结构体
			err := tx.Where(map[string]interface{}{"milestone_index": m.Index}).
				Assign(map[string]interface{}{
					"description":   m.Description,
					"fund_amount":   m.FundAmount.String(),
					"vote_deadline": m.VoteDeadline,
					"yes_weight":    m.YesWeight.String(),
					"no_weight":     m.NoWeight.String(),
					"state":         string(m.State),
					"released":      m.Released,
				}).
				FirstOrCreate(&row).Error
			if err != nil {
				return fmt.Errorf("failed to save milestone %d: %w", m.Index, err)
			}
		}

		for _, v := range snap.Votes {
			var row model.VoteRecord
			err := tx.Where(map[string]interface{}{
				"milestone_index": v.Milestone,
				"voter_address":   v.Donor.Hex(),
			}).
				Attrs(map[string]interface{}{
					"approve": v.Approve,
					"weight":  v.Weight.String(),
					"cast_at": v.CastAt,
				}).
				FirstOrCreate(&row).Error
			if err != nil {
				return fmt.Errorf("failed to save vote record: %w", err)
			}
		}

		for _, u := range snap.Updates {
			var row model.CampaignUpdate
			err := tx.Where(map[string]interface{}{"update_index": u.Index}).
				Attrs(map[string]interface{}{
					"title":     u.Title,
					"content":   u.Content,
					"posted_at": u.PostedAt,
				}).
				FirstOrCreate(&row).Error
			if err != nil {
				return fmt.Errorf("failed to save update %d: %w", u.Index, err)
			}
		}

		return nil
	})
}

// LoadSnapshot 读取活动投影，重建引擎快照
func (s *GormStore) LoadSnapshot() (*campaign.Snapshot, error) {
	var row model.Campaign
	if err := s.db.First(&row, campaignRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load campaign row: %w", err)
	}

	goal, err := parseAmount(row.GoalAmount)
	if err != nil {
		return nil, err
	}
	total, err := parseAmount(row.TotalContributed)
	if err != nil {
		return nil, err
	}
	pool, err := parseAmount(row.PoolBalance)
	if err != nil {
		return nil, err
	}

	snap := campaign.Snapshot{
		Owner:            common.HexToAddress(row.OwnerAddress),
		GoalAmount:       goal,
		Deadline:         row.Deadline,
		Active:           row.Active,
		TotalContributed: total,
		PoolBalance:      pool,
		Balances:         make(map[common.Address]*big.Int),
	}

	var balances []model.DonorBalance
	if err := s.db.Find(&balances).Error; err != nil {
		return nil, fmt.Errorf("failed to load balances: %w", err)
	}
	for _, b := range balances {
		amount, err := parseAmount(b.Balance)
		if err != nil {
			return nil, err
		}
		snap.Balances[common.HexToAddress(b.Address)] = amount
	}

	var milestones []model.Milestone
	if err := s.db.Order("milestone_index ASC").Find(&milestones).Error; err != nil {
		return nil, fmt.Errorf("failed to load milestones: %w", err)
	}
	for _, m := range milestones {
		fund, err := parseAmount(m.FundAmount)
		if err != nil {
			return nil, err
		}
		yes, err := parseAmount(m.YesWeight)
		if err != nil {
			return nil, err
		}
		no, err := parseAmount(m.NoWeight)
		if err != nil {
			return nil, err
		}
		snap.Milestones = append(snap.Milestones, campaign.Milestone{
			Index:        m.MilestoneIndex,
			Description:  m.Description,
			FundAmount:   fund,
			VoteDeadline: m.VoteDeadline,
			YesWeight:    yes,
			NoWeight:     no,
			State:        campaign.MilestoneState(m.State),
			Released:     m.Released,
		})
	}

	var votes []model.VoteRecord
	if err := s.db.Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("failed to load vote records: %w", err)
	}
	for _, v := range votes {
		weight, err := parseAmount(v.Weight)
		if err != nil {
			return nil, err
		}
		snap.Votes = append(snap.Votes, campaign.VoteSnapshot{
			Milestone: v.MilestoneIndex,
			Donor:     common.HexToAddress(v.VoterAddress),
			Approve:   v.Approve,
			Weight:    weight,
			CastAt:    v.CastAt,
		})
	}

	var updates []model.CampaignUpdate
	if err := s.db.Order("update_index ASC").Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("failed to load updates: %w", err)
	}
	for _, u := range updates {
		snap.Updates = append(snap.Updates, campaign.Update{
			Index:    u.UpdateIndex,
			Title:    u.Title,
			Content:  u.Content,
			PostedAt: u.PostedAt,
		})
	}

	return &snap, nil
}

// CreateContributeRecord 写入捐款流水
func (s *GormStore) CreateContributeRecord(r *model.ContributeRecord) error {
	return s.db.Create(r).Error
}

// CreateRefundRecord 写入退款流水
func (s *GormStore) CreateRefundRecord(r *model.RefundRecord) error {
	return s.db.Create(r).Error
}

// CreateSettlementRecord 写入结算流水
func (s *GormStore) CreateSettlementRecord(r *model.SettlementRecord) error {
	return s.db.Create(r).Error
}

// CreateEvent 写入通知记录
func (s *GormStore) CreateEvent(e *model.Event) error {
	return s.db.Create(e).Error
}

// ListEvents 分页查询通知记录，按发生时间倒序
func (s *GormStore) ListEvents(page, pageSize int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	if err := s.db.Model(&model.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := s.db.Order("occurred_at DESC").Offset(offset).Limit(pageSize).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// parseAmount 解析 numeric 列中的整数金额
func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount value %q", s)
	}
	return v, nil
}
