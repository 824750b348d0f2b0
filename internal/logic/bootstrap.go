package logic

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/config"
	"github.com/blues/mfs/internal/logger"
	"github.com/blues/mfs/internal/store"
)

// Bootstrap 恢复或创建活动引擎。
// 数据库中已有投影时从投影恢复，否则按配置创建新活动并写入首个投影。
func Bootstrap(cfg config.CampaignConfig, s store.Store, clock campaign.Clock, treasury campaign.Treasury, sink campaign.NotificationSink) (*campaign.Campaign, error) {
	snap, err := s.LoadSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign projection: %w", err)
	}

	if snap != nil {
		engine, err := campaign.Restore(*snap, clock, treasury, sink)
		if err != nil {
			return nil, fmt.Errorf("failed to restore campaign state: %w", err)
		}
		logger.Info("Restored campaign owned by %s, total contributed %s",
			snap.Owner.Hex(), snap.TotalContributed.String())
		return engine, nil
	}

	if !common.IsHexAddress(cfg.Owner) {
		return nil, fmt.Errorf("invalid campaign owner address %q", cfg.Owner)
	}
	goal, ok := new(big.Int).SetString(cfg.GoalAmount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid campaign goal amount %q", cfg.GoalAmount)
	}

	engine, err := campaign.New(campaign.Params{
		Owner:      common.HexToAddress(cfg.Owner),
		GoalAmount: goal,
		Duration:   time.Duration(cfg.DurationDays) * 24 * time.Hour,
	}, clock, treasury, sink)
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	if err := s.SaveSnapshot(engine.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to persist initial projection: %w", err)
	}
	logger.Info("Created campaign owned by %s with goal %s", cfg.Owner, goal.String())
	return engine, nil
}
