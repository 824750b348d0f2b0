package campaign

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Withdraw 所有者提取当前资金池的全部余额。
// 达标后即可提取，不必等到截止时间。未达标时不可提取，
// 否则截止后的退款额度会被掏空。提取与里程碑发放共用同一资金池，
// 先后顺序由调用方负责。
func (c *Campaign) Withdraw(caller common.Address) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		return nil, ErrNotOwner
	}
	if c.totalContributed.Cmp(c.goalAmount) < 0 {
		return nil, ErrWithdrawalNotAvailable
	}
	if c.poolBalance.Sign() == 0 {
		return nil, ErrNothingToWithdraw
	}

	amount := new(big.Int).Set(c.poolBalance)
	c.poolBalance = new(big.Int)

	if err := c.treasury.Transfer(c.owner, amount); err != nil {
		c.poolBalance = amount
		return nil, ErrTransferFailed
	}

	c.emit(Notification{
		Type:      NotifyWithdrawn,
		Milestone: -1,
		Amount:    new(big.Int).Set(amount),
	})
	return amount, nil
}

// EndCampaign 所有者关闭活动标志。单向转换，不可重新激活。
// 标志仅供展示，不影响其它操作的门控。
func (c *Campaign) EndCampaign(caller common.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		return ErrNotOwner
	}
	c.active = false
	return nil
}

// PostUpdate 所有者发布进展更新，仅追加
func (c *Campaign) PostUpdate(caller common.Address, title, content string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if caller != c.owner {
		return 0, ErrNotOwner
	}
	if strings.TrimSpace(title) == "" {
		return 0, ErrEmptyTitle
	}

	u := &Update{
		Index:    len(c.updates),
		Title:    title,
		Content:  content,
		PostedAt: now,
	}
	c.updates = append(c.updates, u)

	c.emit(Notification{
		Type:      NotifyCampaignUpdatePosted,
		Milestone: -1,
		Title:     title,
	})
	return u.Index, nil
}

// UpdateCount 更新数量
func (c *Campaign) UpdateCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.updates)
}

// UpdateByIndex 按下标读取更新
func (c *Campaign) UpdateByIndex(index int) (Update, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.updates) {
		return Update{}, ErrInvalidUpdate
	}
	return *c.updates[index], nil
}

// ProgressPercentage 达标进度百分比，向下取整
func (c *Campaign) ProgressPercentage() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.goalAmount.Sign() == 0 {
		return 0
	}
	pct := new(big.Int).Mul(c.totalContributed, big.NewInt(100))
	pct.Div(pct, c.goalAmount)
	return pct.Int64()
}

// TimeRemaining 距截止时间的剩余时长，已截止返回零
func (c *Campaign) TimeRemaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := c.deadline.Sub(c.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}
