package campaign

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Contribute 记录一笔捐款。截止时间之后拒绝，金额为零拒绝，
// 余额、总额或资金池任意一项越过上限按溢出拒绝。
func (c *Campaign) Contribute(donor common.Address, amount *big.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if amount == nil || amount.Sign() == 0 {
		return ErrZeroAmount
	}
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if !now.Before(c.deadline) {
		return ErrCampaignClosed
	}

	balance := c.balanceLocked(donor)
	newBalance := new(big.Int).Add(balance, amount)
	newTotal := new(big.Int).Add(c.totalContributed, amount)
	newPool := new(big.Int).Add(c.poolBalance, amount)
	if newBalance.Cmp(maxAmount) > 0 || newTotal.Cmp(maxAmount) > 0 || newPool.Cmp(maxAmount) > 0 {
		return ErrOverflow
	}

	c.balances[donor] = newBalance
	c.totalContributed = newTotal
	c.poolBalance = newPool

	c.emit(Notification{
		Type:      NotifyContributed,
		Milestone: -1,
		Donor:     donor,
		Amount:    new(big.Int).Set(amount),
	})
	return nil
}

// BalanceOf 查询捐款人当前余额，从未捐款返回零
func (c *Campaign) BalanceOf(donor common.Address) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.balanceLocked(donor))
}

// Refund 退款。仅在截止时间已过且未达标时可用，清零余额并回退总额，
// 返回退款金额，转账失败时全部状态回滚。
// 资金池可能已被里程碑发放消耗，不足以覆盖余额时拒绝，出账不得超过实际持有。
func (c *Campaign) Refund(donor common.Address) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if now.Before(c.deadline) || c.totalContributed.Cmp(c.goalAmount) >= 0 {
		return nil, ErrRefundUnavailable
	}

	balance := c.balanceLocked(donor)
	if balance.Sign() == 0 {
		return nil, ErrNothingToRefund
	}
	if c.poolBalance.Cmp(balance) < 0 {
		return nil, ErrInsufficientFunds
	}

	amount := new(big.Int).Set(balance)
	c.balances[donor] = new(big.Int)
	c.totalContributed.Sub(c.totalContributed, amount)
	c.poolBalance.Sub(c.poolBalance, amount)

	if err := c.treasury.Transfer(donor, amount); err != nil {
		c.balances[donor] = amount
		c.totalContributed.Add(c.totalContributed, amount)
		c.poolBalance.Add(c.poolBalance, amount)
		return nil, ErrTransferFailed
	}

	c.emit(Notification{
		Type:      NotifyRefundIssued,
		Milestone: -1,
		Donor:     donor,
		Amount:    new(big.Int).Set(amount),
	})
	return amount, nil
}

// balanceLocked 读取余额，调用方必须持有锁
func (c *Campaign) balanceLocked(donor common.Address) *big.Int {
	if b, ok := c.balances[donor]; ok {
		return b
	}
	return new(big.Int)
}
