package campaign

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// CreateMilestone 创建里程碑，仅所有者可调用。
// fundAmount 不得超过当前资金池余额，投票期必须为正。
func (c *Campaign) CreateMilestone(caller common.Address, description string, fundAmount *big.Int, votingDuration time.Duration) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if caller != c.owner {
		return 0, ErrNotOwner
	}
	if strings.TrimSpace(description) == "" {
		return 0, ErrEmptyDescription
	}
	if fundAmount == nil || fundAmount.Sign() <= 0 || fundAmount.Cmp(c.poolBalance) > 0 {
		return 0, ErrInvalidAmount
	}
	if votingDuration <= 0 {
		return 0, ErrInvalidDuration
	}

	m := &Milestone{
		Index:        len(c.milestones),
		Description:  description,
		FundAmount:   new(big.Int).Set(fundAmount),
		VoteDeadline: now.Add(votingDuration),
		YesWeight:    new(big.Int),
		NoWeight:     new(big.Int),
		State:        MilestoneStateVoting,
	}
	c.milestones = append(c.milestones, m)

	c.emit(Notification{
		Type:      NotifyMilestoneCreated,
		Milestone: m.Index,
		Amount:    new(big.Int).Set(fundAmount),
		Title:     description,
	})
	return m.Index, nil
}

// Vote 对里程碑投票。权重取投票时刻的捐款余额快照，
// 每个捐款人对每个里程碑至多投一票，且不随后续捐款或退款改变。
func (c *Campaign) Vote(index int, donor common.Address, approve bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	m, err := c.milestoneLocked(index)
	if err != nil {
		return err
	}

	weight := c.balanceLocked(donor)
	if weight.Sign() == 0 {
		return ErrNotADonor
	}
	if m.State != MilestoneStateVoting || now.After(m.VoteDeadline) {
		return ErrVotingNotActive
	}

	key := voteKey{milestone: index, donor: donor}
	if _, voted := c.votes[key]; voted {
		return ErrAlreadyVoted
	}

	snapshot := new(big.Int).Set(weight)
	c.votes[key] = &VoteRecord{Approve: approve, Weight: snapshot, CastAt: now}
	if approve {
		m.YesWeight.Add(m.YesWeight, snapshot)
	} else {
		m.NoWeight.Add(m.NoWeight, snapshot)
	}

	c.emit(Notification{
		Type:      NotifyVoteCast,
		Milestone: index,
		Donor:     donor,
		Approve:   approve,
		Weight:    new(big.Int).Set(snapshot),
	})
	return nil
}

// FinalizeVote 结束投票并结算结果，任何人可调用。
// 通过条件是赞成权重严格大于反对权重，平票和零投票均判为否决。
// 状态转换是终结性的，不会再次进入投票。
func (c *Campaign) FinalizeVote(index int) (MilestoneState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	m, err := c.milestoneLocked(index)
	if err != nil {
		return "", err
	}
	if m.State != MilestoneStateVoting {
		return "", ErrVotingNotActive
	}
	if !now.After(m.VoteDeadline) {
		return "", ErrVotingStillActive
	}

	n := Notification{Milestone: index}
	if m.YesWeight.Cmp(m.NoWeight) > 0 {
		m.State = MilestoneStateApproved
		n.Type = NotifyMilestoneApproved
	} else {
		m.State = MilestoneStateRejected
		n.Type = NotifyMilestoneRejected
	}
	c.emit(n)
	return m.State, nil
}

// ReleaseFunds 发放已通过里程碑的资金，仅所有者可调用，每个里程碑至多一次。
// 资金池可能已被退款或提取耗尽，此时以资金不足拒绝。
// released 先置位后转账，转账失败时撤销置位。
func (c *Campaign) ReleaseFunds(index int, caller common.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		return ErrNotOwner
	}
	m, err := c.milestoneLocked(index)
	if err != nil {
		return err
	}
	if m.State != MilestoneStateApproved {
		return ErrMilestoneNotApproved
	}
	if m.Released {
		return ErrAlreadyReleased
	}
	if c.poolBalance.Cmp(m.FundAmount) < 0 {
		return ErrInsufficientFunds
	}

	amount := new(big.Int).Set(m.FundAmount)
	m.Released = true
	c.poolBalance.Sub(c.poolBalance, amount)

	if err := c.treasury.Transfer(c.owner, amount); err != nil {
		m.Released = false
		c.poolBalance.Add(c.poolBalance, amount)
		return ErrTransferFailed
	}

	c.emit(Notification{
		Type:      NotifyMilestoneFundsReleased,
		Milestone: index,
		Amount:    amount,
	})
	return nil
}

// MilestoneCount 里程碑数量
func (c *Campaign) MilestoneCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.milestones)
}

// MilestoneByIndex 按下标读取里程碑快照
func (c *Campaign) MilestoneByIndex(index int) (Milestone, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.milestoneLocked(index)
	if err != nil {
		return Milestone{}, err
	}
	snapshot := *m
	snapshot.FundAmount = new(big.Int).Set(m.FundAmount)
	snapshot.YesWeight = new(big.Int).Set(m.YesWeight)
	snapshot.NoWeight = new(big.Int).Set(m.NoWeight)
	return snapshot, nil
}

// HasVoted 捐款人是否已对某里程碑投票
func (c *Campaign) HasVoted(index int, donor common.Address) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.milestoneLocked(index); err != nil {
		return false, err
	}
	_, voted := c.votes[voteKey{milestone: index, donor: donor}]
	return voted, nil
}

// YesPercentage 赞成权重占已投权重的百分比，向下取整，零投票时为零
func (c *Campaign) YesPercentage(index int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.milestoneLocked(index)
	if err != nil {
		return 0, err
	}
	total := new(big.Int).Add(m.YesWeight, m.NoWeight)
	if total.Sign() == 0 {
		return 0, nil
	}
	pct := new(big.Int).Mul(m.YesWeight, big.NewInt(100))
	pct.Div(pct, total)
	return pct.Int64(), nil
}

// milestoneLocked 按下标取里程碑，调用方必须持有锁
func (c *Campaign) milestoneLocked(index int) (*Milestone, error) {
	if index < 0 || index >= len(c.milestones) {
		return nil, ErrInvalidMilestone
	}
	return c.milestones[index], nil
}
