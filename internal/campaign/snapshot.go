package campaign

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// VoteSnapshot 投票记录的持久化形态
type VoteSnapshot struct {
	Milestone int
	Donor     common.Address
	Approve   bool
	Weight    *big.Int
	CastAt    time.Time
}

// Snapshot 活动状态的完整快照，用于重启恢复
type Snapshot struct {
	Owner            common.Address
	GoalAmount       *big.Int
	Deadline         time.Time
	Active           bool
	TotalContributed *big.Int
	PoolBalance      *big.Int
	Balances         map[common.Address]*big.Int
	Milestones       []Milestone
	Votes            []VoteSnapshot
	Updates          []Update
}

// Snapshot 导出当前状态的深拷贝
func (c *Campaign) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Owner:            c.owner,
		GoalAmount:       new(big.Int).Set(c.goalAmount),
		Deadline:         c.deadline,
		Active:           c.active,
		TotalContributed: new(big.Int).Set(c.totalContributed),
		PoolBalance:      new(big.Int).Set(c.poolBalance),
		Balances:         make(map[common.Address]*big.Int, len(c.balances)),
	}
	for donor, balance := range c.balances {
		s.Balances[donor] = new(big.Int).Set(balance)
	}
	for _, m := range c.milestones {
		ms := *m
		ms.FundAmount = new(big.Int).Set(m.FundAmount)
		ms.YesWeight = new(big.Int).Set(m.YesWeight)
		ms.NoWeight = new(big.Int).Set(m.NoWeight)
		s.Milestones = append(s.Milestones, ms)
	}
	for key, record := range c.votes {
		s.Votes = append(s.Votes, VoteSnapshot{
			Milestone: key.milestone,
			Donor:     key.donor,
			Approve:   record.Approve,
			Weight:    new(big.Int).Set(record.Weight),
			CastAt:    record.CastAt,
		})
	}
	for _, u := range c.updates {
		s.Updates = append(s.Updates, *u)
	}
	return s
}

// Restore 从快照重建活动状态，重建前校验账本守恒
func Restore(s Snapshot, clock Clock, treasury Treasury, sink NotificationSink) (*Campaign, error) {
	if s.GoalAmount == nil || s.GoalAmount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	sum := new(big.Int)
	for _, balance := range s.Balances {
		if balance.Sign() < 0 {
			return nil, errors.New("snapshot contains negative balance")
		}
		sum.Add(sum, balance)
	}
	if s.TotalContributed == nil || sum.Cmp(s.TotalContributed) != 0 {
		return nil, errors.New("snapshot violates balance conservation")
	}

	c := &Campaign{
		owner:            s.Owner,
		goalAmount:       new(big.Int).Set(s.GoalAmount),
		deadline:         s.Deadline,
		active:           s.Active,
		totalContributed: new(big.Int).Set(s.TotalContributed),
		poolBalance:      new(big.Int),
		balances:         make(map[common.Address]*big.Int, len(s.Balances)),
		votes:            make(map[voteKey]*VoteRecord, len(s.Votes)),
		clock:            clock,
		treasury:         treasury,
		sink:             sink,
	}
	if s.PoolBalance != nil {
		c.poolBalance.Set(s.PoolBalance)
	}
	for donor, balance := range s.Balances {
		c.balances[donor] = new(big.Int).Set(balance)
	}
	for i := range s.Milestones {
		m := s.Milestones[i]
		m.Index = i
		m.FundAmount = new(big.Int).Set(s.Milestones[i].FundAmount)
		m.YesWeight = new(big.Int).Set(s.Milestones[i].YesWeight)
		m.NoWeight = new(big.Int).Set(s.Milestones[i].NoWeight)
		c.milestones = append(c.milestones, &m)
	}
	for _, v := range s.Votes {
		if v.Milestone < 0 || v.Milestone >= len(c.milestones) {
			return nil, ErrInvalidMilestone
		}
		c.votes[voteKey{milestone: v.Milestone, donor: v.Donor}] = &VoteRecord{
			Approve: v.Approve,
			Weight:  new(big.Int).Set(v.Weight),
			CastAt:  v.CastAt,
		}
	}
	for i := range s.Updates {
		u := s.Updates[i]
		u.Index = i
		c.updates = append(c.updates, &u)
	}
	return c, nil
}
