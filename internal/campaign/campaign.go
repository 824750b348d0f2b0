package campaign

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Clock 时钟接口，每个请求入口只读取一次当前时间
type Clock interface {
	Now() time.Time
}

// SystemClock 系统时钟
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Treasury 资金出口，所有对外转账的唯一边界
type Treasury interface {
	Transfer(to common.Address, amount *big.Int) error
}

// NotificationSink 通知接收器
type NotificationSink interface {
	Notify(n Notification)
}

// MilestoneState 里程碑状态
type MilestoneState string

const (
	MilestoneStateVoting   MilestoneState = "voting"   // 投票中
	MilestoneStateApproved MilestoneState = "approved" // 已通过
	MilestoneStateRejected MilestoneState = "rejected" // 已否决
)

// Milestone 里程碑，fundAmount 创建后不再变化
type Milestone struct {
	Index        int
	Description  string
	FundAmount   *big.Int
	VoteDeadline time.Time
	YesWeight    *big.Int
	NoWeight     *big.Int
	State        MilestoneState
	Released     bool
}

// Update 项目方更新，仅追加
type Update struct {
	Index    int
	Title    string
	Content  string
	PostedAt time.Time
}

// voteKey 投票去重键
type voteKey struct {
	milestone int
	donor     common.Address
}

// VoteRecord 投票记录，权重在投票时刻快照，之后不再重算
type VoteRecord struct {
	Approve bool
	Weight  *big.Int
	CastAt  time.Time
}

// Params 活动创建参数，核心字段创建后不可变
type Params struct {
	Owner      common.Address
	GoalAmount *big.Int
	Duration   time.Duration
	CreatedAt  time.Time
}

// Campaign 单个众筹活动的全部可变状态。
// 所有状态变更请求经过同一把锁串行执行，任何请求要么完整提交要么完整回滚，
// 不变量 sum(balances) == totalContributed 在每次返回前成立。
type Campaign struct {
	mu sync.Mutex

	owner            common.Address
	goalAmount       *big.Int
	deadline         time.Time
	active           bool
	totalContributed *big.Int
	poolBalance      *big.Int

	balances   map[common.Address]*big.Int
	milestones []*Milestone
	votes      map[voteKey]*VoteRecord
	updates    []*Update

	clock    Clock
	treasury Treasury
	sink     NotificationSink
}

// maxAmount 金额上限，超过按溢出处理而不是回绕
var maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// New 创建活动
func New(p Params, clock Clock, treasury Treasury, sink NotificationSink) (*Campaign, error) {
	if p.GoalAmount == nil || p.GoalAmount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if p.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = clock.Now()
	}
	return &Campaign{
		owner:            p.Owner,
		goalAmount:       new(big.Int).Set(p.GoalAmount),
		deadline:         createdAt.Add(p.Duration),
		active:           true,
		totalContributed: new(big.Int),
		poolBalance:      new(big.Int),
		balances:         make(map[common.Address]*big.Int),
		votes:            make(map[voteKey]*VoteRecord),
		clock:            clock,
		treasury:         treasury,
		sink:             sink,
	}, nil
}

// emit 发送通知
func (c *Campaign) emit(n Notification) {
	if c.sink != nil {
		n.At = c.clock.Now()
		c.sink.Notify(n)
	}
}

// Owner 活动所有者
func (c *Campaign) Owner() common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owner
}

// GoalAmount 目标金额
func (c *Campaign) GoalAmount() *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.goalAmount)
}

// Deadline 活动截止时间
func (c *Campaign) Deadline() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadline
}

// Active 活动标志，仅供展示，不参与任何操作的门控
func (c *Campaign) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// TotalContributed 当前有效捐款总额
func (c *Campaign) TotalContributed() *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.totalContributed)
}

// PoolBalance 当前持有的资金池余额
func (c *Campaign) PoolBalance() *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.poolBalance)
}
