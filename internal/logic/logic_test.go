package logic

import (
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/config"
	"github.com/blues/mfs/internal/model"
)

// -------- test fakes --------

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeTreasury struct{}

func (fakeTreasury) Transfer(to common.Address, amount *big.Int) error { return nil }

type fakeStore struct {
	mu          sync.Mutex
	snapshot    *campaign.Snapshot
	saveCount   int
	contributes []*model.ContributeRecord
	refunds     []*model.RefundRecord
	settlements []*model.SettlementRecord
	events      []*model.Event
	saveErr     error
}

func (f *fakeStore) SaveSnapshot(s campaign.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshot = &s
	f.saveCount++
	return nil
}

func (f *fakeStore) LoadSnapshot() (*campaign.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot, nil
}

func (f *fakeStore) CreateContributeRecord(r *model.ContributeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contributes = append(f.contributes, r)
	return nil
}

func (f *fakeStore) CreateRefundRecord(r *model.RefundRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunds = append(f.refunds, r)
	return nil
}

func (f *fakeStore) CreateSettlementRecord(r *model.SettlementRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settlements = append(f.settlements, r)
	return nil
}

func (f *fakeStore) CreateEvent(e *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeStore) ListEvents(page, pageSize int) ([]model.Event, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

var (
	owner  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	donorX = common.HexToAddress("0x0000000000000000000000000000000000000001")
)

func newTestLogic(t *testing.T) (*CampaignLogic, *MilestoneLogic, *fakeStore, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	st := &fakeStore{}

	engine, err := campaign.New(campaign.Params{
		Owner:      owner,
		GoalAmount: big.NewInt(100),
		Duration:   24 * time.Hour,
	}, clock, fakeTreasury{}, nil)
	require.NoError(t, err)

	return NewCampaignLogic(engine, st), NewMilestoneLogic(engine, st), st, clock
}

func TestContributePersistsRecordAndProjection(t *testing.T) {
	campaignLogic, _, st, _ := newTestLogic(t)

	require.NoError(t, campaignLogic.Contribute(donorX, big.NewInt(40)))

	require.Len(t, st.contributes, 1)
	require.Equal(t, donorX.Hex(), st.contributes[0].Address)
	require.Equal(t, "40", st.contributes[0].Amount)
	require.NotEmpty(t, st.contributes[0].RequestID)

	require.NotNil(t, st.snapshot)
	require.Equal(t, "40", st.snapshot.TotalContributed.String())
}

func TestContributeFailureLeavesNoRecord(t *testing.T) {
	campaignLogic, _, st, _ := newTestLogic(t)

	err := campaignLogic.Contribute(donorX, big.NewInt(0))
	require.ErrorIs(t, err, campaign.ErrZeroAmount)
	require.Empty(t, st.contributes)
	require.Zero(t, st.saveCount)
}

func TestRefundRecordsFullAmount(t *testing.T) {
	campaignLogic, _, st, clock := newTestLogic(t)
	require.NoError(t, campaignLogic.Contribute(donorX, big.NewInt(40)))

	clock.now = clock.now.Add(25 * time.Hour)
	amount, err := campaignLogic.Refund(donorX)
	require.NoError(t, err)
	require.Equal(t, int64(40), amount.Int64())

	require.Len(t, st.refunds, 1)
	require.Equal(t, "40", st.refunds[0].Amount)
	require.Equal(t, "0", st.snapshot.TotalContributed.String())
}

func TestReleaseWritesSettlementRecord(t *testing.T) {
	campaignLogic, milestoneLogic, st, clock := newTestLogic(t)
	require.NoError(t, campaignLogic.Contribute(donorX, big.NewInt(100)))

	_, err := milestoneLogic.CreateMilestone(owner, "prototype", big.NewInt(30), 48*time.Hour)
	require.NoError(t, err)
	require.NoError(t, milestoneLogic.Vote(0, donorX, true))

	clock.now = clock.now.Add(49 * time.Hour)
	state, err := milestoneLogic.FinalizeVote(0)
	require.NoError(t, err)
	require.Equal(t, campaign.MilestoneStateApproved, state)

	require.NoError(t, milestoneLogic.ReleaseFunds(0, owner))

	require.Len(t, st.settlements, 1)
	require.Equal(t, string(model.SettlementTypeRelease), st.settlements[0].SettlementType)
	require.NotNil(t, st.settlements[0].MilestoneIndex)
	require.Equal(t, 0, *st.settlements[0].MilestoneIndex)
	require.Equal(t, "30", st.settlements[0].Amount)

	// 投影跟进发放后的资金池
	require.Equal(t, "70", st.snapshot.PoolBalance.String())
}

func TestWithdrawWritesSettlementRecord(t *testing.T) {
	campaignLogic, _, st, _ := newTestLogic(t)
	require.NoError(t, campaignLogic.Contribute(donorX, big.NewInt(100)))

	amount, err := campaignLogic.Withdraw(owner)
	require.NoError(t, err)
	require.Equal(t, int64(100), amount.Int64())

	require.Len(t, st.settlements, 1)
	require.Equal(t, string(model.SettlementTypeWithdraw), st.settlements[0].SettlementType)
	require.Nil(t, st.settlements[0].MilestoneIndex)
}

func TestProjectionWriteFailureDoesNotFailRequest(t *testing.T) {
	campaignLogic, _, st, _ := newTestLogic(t)
	st.saveErr = errors.New("db down")

	// 引擎是进程内事实来源，投影写失败只记日志
	require.NoError(t, campaignLogic.Contribute(donorX, big.NewInt(5)))
	require.Equal(t, int64(5), campaignLogic.BalanceOf(donorX).Int64())
}

func TestDueMilestones(t *testing.T) {
	campaignLogic, milestoneLogic, _, clock := newTestLogic(t)
	require.NoError(t, campaignLogic.Contribute(donorX, big.NewInt(100)))

	_, err := milestoneLogic.CreateMilestone(owner, "short vote", big.NewInt(10), 1*time.Hour)
	require.NoError(t, err)
	_, err = milestoneLogic.CreateMilestone(owner, "long vote", big.NewInt(10), 72*time.Hour)
	require.NoError(t, err)

	require.Empty(t, milestoneLogic.DueMilestones(clock.now))

	clock.now = clock.now.Add(2 * time.Hour)
	require.Equal(t, []int{0}, milestoneLogic.DueMilestones(clock.now))

	_, err = milestoneLogic.FinalizeVote(0)
	require.NoError(t, err)
	require.Empty(t, milestoneLogic.DueMilestones(clock.now))
}

func TestBootstrapCreatesThenRestores(t *testing.T) {
	st := &fakeStore{}
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	cfg := config.CampaignConfig{
		Owner:        owner.Hex(),
		GoalAmount:   "100",
		DurationDays: 30,
	}

	engine, err := Bootstrap(cfg, st, clock, fakeTreasury{}, nil)
	require.NoError(t, err)
	require.NoError(t, engine.Contribute(donorX, big.NewInt(7)))
	require.NoError(t, st.SaveSnapshot(engine.Snapshot()))

	// 第二次启动从投影恢复，配置中的参数不再生效
	restored, err := Bootstrap(config.CampaignConfig{Owner: "bogus"}, st, clock, fakeTreasury{}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(7), restored.BalanceOf(donorX).Int64())
	require.Equal(t, owner, restored.Owner())
}

func TestBootstrapRejectsBadConfig(t *testing.T) {
	st := &fakeStore{}
	clock := &fakeClock{now: time.Unix(1700000000, 0)}

	_, err := Bootstrap(config.CampaignConfig{Owner: "not-an-address", GoalAmount: "100", DurationDays: 1}, st, clock, fakeTreasury{}, nil)
	require.Error(t, err)

	_, err = Bootstrap(config.CampaignConfig{Owner: owner.Hex(), GoalAmount: "ten", DurationDays: 1}, st, clock, fakeTreasury{}, nil)
	require.Error(t, err)
}
