package event

import (
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/model"
)

type fakeEventStore struct {
	mu     sync.Mutex
	events []*model.Event
}

func (f *fakeEventStore) SaveSnapshot(s campaign.Snapshot) error { return nil }

func (f *fakeEventStore) LoadSnapshot() (*campaign.Snapshot, error) { return nil, nil }

func (f *fakeEventStore) CreateContributeRecord(r *model.ContributeRecord) error { return nil }

func (f *fakeEventStore) CreateRefundRecord(r *model.RefundRecord) error { return nil }

func (f *fakeEventStore) CreateSettlementRecord(r *model.SettlementRecord) error { return nil }

func (f *fakeEventStore) CreateEvent(e *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEventStore) ListEvents(page, pageSize int) ([]model.Event, int64, error) {
	return nil, 0, nil
}

func (f *fakeEventStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakeEventStore) first() model.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.events[0]
}

func TestMonitorPersistsNotifications(t *testing.T) {
	st := &fakeEventStore{}
	monitor, err := NewMonitor(2, NewPersistProcessor(st))
	require.NoError(t, err)
	defer monitor.Stop()

	donor := common.HexToAddress("0x0000000000000000000000000000000000000001")
	monitor.Notify(campaign.Notification{
		Type:      campaign.NotifyVoteCast,
		Milestone: 3,
		Donor:     donor,
		Approve:   true,
		Weight:    big.NewInt(6),
		At:        time.Unix(1700000000, 0),
	})

	require.Eventually(t, func() bool { return st.count() == 1 }, time.Second, 10*time.Millisecond)

	row := st.first()
	require.Equal(t, "VoteCast", row.EventType)
	require.Equal(t, 3, row.MilestoneIndex)
	require.Equal(t, donor.Hex(), row.Address)
	require.Contains(t, row.Data, `"weight":"6"`)
}

func TestMonitorDefaultPoolSize(t *testing.T) {
	monitor, err := NewMonitor(0, NewLogProcessor())
	require.NoError(t, err)
	defer monitor.Stop()

	monitor.Notify(campaign.Notification{Type: campaign.NotifyWithdrawn, Milestone: -1, Amount: big.NewInt(10)})
}
