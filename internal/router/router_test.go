package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/logic"
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
	contributes []*model.ContributeRecord
	refunds     []*model.RefundRecord
	settlements []*model.SettlementRecord
	events      []*model.Event
}

func (f *fakeStore) SaveSnapshot(s campaign.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot = &s
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
	ownerAddr = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	donorAddr = common.HexToAddress("0x0000000000000000000000000000000000000001")
)

type testServer struct {
	router *gin.Engine
	clock  *fakeClock
	store  *fakeStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	st := &fakeStore{}

	engine, err := campaign.New(campaign.Params{
		Owner:      ownerAddr,
		GoalAmount: big.NewInt(100),
		Duration:   24 * time.Hour,
	}, clock, fakeTreasury{}, nil)
	require.NoError(t, err)

	r := Setup(
		logic.NewCampaignLogic(engine, st),
		logic.NewMilestoneLogic(engine, st),
		logic.NewUpdateLogic(engine, st),
		logic.NewEventLogic(st),
	)
	return &testServer{router: r, clock: clock, store: st}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestContributeEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/campaign/contributions", gin.H{
		"address": donorAddr.Hex(),
		"amount":  "40",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/campaign/balances/"+donorAddr.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	require.Equal(t, "40", data["balance"])

	w = s.do(t, http.MethodGet, "/api/v1/campaign", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decode(t, w)["data"].(map[string]interface{})
	require.Equal(t, float64(40), data["progress_percentage"])
}

func TestContributeEndpointValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/campaign/contributions", gin.H{
		"address": "not-an-address",
		"amount":  "40",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/campaign/contributions", gin.H{
		"address": donorAddr.Hex(),
		"amount":  "0",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 截止后按冲突拒绝
	s.clock.now = s.clock.now.Add(25 * time.Hour)
	w = s.do(t, http.MethodPost, "/api/v1/campaign/contributions", gin.H{
		"address": donorAddr.Hex(),
		"amount":  "1",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestDirectDepositRejected(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/campaign/deposit", gin.H{"amount": "5"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.False(t, decode(t, w)["success"].(bool))
}

func TestMilestoneLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/campaign/contributions", gin.H{
		"address": donorAddr.Hex(),
		"amount":  "100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 非所有者创建被拒
	w = s.do(t, http.MethodPost, "/api/v1/campaign/milestones", gin.H{
		"address":     donorAddr.Hex(),
		"description": "prototype",
		"fund_amount": "30",
		"voting_days": 2,
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/campaign/milestones", gin.H{
		"address":     ownerAddr.Hex(),
		"description": "prototype",
		"fund_amount": "30",
		"voting_days": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/campaign/milestones/0/votes", gin.H{
		"address": donorAddr.Hex(),
		"approve": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/campaign/milestones/0/votes/%s", donorAddr.Hex()), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	require.True(t, data["has_voted"].(bool))

	// 投票期未过不可结算
	w = s.do(t, http.MethodPost, "/api/v1/campaign/milestones/0/finalize", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	s.clock.now = s.clock.now.Add(49 * time.Hour)
	w = s.do(t, http.MethodPost, "/api/v1/campaign/milestones/0/finalize", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decode(t, w)["data"].(map[string]interface{})
	require.Equal(t, "approved", data["state"])

	w = s.do(t, http.MethodPost, "/api/v1/campaign/milestones/0/release", gin.H{
		"address": ownerAddr.Hex(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	// 重复发放
	w = s.do(t, http.MethodPost, "/api/v1/campaign/milestones/0/release", gin.H{
		"address": ownerAddr.Hex(),
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// 下标越界
	w = s.do(t, http.MethodGet, "/api/v1/campaign/milestones/9", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestWithdrawEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/campaign/contributions", gin.H{
		"address": donorAddr.Hex(),
		"amount":  "100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/campaign/withdraw", gin.H{"address": donorAddr.Hex()})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/campaign/withdraw", gin.H{"address": ownerAddr.Hex()})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/campaign/withdraw", gin.H{"address": ownerAddr.Hex()})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/campaign/updates", gin.H{
		"address": ownerAddr.Hex(),
		"title":   "kickoff",
		"content": "work started",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/campaign/updates", gin.H{
		"address": donorAddr.Hex(),
		"title":   "intrusion",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/campaign/updates/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	require.Equal(t, "kickoff", data["title"])
}

func TestEndCampaignEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/campaign/end", gin.H{"address": ownerAddr.Hex()})
	require.Equal(t, http.StatusOK, w.Code)

	// 标志仅供展示，关闭后捐款不受影响
	w = s.do(t, http.MethodPost, "/api/v1/campaign/contributions", gin.H{
		"address": donorAddr.Hex(),
		"amount":  "1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/campaign", nil)
	data := decode(t, w)["data"].(map[string]interface{})
	require.False(t, data["active"].(bool))
}
