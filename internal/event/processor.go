package event

import (
	"encoding/json"

	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/logger"
	"github.com/blues/mfs/internal/model"
	"github.com/blues/mfs/internal/store"
)

// PersistProcessor 将通知落库
type PersistProcessor struct {
	store store.Store
}

// NewPersistProcessor 创建落库处理器
func NewPersistProcessor(s store.Store) *PersistProcessor {
	return &PersistProcessor{store: s}
}

func (p *PersistProcessor) Name() string {
	return "event_persist"
}

func (p *PersistProcessor) Process(n campaign.Notification) error {
	row := model.Event{
		EventType:      string(n.Type),
		MilestoneIndex: n.Milestone,
		OccurredAt:     n.At,
	}
	zero := (campaign.Notification{}).Donor
	if n.Donor != zero {
		row.Address = n.Donor.Hex()
	}
	if n.Amount != nil {
		row.Amount = n.Amount.String()
	}

	data := map[string]interface{}{}
	if n.Weight != nil {
		data["weight"] = n.Weight.String()
		data["approve"] = n.Approve
	}
	if n.Title != "" {
		data["title"] = n.Title
	}
	if len(data) > 0 {
		encoded, err := json.Marshal(data)
		if err != nil {
			return err
		}
		row.Data = string(encoded)
	}

	return p.store.CreateEvent(&row)
}

// LogProcessor 将通知写入日志
type LogProcessor struct{}

// NewLogProcessor 创建日志处理器
func NewLogProcessor() *LogProcessor {
	return &LogProcessor{}
}

func (p *LogProcessor) Name() string {
	return "event_log"
}

func (p *LogProcessor) Process(n campaign.Notification) error {
	amount := "-"
	if n.Amount != nil {
		amount = n.Amount.String()
	}
	logger.Info("Notification %s milestone=%d address=%s amount=%s", n.Type, n.Milestone, n.Donor.Hex(), amount)
	return nil
}
