package event

import (
	"github.com/panjf2000/ants/v2"

	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/logger"
)

// Processor 通知处理器
type Processor interface {
	Name() string
	Process(n campaign.Notification) error
}

// Monitor 通知分发器，实现 campaign.NotificationSink。
// 每条通知在协程池上提交给全部处理器，不阻塞引擎的请求路径。
type Monitor struct {
	pool       *ants.Pool
	processors []Processor
}

// NewMonitor 创建通知分发器
func NewMonitor(poolSize int, processors ...Processor) (*Monitor, error) {
	if poolSize <= 0 {
		poolSize = 4
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Monitor{pool: pool, processors: processors}, nil
}

// Notify 分发一条通知
func (m *Monitor) Notify(n campaign.Notification) {
	for _, p := range m.processors {
		processor := p
		err := m.pool.Submit(func() {
			if err := processor.Process(n); err != nil {
				logger.Error("Processor %s failed on %s: %v", processor.Name(), n.Type, err)
			}
		})
		if err != nil {
			logger.Error("Failed to submit notification %s to pool: %v", n.Type, err)
		}
	}
}

// Stop 关闭协程池
func (m *Monitor) Stop() {
	m.pool.Release()
}
