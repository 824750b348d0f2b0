package task

import (
	"github.com/go-co-op/gocron/v2"

	"github.com/blues/mfs/internal/config"
	"github.com/blues/mfs/internal/logger"
	"github.com/blues/mfs/internal/logic"
)

// Job 定时任务
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Manager{scheduler: s, config: cfg}, nil
}

// Start 注册全部任务并启动调度器
func Start(cfg *config.Config, campaignLogic *logic.CampaignLogic, milestoneLogic *logic.MilestoneLogic) (*Manager, error) {
	manager, err := NewManager(cfg)
	if err != nil {
		return nil, err
	}

	// 注册所有任务
	manager.Register(NewMilestoneFinalizeJob(milestoneLogic, cfg))
	manager.Register(NewCampaignStatusJob(campaignLogic, cfg))

	// 启动调度器
	manager.scheduler.Start()
	logger.Info("Task manager started successfully")
	return manager, nil
}

// Register 注册一个任务
func (m *Manager) Register(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
