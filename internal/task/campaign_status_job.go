package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/blues/mfs/internal/config"
	"github.com/blues/mfs/internal/logger"
	"github.com/blues/mfs/internal/logic"
)

// CampaignStatusJob 活动状态巡检任务，周期性输出达标进度和剩余时间
type CampaignStatusJob struct {
	campaignLogic *logic.CampaignLogic
	config        *config.Config
}

// NewCampaignStatusJob 创建活动状态巡检任务
func NewCampaignStatusJob(campaignLogic *logic.CampaignLogic, cfg *config.Config) *CampaignStatusJob {
	return &CampaignStatusJob{
		campaignLogic: campaignLogic,
		config:        cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignStatusJob) GetName() string {
	return "campaign_status_updater"
}

// GetSchedule 获取调度配置
func (j *CampaignStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignStatusJob) Execute() {
	info := j.campaignLogic.GetInfo()

	if info.TimeRemaining == 0 {
		if info.ProgressPercentage >= 100 {
			logger.Info("Campaign ended funded: %s contributed, goal %s", info.TotalContributed, info.GoalAmount)
		} else {
			logger.Info("Campaign ended unfunded: %s of %s, refunds open", info.TotalContributed, info.GoalAmount)
		}
		return
	}

	logger.Info("Campaign progress %d%%, %s contributed, %ds remaining",
		info.ProgressPercentage, info.TotalContributed, info.TimeRemaining)
}
