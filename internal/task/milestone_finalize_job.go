package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/blues/mfs/internal/config"
	"github.com/blues/mfs/internal/logger"
	"github.com/blues/mfs/internal/logic"
)

// MilestoneFinalizeJob 投票结算任务。
// 结算是无裁量的确定性操作，任何人都可触发，这里按周期代为触发。
type MilestoneFinalizeJob struct {
	milestoneLogic *logic.MilestoneLogic
	config         *config.Config
}

// NewMilestoneFinalizeJob 创建投票结算任务
func NewMilestoneFinalizeJob(milestoneLogic *logic.MilestoneLogic, cfg *config.Config) *MilestoneFinalizeJob {
	return &MilestoneFinalizeJob{
		milestoneLogic: milestoneLogic,
		config:         cfg,
	}
}

// GetName 获取任务名称
func (j *MilestoneFinalizeJob) GetName() string {
	return "milestone_finalizer"
}

// GetSchedule 获取调度配置
func (j *MilestoneFinalizeJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *MilestoneFinalizeJob) Execute() {
	due := j.milestoneLogic.DueMilestones(time.Now())
	if len(due) == 0 {
		return
	}

	finalized := 0
	for _, index := range due {
		state, err := j.milestoneLogic.FinalizeVote(index)
		if err != nil {
			// 有人抢先结算属于正常竞争，其余错误记录
			logger.Warn("Failed to finalize milestone %d: %v", index, err)
			continue
		}
		logger.Info("Finalized milestone %d as %s", index, state)
		finalized++
	}

	if finalized > 0 {
		logger.Info("Milestone finalize task completed, %d finalized", finalized)
	}
}
