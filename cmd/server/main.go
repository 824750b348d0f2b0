package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/blues/mfs/internal/campaign"
	"github.com/blues/mfs/internal/config"
	"github.com/blues/mfs/internal/database"
	"github.com/blues/mfs/internal/event"
	"github.com/blues/mfs/internal/logger"
	"github.com/blues/mfs/internal/logic"
	"github.com/blues/mfs/internal/router"
	"github.com/blues/mfs/internal/store"
	"github.com/blues/mfs/internal/task"
	"github.com/blues/mfs/internal/treasury"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	st := store.NewGormStore(db)

	// 初始化资金出口
	var tr campaign.Treasury
	switch cfg.Treasury.Mode {
	case "ethereum":
		ethTreasury, err := treasury.NewEthTreasury(cfg.Treasury)
		if err != nil {
			logger.Fatal("Failed to initialize ethereum treasury: %v", err)
		}
		defer ethTreasury.Close()
		tr = ethTreasury
	default:
		tr = treasury.NewMemoryTreasury()
	}

	// 初始化通知分发
	monitor, err := event.NewMonitor(cfg.Event.PoolSize,
		event.NewPersistProcessor(st),
		event.NewLogProcessor(),
	)
	if err != nil {
		logger.Fatal("Failed to initialize event monitor: %v", err)
	}
	defer monitor.Stop()

	// 恢复或创建活动引擎
	engine, err := logic.Bootstrap(cfg.Campaign, st, campaign.SystemClock{}, tr, monitor)
	if err != nil {
		logger.Fatal("Failed to bootstrap campaign: %v", err)
	}

	campaignLogic := logic.NewCampaignLogic(engine, st)
	milestoneLogic := logic.NewMilestoneLogic(engine, st)
	updateLogic := logic.NewUpdateLogic(engine, st)
	eventLogic := logic.NewEventLogic(st)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(campaignLogic, milestoneLogic, updateLogic, eventLogic)

	// 启动定时任务
	manager, err := task.Start(cfg, campaignLogic, milestoneLogic)
	if err != nil {
		logger.Fatal("Failed to start task manager: %v", err)
	}
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
