package router

import (
	"github.com/gin-gonic/gin"

	"github.com/blues/mfs/internal/handler"
	"github.com/blues/mfs/internal/logic"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Campaign  *handler.CampaignHandler
	Milestone *handler.MilestoneHandler
	Update    *handler.UpdateHandler
	Event     *handler.EventHandler
}

// Setup 构建路由
func Setup(campaignLogic *logic.CampaignLogic, milestoneLogic *logic.MilestoneLogic, updateLogic *logic.UpdateLogic, eventLogic *logic.EventLogic) *gin.Engine {
	h := Handlers{
		Campaign:  handler.NewCampaignHandler(campaignLogic),
		Milestone: handler.NewMilestoneHandler(milestoneLogic),
		Update:    handler.NewUpdateHandler(updateLogic),
		Event:     handler.NewEventHandler(eventLogic),
	}

	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "milestone-funding-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		campaign := v1.Group("/campaign")
		{
			campaign.GET("", h.Campaign.GetCampaign)
			campaign.POST("/contributions", h.Campaign.Contribute)
			campaign.GET("/balances/:address", h.Campaign.GetBalance)
			campaign.POST("/refunds", h.Campaign.Refund)
			campaign.POST("/withdraw", h.Campaign.Withdraw)
			campaign.POST("/end", h.Campaign.EndCampaign)
			// 直接转入一律拒绝，资金只能经捐款入口进入
			campaign.POST("/deposit", h.Campaign.RejectDeposit)

			milestones := campaign.Group("/milestones")
			{
				milestones.POST("", h.Milestone.CreateMilestone)
				milestones.GET("", h.Milestone.GetMilestones)
				milestones.GET("/:id", h.Milestone.GetMilestone)
				milestones.POST("/:id/votes", h.Milestone.Vote)
				milestones.GET("/:id/votes/:address", h.Milestone.GetVoteFlag)
				milestones.POST("/:id/finalize", h.Milestone.FinalizeVote)
				milestones.POST("/:id/release", h.Milestone.ReleaseFunds)
			}

			updates := campaign.Group("/updates")
			{
				updates.POST("", h.Update.PostUpdate)
				updates.GET("", h.Update.GetUpdates)
				updates.GET("/:id", h.Update.GetUpdate)
			}

			campaign.GET("/events", h.Event.GetEvents)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
