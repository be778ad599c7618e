package router

import (
	"github.com/dinefront/internal/config"
	adminhandlers "github.com/dinefront/internal/http/handlers/admin"
	"github.com/dinefront/internal/logger"
	"github.com/dinefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		{
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.POST("/orders/:id/edit-session", adminHandler.AdminOpenEditSession)

			admin.GET("/edit-sessions/:sid", adminHandler.AdminGetEditSession)
			admin.POST("/edit-sessions/:sid/items", adminHandler.AdminAddSessionItem)
			admin.PUT("/edit-sessions/:sid/items/:edit_id", adminHandler.AdminChangeSessionItem)
			admin.POST("/edit-sessions/:sid/items/:edit_id/removal", adminHandler.AdminRequestItemRemoval)
			admin.POST("/edit-sessions/:sid/items/:edit_id/disposition", adminHandler.AdminResolveItemDisposition)
			admin.GET("/edit-sessions/:sid/eta-prompt", adminHandler.AdminEtaPrompt)
			admin.POST("/edit-sessions/:sid/save", adminHandler.AdminSaveEditSession)
			admin.DELETE("/edit-sessions/:sid", adminHandler.AdminCancelEditSession)

			admin.GET("/menu-items", adminHandler.AdminListMenuItems)
			admin.GET("/menu-items/:id", adminHandler.AdminGetMenuItem)
			admin.POST("/menu-items", adminHandler.AdminCreateMenuItem)
			admin.PUT("/menu-items/:id", adminHandler.AdminUpdateMenuItem)

			admin.GET("/damaged-reports", adminHandler.AdminListDamagedReports)
			admin.POST("/damaged-reports", adminHandler.AdminCreateDamagedReport)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
