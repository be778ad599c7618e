package provider

import (
	"time"

	"github.com/dinefront/internal/cache"
	"github.com/dinefront/internal/config"
	"github.com/dinefront/internal/logger"
	"github.com/dinefront/internal/models"
	"github.com/dinefront/internal/queue"
	"github.com/dinefront/internal/repository"
	"github.com/dinefront/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Location    *time.Location

	// Repositories
	OrderRepo         repository.OrderRepository
	MenuItemRepo      repository.MenuItemRepository
	DamagedReportRepo repository.DamagedReportRepository

	// Services
	EditSessions       *service.EditSessionManager
	EtaScheduler       *service.EtaScheduler
	CatalogService     *service.CatalogService
	InventoryService   *service.InventoryService
	OrderUpdateService *service.OrderUpdateService
	SavePipeline       *service.SavePipeline
	OrderEditService   *service.OrderEditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Location:    cfg.Restaurant.Location(),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.OrderRepo = repository.NewOrderRepository(db)
	c.MenuItemRepo = repository.NewMenuItemRepository(db)
	c.DamagedReportRepo = repository.NewDamagedReportRepository(db)
}

func (c *Container) initServices() {
	sessionTTL := time.Duration(c.Config.Restaurant.SessionExpireMinutes) * time.Minute
	c.EditSessions = service.NewEditSessionManager(sessionTTL)
	c.EtaScheduler = service.NewEtaScheduler(c.Location)
	c.CatalogService = service.NewCatalogService(c.MenuItemRepo)
	c.InventoryService = service.NewInventoryService(c.MenuItemRepo, c.DamagedReportRepo, c.QueueClient, c.CatalogService)
	c.OrderUpdateService = service.NewOrderUpdateService(c.OrderRepo)
	c.SavePipeline = service.NewSavePipeline(c.InventoryService, c.OrderUpdateService, c.EtaScheduler)
	c.OrderEditService = service.NewOrderEditService(c.OrderRepo, c.EditSessions, c.CatalogService, c.SavePipeline, c.EtaScheduler, c.QueueClient)
}
