package service

import (
	"context"
	"strings"

	"github.com/dinefront/internal/logger"
	"github.com/dinefront/internal/models"
	"github.com/dinefront/internal/queue"
	"github.com/dinefront/internal/repository"
)

// InventoryService 库存服务。落库损耗记录、累加菜单项损耗量，并推送
// 分发任务供后台进一步处理。
type InventoryService struct {
	menuRepo    repository.MenuItemRepository
	reportRepo  repository.DamagedReportRepository
	queueClient *queue.Client
	catalog     *CatalogService
}

// NewInventoryService 创建库存服务
func NewInventoryService(menuRepo repository.MenuItemRepository, reportRepo repository.DamagedReportRepository, queueClient *queue.Client, catalog *CatalogService) *InventoryService {
	return &InventoryService{
		menuRepo:    menuRepo,
		reportRepo:  reportRepo,
		queueClient: queueClient,
		catalog:     catalog,
	}
}

// MarkAsDamaged 上报一条损耗。记录落库与库存扣减同回合完成，任务推送
// 失败只记日志。
func (s *InventoryService) MarkAsDamaged(ctx context.Context, itemID BackendID, req DamageRequest) error {
	menuItemID := itemID.Uint()
	if menuItemID == 0 {
		return ErrMenuItemNotFound
	}
	if req.Quantity <= 0 {
		return ErrItemQuantityInvalid
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ErrDispositionReasonRequired
	}

	item, err := s.menuRepo.GetByID(menuItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrMenuItemNotFound
	}

	report := &models.DamagedItemReport{
		MenuItemID: menuItemID,
		OrderID:    req.OrderID,
		Quantity:   req.Quantity,
		Reason:     reason,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return err
	}
	if err := s.menuRepo.AddDamagedQuantity(menuItemID, req.Quantity); err != nil {
		return err
	}
	if s.catalog != nil {
		s.catalog.InvalidateMenuItem(ctx, menuItemID)
	}

	if err := s.queueClient.EnqueueDamageReportDispatch(queue.DamageReportDispatchPayload{
		ReportID:   report.ID,
		MenuItemID: menuItemID,
		OrderID:    req.OrderID,
		Quantity:   req.Quantity,
		Reason:     reason,
	}); err != nil {
		logger.Warnw("damage_report_dispatch_enqueue_failed",
			"report_id", report.ID,
			"menu_item_id", menuItemID,
			"error", err,
		)
	}
	return nil
}

// ListDamagedReports 损耗记录列表
func (s *InventoryService) ListDamagedReports(filter repository.DamagedReportListFilter) ([]models.DamagedItemReport, int64, error) {
	return s.reportRepo.List(filter)
}
