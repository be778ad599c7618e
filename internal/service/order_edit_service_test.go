package service

import (
	"context"
	"testing"
	"time"

	"github.com/dinefront/internal/constants"
	"github.com/dinefront/internal/models"
	"github.com/dinefront/internal/queue"
	"github.com/dinefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderEditServiceTest(t *testing.T) (*OrderEditService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Order{}, &models.OrderItem{}, &models.DamagedItemReport{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	t.Cleanup(func() {
		_ = queueClient.Close()
	})

	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	reportRepo := repository.NewDamagedReportRepository(db)

	catalog := NewCatalogService(menuRepo)
	inventory := NewInventoryService(menuRepo, reportRepo, queueClient, catalog)
	persister := NewOrderUpdateService(orderRepo)
	scheduler := NewEtaScheduler(time.UTC)
	pipeline := NewSavePipeline(inventory, persister, scheduler)
	sessions := NewEditSessionManager(time.Hour)
	return NewOrderEditService(orderRepo, sessions, catalog, pipeline, scheduler, queueClient), db
}

func seedEditableOrder(t *testing.T, db *gorm.DB) (*models.Order, *models.MenuItem) {
	t.Helper()
	menuItem := &models.MenuItem{
		RestaurantID:         1,
		Name:                 "Pizza",
		Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)),
		StockTrackingEnabled: true,
		StockQuantity:        40,
		LowStockThreshold:    5,
		IsActive:             true,
	}
	if err := db.Create(menuItem).Error; err != nil {
		t.Fatalf("seed menu item failed: %v", err)
	}
	order := &models.Order{
		OrderNo:      "DF-TEST-1001",
		RestaurantID: 1,
		Status:       constants.OrderStatusPending,
		Total:        models.NewMoneyFromDecimal(decimal.NewFromFloat(25.00)),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	item := &models.OrderItem{
		OrderID:              order.ID,
		MenuItemID:           menuItem.ID,
		Name:                 menuItem.Name,
		Price:                menuItem.Price,
		Quantity:             2,
		StockTrackingEnabled: true,
		StockQuantity:        40,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed order item failed: %v", err)
	}
	return order, menuItem
}

func TestOpenSessionUnknownOrder(t *testing.T) {
	svc, _ := setupOrderEditServiceTest(t)
	if _, err := svc.OpenSession(context.Background(), 999); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestSaveRemovalWithDamageEndToEnd(t *testing.T) {
	svc, db := setupOrderEditServiceTest(t)
	order, menuItem := seedEditableOrder(t, db)

	session, err := svc.OpenSession(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	item := session.Items()[0]

	outcome, err := svc.RequestRemoval(session.ID, item.EditID)
	if err != nil {
		t.Fatalf("request removal failed: %v", err)
	}
	if !outcome.NeedsDisposition {
		t.Fatalf("expected disposition prompt, got %+v", outcome)
	}
	if err := svc.ResolveDisposition(session.ID, item.EditID, constants.DispositionMarkAsDamaged, "dropped tray"); err != nil {
		t.Fatalf("resolve disposition failed: %v", err)
	}

	result, err := svc.Save(context.Background(), session.ID, SaveInput{Status: constants.OrderStatusPending, TotalText: "0"})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(result.Order.Items) != 0 {
		t.Fatalf("expected no items after removal, got %d", len(result.Order.Items))
	}
	if len(result.Changes) != 1 || !result.Changes[0].IsRemoved {
		t.Fatalf("expected removal summarized, got %+v", result.Changes)
	}

	var fetched models.MenuItem
	if err := db.First(&fetched, menuItem.ID).Error; err != nil {
		t.Fatalf("fetch menu item failed: %v", err)
	}
	if fetched.DamagedQuantity != 2 || fetched.StockQuantity != 38 {
		t.Fatalf("expected damage applied to inventory, got %+v", fetched)
	}
	var reportCount int64
	if err := db.Model(&models.DamagedItemReport{}).Count(&reportCount).Error; err != nil {
		t.Fatalf("count reports failed: %v", err)
	}
	if reportCount != 1 {
		t.Fatalf("expected 1 damaged report, got %d", reportCount)
	}

	// 会话随保存销毁
	if _, err := svc.GetSession(session.ID); err != ErrSessionNotFound {
		t.Fatalf("expected session destroyed after save, got %v", err)
	}
}

func TestSaveStatusChangeWithEta(t *testing.T) {
	svc, db := setupOrderEditServiceTest(t)
	order, _ := seedEditableOrder(t, db)

	session, err := svc.OpenSession(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}

	prompt, err := svc.EtaPrompt(session.ID, constants.OrderStatusPreparing)
	if err != nil {
		t.Fatalf("eta prompt failed: %v", err)
	}
	if !prompt.Needed {
		t.Fatalf("expected eta prompt needed when entering preparing")
	}
	if prompt.InputValue != float64(constants.DefaultEtaImmediateMinutes) {
		t.Fatalf("expected default input value, got %v", prompt.InputValue)
	}

	eta := 15.0
	result, err := svc.Save(context.Background(), session.ID, SaveInput{
		Status:    constants.OrderStatusPreparing,
		TotalText: "25.00",
		EtaValue:  &eta,
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if result.Order.Status != constants.OrderStatusPreparing {
		t.Fatalf("expected status preparing, got %s", result.Order.Status)
	}
	if result.Order.EstimatedPickupTime == nil {
		t.Fatalf("expected pickup time persisted")
	}
}

func TestCancelSessionKeepsOrderUntouched(t *testing.T) {
	svc, db := setupOrderEditServiceTest(t)
	order, _ := seedEditableOrder(t, db)

	session, err := svc.OpenSession(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	if _, err := svc.AddItem(session.ID, AddItemInput{Name: "Soup", Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.Cancel(session.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	fetched, err := svc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(fetched.Items) != 1 {
		t.Fatalf("expected original items untouched, got %d", len(fetched.Items))
	}
}
