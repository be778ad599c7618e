package repository

import (
	"testing"

	"github.com/dinefront/internal/constants"
	"github.com/dinefront/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate order tables failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func createTestOrder(t *testing.T, repo *GormOrderRepository, orderNo string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:      orderNo,
		RestaurantID: 1,
		CustomerName: "Alex Chen",
		Status:       constants.OrderStatusPending,
		Total:        models.NewMoneyFromDecimal(decimal.NewFromFloat(25.00)),
	}
	items := []models.OrderItem{
		{MenuItemID: 10, Name: "Pizza", Quantity: 2, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50))},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryCreateAndGet(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createTestOrder(t, repo, "DF-TEST-0001")

	fetched, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if fetched == nil {
		t.Fatalf("expected order found")
	}
	if len(fetched.Items) != 1 {
		t.Fatalf("expected items preloaded, got %d", len(fetched.Items))
	}
	if fetched.Items[0].MenuItemID != 10 {
		t.Fatalf("expected item menu id 10, got %d", fetched.Items[0].MenuItemID)
	}
}

func TestOrderRepositoryGetMissingReturnsNil(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	fetched, err := repo.GetByID(999)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if fetched != nil {
		t.Fatalf("expected nil for missing order")
	}
}

func TestOrderRepositoryGetByOrderNo(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createTestOrder(t, repo, "DF-TEST-0002")

	fetched, err := repo.GetByOrderNo("DF-TEST-0002")
	if err != nil {
		t.Fatalf("get by order no failed: %v", err)
	}
	if fetched == nil || fetched.ID != order.ID {
		t.Fatalf("expected order %d found, got %+v", order.ID, fetched)
	}
}

func TestOrderRepositoryReplaceItems(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createTestOrder(t, repo, "DF-TEST-0003")

	replacement := []models.OrderItem{
		{MenuItemID: 11, Name: "Salad", Quantity: 1, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(6.00))},
		{MenuItemID: 0, Name: "Chef Special", Quantity: 1, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.00))},
	}
	if err := repo.ReplaceItems(order.ID, replacement); err != nil {
		t.Fatalf("replace items failed: %v", err)
	}

	fetched, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(fetched.Items) != 2 {
		t.Fatalf("expected 2 items after replace, got %d", len(fetched.Items))
	}
	if fetched.Items[0].MenuItemID != 11 || fetched.Items[1].Name != "Chef Special" {
		t.Fatalf("unexpected replaced items: %+v", fetched.Items)
	}
}

func TestOrderRepositoryUpdates(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createTestOrder(t, repo, "DF-TEST-0004")

	err := repo.Updates(order.ID, map[string]interface{}{
		"status":               constants.OrderStatusPreparing,
		"special_instructions": "no onions",
	})
	if err != nil {
		t.Fatalf("updates failed: %v", err)
	}
	fetched, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if fetched.Status != constants.OrderStatusPreparing || fetched.SpecialInstructions != "no onions" {
		t.Fatalf("expected updates applied, got %+v", fetched)
	}
}

func TestOrderRepositoryListFilters(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createTestOrder(t, repo, "DF-TEST-0005")
	other := createTestOrder(t, repo, "DF-TEST-0006")
	if err := repo.UpdateStatus(other.ID, constants.OrderStatusPreparing, nil); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	orders, total, err := repo.List(OrderListFilter{Page: 1, PageSize: 10, Status: constants.OrderStatusPreparing})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("expected 1 preparing order, got total=%d len=%d", total, len(orders))
	}
	if orders[0].ID != other.ID {
		t.Fatalf("expected order %d, got %d", other.ID, orders[0].ID)
	}
}
