package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dinefront/internal/models"
)

type catalogStub struct {
	items map[BackendID]*models.MenuItem
	errs  map[BackendID]error
}

func (c *catalogStub) GetMenuItemByID(_ context.Context, id BackendID) (*models.MenuItem, error) {
	if err, ok := c.errs[id]; ok {
		return nil, err
	}
	if item, ok := c.items[id]; ok {
		return item, nil
	}
	return nil, ErrMenuItemNotFound
}

func TestEnrichSessionMergesStockFields(t *testing.T) {
	s := NewEditSession(&models.Order{
		ID:     1,
		Status: "pending",
		Items: []models.OrderItem{
			{MenuItemID: 10, Name: "Pizza", Quantity: 2},
			{MenuItemID: 11, Name: "Salad", Quantity: 1},
		},
	})
	catalog := &catalogStub{items: map[BackendID]*models.MenuItem{
		"10": {ID: 10, StockTrackingEnabled: true, StockQuantity: 40, DamagedQuantity: 2, LowStockThreshold: 5},
		"11": {ID: 11, StockTrackingEnabled: false},
	}}

	EnrichSession(context.Background(), s, catalog)

	items := s.Items()
	if !items[0].StockTrackingEnabled || items[0].StockQuantity != 40 || items[0].LowStockThreshold != 5 {
		t.Fatalf("expected stock fields merged into item, got %+v", items[0])
	}
	if items[1].StockTrackingEnabled {
		t.Fatalf("expected untracked item left untracked")
	}
	snapshot := s.Snapshot()
	if !snapshot[0].StockTrackingEnabled || snapshot[0].StockQuantity != 40 {
		t.Fatalf("expected stock fields merged into snapshot, got %+v", snapshot[0])
	}
}

func TestEnrichSessionToleratesItemFailure(t *testing.T) {
	s := NewEditSession(&models.Order{
		ID:     1,
		Status: "pending",
		Items: []models.OrderItem{
			{MenuItemID: 10, Name: "Pizza", Quantity: 2, StockTrackingEnabled: true, StockQuantity: 30},
			{MenuItemID: 11, Name: "Salad", Quantity: 1},
		},
	})
	catalog := &catalogStub{
		items: map[BackendID]*models.MenuItem{
			"11": {ID: 11, StockTrackingEnabled: true, StockQuantity: 8},
		},
		errs: map[BackendID]error{
			"10": errors.New("catalog timeout"),
		},
	}

	EnrichSession(context.Background(), s, catalog)

	items := s.Items()
	// 失败的项保留载荷里的既有值
	if !items[0].StockTrackingEnabled || items[0].StockQuantity != 30 {
		t.Fatalf("expected failed item to keep prior values, got %+v", items[0])
	}
	if !items[1].StockTrackingEnabled || items[1].StockQuantity != 8 {
		t.Fatalf("expected successful item merged, got %+v", items[1])
	}
}

func TestEnrichSessionKeepsUserEdits(t *testing.T) {
	s := NewEditSession(&models.Order{
		ID:     1,
		Status: "pending",
		Items: []models.OrderItem{
			{MenuItemID: 10, Name: "Pizza", Quantity: 2},
		},
	})
	item := s.Items()[0]
	quantity := 7
	if _, err := s.ChangeItem(item.EditID, ChangeItemInput{Quantity: &quantity}); err != nil {
		t.Fatalf("change item failed: %v", err)
	}

	catalog := &catalogStub{items: map[BackendID]*models.MenuItem{
		"10": {ID: 10, StockTrackingEnabled: true, StockQuantity: 40},
	}}
	EnrichSession(context.Background(), s, catalog)

	merged := s.Items()[0]
	if merged.Quantity != 7 {
		t.Fatalf("expected in-flight quantity kept, got %d", merged.Quantity)
	}
	if !merged.StockTrackingEnabled {
		t.Fatalf("expected stock fields merged")
	}
}

func TestDistinctBackendIDsDeduplicates(t *testing.T) {
	s := NewEditSession(&models.Order{
		ID:     1,
		Status: "pending",
		Items: []models.OrderItem{
			{MenuItemID: 10, Name: "Pizza", Quantity: 1},
			{MenuItemID: 10, Name: "Pizza", Quantity: 2},
			{MenuItemID: 0, Name: "Special", Quantity: 1},
		},
	})
	if _, err := s.AddItem(AddItemInput{BackendID: "11", Name: "Salad", Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	ids := s.distinctBackendIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 distinct ids, got %v", ids)
	}
	if ids[0] != "10" || ids[1] != "11" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
