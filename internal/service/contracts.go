package service

import (
	"context"
	"time"

	"github.com/dinefront/internal/models"
)

// CatalogLookup 目录查询协作方。查询失败由调用方按单项容错处理。
type CatalogLookup interface {
	GetMenuItemByID(ctx context.Context, id BackendID) (*models.MenuItem, error)
}

// DamageRequest 损耗上报请求
type DamageRequest struct {
	Quantity int
	Reason   string
	OrderID  uint
}

// DamageReporter 损耗上报协作方。上报为尽力而为，失败不阻断保存。
type DamageReporter interface {
	MarkAsDamaged(ctx context.Context, itemID BackendID, req DamageRequest) error
}

// OrderUpdateItem 订单更新载荷中的一项。库存镜像字段仅在启用跟踪时携带。
type OrderUpdateItem struct {
	BackendID            BackendID    `json:"id,omitempty"`
	Name                 string       `json:"name"`
	Price                models.Money `json:"price"`
	Quantity             int          `json:"quantity"`
	Notes                string       `json:"notes"`
	Customizations       models.JSON  `json:"customizations,omitempty"`
	PaymentStatus        string       `json:"payment_status,omitempty"`
	StockTrackingEnabled bool         `json:"stock_tracking_enabled,omitempty"`
	StockQuantity        int          `json:"stock_quantity,omitempty"`
	DamagedQuantity      int          `json:"damaged_quantity,omitempty"`
	LowStockThreshold    int          `json:"low_stock_threshold,omitempty"`
}

// OrderUpdatePayload 订单更新载荷。透传字段原样携带自原订单。
type OrderUpdatePayload struct {
	ID                  uint              `json:"id"`
	RestaurantID        uint              `json:"restaurant_id"`
	Items               []OrderUpdateItem `json:"items"`
	Total               models.Money      `json:"total"`
	Status              string            `json:"status"`
	SpecialInstructions string            `json:"special_instructions"`
	CustomerName        string            `json:"customer_name"`
	CustomerPhone       string            `json:"customer_phone"`
	CustomerEmail       string            `json:"customer_email"`
	PaymentMethod       string            `json:"payment_method"`
	PaymentStatus       string            `json:"payment_status"`
	EstimatedPickupTime *time.Time        `json:"estimated_pickup_time"`
}

// OrderPersister 订单持久化协作方。失败对整次保存是致命的。
type OrderPersister interface {
	UpdateOrder(ctx context.Context, payload OrderUpdatePayload) (*models.Order, error)
}
