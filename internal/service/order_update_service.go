package service

import (
	"context"

	"github.com/dinefront/internal/models"
	"github.com/dinefront/internal/repository"
)

// OrderUpdateService 订单持久化服务。按更新载荷全量替换订单项并更新
// 订单头字段。
type OrderUpdateService struct {
	orderRepo repository.OrderRepository
}

// NewOrderUpdateService 创建订单持久化服务
func NewOrderUpdateService(orderRepo repository.OrderRepository) *OrderUpdateService {
	return &OrderUpdateService{orderRepo: orderRepo}
}

// UpdateOrder 持久化订单更新载荷，返回更新后的完整订单
func (s *OrderUpdateService) UpdateOrder(ctx context.Context, payload OrderUpdatePayload) (*models.Order, error) {
	existing, err := s.orderRepo.GetByID(payload.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrOrderNotFound
	}
	if err := ValidateStatusTransition(existing.Status, payload.Status); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(payload.Items))
	for _, in := range payload.Items {
		items = append(items, models.OrderItem{
			OrderID:              payload.ID,
			MenuItemID:           in.BackendID.Uint(),
			Name:                 in.Name,
			Price:                in.Price,
			Quantity:             in.Quantity,
			Notes:                in.Notes,
			CustomizationsJSON:   in.Customizations,
			PaymentStatus:        in.PaymentStatus,
			StockTrackingEnabled: in.StockTrackingEnabled,
			StockQuantity:        in.StockQuantity,
			DamagedQuantity:      in.DamagedQuantity,
			LowStockThreshold:    in.LowStockThreshold,
		})
	}
	if err := s.orderRepo.ReplaceItems(payload.ID, items); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":                payload.Status,
		"total":                 payload.Total,
		"special_instructions":  payload.SpecialInstructions,
		"estimated_pickup_time": payload.EstimatedPickupTime,
	}
	if err := s.orderRepo.Updates(payload.ID, updates); err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(payload.ID)
}
