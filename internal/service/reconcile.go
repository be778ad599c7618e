package service

import (
	"context"
	"strings"
	"time"

	"github.com/dinefront/internal/logger"
	"github.com/dinefront/internal/models"
)

// SaveInput 保存编辑会话的输入
type SaveInput struct {
	Status              string   `json:"status"`
	TotalText           string   `json:"total"`
	SpecialInstructions string   `json:"special_instructions"`
	EtaValue            *float64 `json:"eta_value"`
}

// InventoryChange 保存前汇总出的单项库存变动
type InventoryChange struct {
	BackendID        BackendID `json:"backend_id,omitempty"`
	Name             string    `json:"name"`
	OriginalQuantity int       `json:"original_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	IsNew            bool      `json:"is_new"`
	IsRemoved        bool      `json:"is_removed"`
}

// SaveResult 保存结果
type SaveResult struct {
	Order   *models.Order     `json:"order"`
	Changes []InventoryChange `json:"changes"`
}

// SavePipeline 保存对账流水线。四步依次执行：汇总库存变动（纯计算）、
// 批量上报损耗（尽力而为）、组装订单载荷、持久化（失败即整次保存失败，
// 不重试）。
type SavePipeline struct {
	reporter  DamageReporter
	persister OrderPersister
	scheduler *EtaScheduler
}

// NewSavePipeline 创建保存对账流水线
func NewSavePipeline(reporter DamageReporter, persister OrderPersister, scheduler *EtaScheduler) *SavePipeline {
	return &SavePipeline{
		reporter:  reporter,
		persister: persister,
		scheduler: scheduler,
	}
}

// Save 执行一次保存。损耗上报失败只记日志，持久化失败原样返回错误，
// 此时损耗队列已清空，重复保存不会重复上报。
func (p *SavePipeline) Save(ctx context.Context, s *EditSession, input SaveInput) (*SaveResult, error) {
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = s.OriginalStatus
	}
	if err := ValidateStatusTransition(s.OriginalStatus, status); err != nil {
		return nil, err
	}
	if NeedsEtaPrompt(status, s.OriginalStatus) && input.EtaValue == nil && s.EstimatedPickupTime == nil {
		return nil, ErrEtaValueRequired
	}

	changes := p.summarizeInventoryChanges(s)
	p.flushDamaged(ctx, s)
	payload := p.assemblePayload(s, input, status)

	order, err := p.persister.UpdateOrder(ctx, payload)
	if err != nil {
		logger.Errorw("order_save_persist_failed",
			"order_id", s.OrderID,
			"order_no", s.OrderNo,
			"error", err,
		)
		return nil, err
	}
	return &SaveResult{Order: order, Changes: changes}, nil
}

// summarizeInventoryChanges 对比快照与活动列表汇总库存变动。只关心启用
// 库存跟踪的项：数量变化、被移除的原始项和新增项各出一条记录。
func (p *SavePipeline) summarizeInventoryChanges(s *EditSession) []InventoryChange {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changes []InventoryChange
	for i := range s.items {
		item := s.items[i]
		if !item.StockTrackingEnabled {
			continue
		}
		if s.isNewItemLocked(item) {
			changes = append(changes, InventoryChange{
				BackendID:   item.BackendID,
				Name:        item.Name,
				NewQuantity: item.Quantity,
				IsNew:       true,
			})
			continue
		}
		original := s.findOriginalLocked(item.BackendID)
		if original != nil && original.Quantity != item.Quantity {
			changes = append(changes, InventoryChange{
				BackendID:        item.BackendID,
				Name:             item.Name,
				OriginalQuantity: original.Quantity,
				NewQuantity:      item.Quantity,
			})
		}
	}
	for i := range s.snapshot {
		original := s.snapshot[i]
		if !original.StockTrackingEnabled || !original.BackendID.Present() {
			continue
		}
		stillPresent := false
		for j := range s.items {
			if SameBackendID(s.items[j].BackendID, original.BackendID) {
				stillPresent = true
				break
			}
		}
		if !stillPresent {
			changes = append(changes, InventoryChange{
				BackendID:        original.BackendID,
				Name:             original.Name,
				OriginalQuantity: original.Quantity,
				IsRemoved:        true,
			})
		}
	}
	return changes
}

// flushDamaged 批量上报损耗队列。队列在发起上报前即被清空，单条上报
// 结果互不影响，失败只记日志。
func (p *SavePipeline) flushDamaged(ctx context.Context, s *EditSession) {
	records := s.drainDamaged()
	if len(records) == 0 {
		return
	}
	results := settleAll(ctx, records, func(ctx context.Context, record DamagedItemRecord) (struct{}, error) {
		err := p.reporter.MarkAsDamaged(ctx, record.BackendID, DamageRequest{
			Quantity: record.Quantity,
			Reason:   record.Reason,
			OrderID:  s.OrderID,
		})
		return struct{}{}, err
	})
	for i, result := range results {
		if result.Err != nil {
			logger.Warnw("damaged_item_report_failed",
				"order_id", s.OrderID,
				"backend_id", string(records[i].BackendID),
				"quantity", records[i].Quantity,
				"error", result.Err,
			)
		}
	}
}

// assemblePayload 组装订单更新载荷。会话内部标识不外传，库存镜像字段仅
// 对启用跟踪的项携带，金额解析失败按 0 处理。
func (p *SavePipeline) assemblePayload(s *EditSession, input SaveInput, status string) OrderUpdatePayload {
	items := s.Items()
	payloadItems := make([]OrderUpdateItem, 0, len(items))
	for _, item := range items {
		out := OrderUpdateItem{
			BackendID:      item.BackendID,
			Name:           item.Name,
			Price:          item.Price,
			Quantity:       item.Quantity,
			Notes:          item.Notes,
			Customizations: item.Customizations,
			PaymentStatus:  item.PaymentStatus,
		}
		if item.StockTrackingEnabled {
			out.StockTrackingEnabled = true
			out.StockQuantity = item.StockQuantity
			out.DamagedQuantity = item.DamagedQuantity
			out.LowStockThreshold = item.LowStockThreshold
		}
		payloadItems = append(payloadItems, out)
	}

	var total models.Money
	if text := strings.TrimSpace(input.TotalText); text != "" {
		parsed, err := models.ParseMoney(text)
		if err != nil {
			logger.Warnw("order_total_parse_failed",
				"order_id", s.OrderID,
				"total", input.TotalText,
			)
		} else {
			total = parsed
		}
	}

	pickup := s.EstimatedPickupTime
	if input.EtaValue != nil {
		computed := p.scheduler.ComputePickupTime(time.Now(), s.RequiresAdvanceNotice, *input.EtaValue)
		pickup = &computed
	}

	return OrderUpdatePayload{
		ID:                  s.OrderID,
		RestaurantID:        s.RestaurantID,
		Items:               payloadItems,
		Total:               total,
		Status:              status,
		SpecialInstructions: input.SpecialInstructions,
		CustomerName:        s.CustomerName,
		CustomerPhone:       s.CustomerPhone,
		CustomerEmail:       s.CustomerEmail,
		PaymentMethod:       s.PaymentMethod,
		PaymentStatus:       s.PaymentStatus,
		EstimatedPickupTime: pickup,
	}
}
