package worker

import (
	"context"
	"encoding/json"

	"github.com/dinefront/internal/logger"
	"github.com/dinefront/internal/provider"
	"github.com/dinefront/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderUpdatedNotify, c.handleOrderUpdatedNotify)
	mux.HandleFunc(queue.TaskDamageReportDispatch, c.handleDamageReportDispatch)
}

// handleOrderUpdatedNotify 订单更新通知。当前通知面只有结构化日志，
// 外部渠道（短信、打印小票）在此挂接。
func (c *Consumer) handleOrderUpdatedNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_updated_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderUpdatedNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_updated_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_updated_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_updated_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_updated_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	logger.Infow("worker_order_updated_notify",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", order.Status,
		"original_status", payload.OriginalStatus,
		"customer_phone", order.CustomerPhone,
	)
	return nil
}

// handleDamageReportDispatch 损耗上报分发。低库存时输出告警日志，
// 供运营侧监控接入。
func (c *Consumer) handleDamageReportDispatch(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_damage_report_dispatch_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DamageReportDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_damage_report_dispatch_unmarshal_failed", "error", err)
		return err
	}
	if payload.MenuItemID == 0 {
		logger.Debugw("worker_damage_report_dispatch_skip_invalid_payload", "menu_item_id", payload.MenuItemID)
		return nil
	}
	item, err := c.MenuItemRepo.GetByID(payload.MenuItemID)
	if err != nil {
		logger.Warnw("worker_damage_report_dispatch_fetch_item_failed", "menu_item_id", payload.MenuItemID, "error", err)
		return err
	}
	if item == nil {
		logger.Debugw("worker_damage_report_dispatch_skip_item_not_found", "menu_item_id", payload.MenuItemID)
		return nil
	}
	logger.Infow("worker_damage_report_dispatched",
		"report_id", payload.ReportID,
		"menu_item_id", item.ID,
		"name", item.Name,
		"quantity", payload.Quantity,
		"reason", payload.Reason,
		"stock_quantity", item.StockQuantity,
	)
	if item.StockTrackingEnabled && item.StockQuantity <= item.LowStockThreshold {
		logger.Warnw("worker_menu_item_low_stock",
			"menu_item_id", item.ID,
			"name", item.Name,
			"stock_quantity", item.StockQuantity,
			"low_stock_threshold", item.LowStockThreshold,
		)
	}
	return nil
}
