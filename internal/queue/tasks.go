package queue

import (
	"encoding/json"

	"github.com/dinefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderUpdatedNotify 订单更新通知任务
	TaskOrderUpdatedNotify = constants.TaskOrderUpdatedNotify
	// TaskDamageReportDispatch 损耗上报分发任务
	TaskDamageReportDispatch = constants.TaskDamageReportDispatch
)

// OrderUpdatedNotifyPayload 订单更新通知任务载荷
type OrderUpdatedNotifyPayload struct {
	OrderID        uint   `json:"order_id"`
	OrderNo        string `json:"order_no"`
	Status         string `json:"status"`
	OriginalStatus string `json:"original_status"`
}

// DamageReportDispatchPayload 损耗上报分发任务载荷
type DamageReportDispatchPayload struct {
	ReportID   uint   `json:"report_id"`
	MenuItemID uint   `json:"menu_item_id"`
	OrderID    uint   `json:"order_id"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
}

// NewOrderUpdatedNotifyTask 创建订单更新通知任务
func NewOrderUpdatedNotifyTask(payload OrderUpdatedNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderUpdatedNotify, body), nil
}

// NewDamageReportDispatchTask 创建损耗上报分发任务
func NewDamageReportDispatchTask(payload DamageReportDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDamageReportDispatch, body), nil
}
