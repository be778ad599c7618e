package service

import (
	"strings"

	"github.com/dinefront/internal/constants"
)

var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusPreparing: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPreparing: {
		constants.OrderStatusPending:   true,
		constants.OrderStatusReady:     true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusReady: {
		constants.OrderStatusPreparing: true,
		constants.OrderStatusCompleted: true,
	},
}

// ValidStatus 判断是否为已知订单状态
func ValidStatus(status string) bool {
	switch status {
	case constants.OrderStatusPending,
		constants.OrderStatusPreparing,
		constants.OrderStatusReady,
		constants.OrderStatusCompleted,
		constants.OrderStatusCancelled:
		return true
	}
	return false
}

// ValidateStatusTransition 校验状态迁移。保持原状态恒为合法。
func ValidateStatusTransition(from, to string) error {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if !ValidStatus(to) {
		return ErrOrderStatusInvalid
	}
	if from == to {
		return nil
	}
	if allowedTransitions[from][to] {
		return nil
	}
	return ErrOrderStatusInvalid
}
