package service

import "errors"

// 服务层错误定义
var (
	ErrOrderNotFound             = errors.New("order not found")
	ErrMenuItemNotFound          = errors.New("menu item not found")
	ErrSessionNotFound           = errors.New("edit session not found")
	ErrSessionItemNotFound       = errors.New("edit session item not found")
	ErrOrderStatusInvalid        = errors.New("order status transition invalid")
	ErrItemQuantityInvalid       = errors.New("item quantity invalid")
	ErrDispositionInvalid        = errors.New("disposition invalid")
	ErrDispositionNotPending     = errors.New("no disposition pending for item")
	ErrDispositionReasonRequired = errors.New("disposition reason required")
	ErrEtaValueRequired          = errors.New("eta value required")
	ErrOrderPersistFailed        = errors.New("order persist failed")
)
