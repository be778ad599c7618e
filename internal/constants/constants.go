package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// 订单项支付状态常量
const (
	ItemPaymentNeedsPayment = "needs_payment"
	ItemPaymentAlreadyPaid  = "already_paid"
)

// 库存处置方式常量
const (
	DispositionReturnToInventory = "return_to_inventory"
	DispositionMarkAsDamaged     = "mark_as_damaged"
)

// 取餐时间默认值常量
const (
	DefaultEtaAdvanceHour      = 10.0
	DefaultEtaImmediateMinutes = 5
	EtaRoundingMinutes         = 5
)

// 队列常量
const (
	QueueDefault             = "default"
	TaskOrderUpdatedNotify   = "order:updated_notify"
	TaskDamageReportDispatch = "inventory:damage_report_dispatch"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault   = "df"
	MenuItemCacheSeconds = 60
)

// 站点默认常量
const (
	DefaultTimezone = "America/New_York"
)
