package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                    uint           `gorm:"primarykey" json:"id"`                                // 主键
	OrderNo               string         `gorm:"uniqueIndex;not null" json:"order_no"`                // 订单编号
	RestaurantID          uint           `gorm:"index;not null" json:"restaurant_id"`                 // 餐厅ID（透传，不参与本服务逻辑）
	CustomerName          string         `gorm:"type:varchar(200)" json:"customer_name"`              // 顾客姓名
	CustomerPhone         string         `gorm:"type:varchar(50)" json:"customer_phone"`              // 顾客电话
	CustomerEmail         string         `gorm:"type:varchar(200)" json:"customer_email"`             // 顾客邮箱
	Status                string         `gorm:"index;not null" json:"status"`                        // 订单状态
	Total                 Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`  // 订单总额
	SpecialInstructions   string         `gorm:"type:text" json:"special_instructions"`               // 备注
	PaymentMethod         string         `gorm:"type:varchar(50)" json:"payment_method"`              // 支付方式（透传）
	PaymentStatus         string         `gorm:"type:varchar(50)" json:"payment_status"`              // 支付状态（透传）
	RequiresAdvanceNotice bool           `gorm:"not null;default:false" json:"requires_advance_notice"` // 是否为预约单
	EstimatedPickupTime   *time.Time     `gorm:"index" json:"estimated_pickup_time"`                  // 预计取餐时间
	CreatedAt             time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt             time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
