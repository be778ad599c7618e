package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
type OrderItem struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                                // 主键
	OrderID              uint           `gorm:"index;not null" json:"order_id"`                      // 订单ID
	MenuItemID           uint           `gorm:"index" json:"menu_item_id"`                           // 菜单项ID（0 表示无目录关联）
	Name                 string         `gorm:"type:varchar(200);not null" json:"name"`              // 菜品名称快照
	Price                Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 单价
	Quantity             int            `gorm:"not null" json:"quantity"`                            // 数量
	Notes                string         `gorm:"type:text" json:"notes"`                              // 单项备注
	CustomizationsJSON   JSON           `gorm:"type:json" json:"customizations"`                     // 定制项
	PaymentStatus        string         `gorm:"type:varchar(50)" json:"payment_status"`              // 支付状态（仅新增项有意义）
	StockTrackingEnabled bool           `gorm:"not null;default:false" json:"stock_tracking_enabled"` // 库存跟踪镜像（仅跟踪项写入）
	StockQuantity        int            `gorm:"not null;default:0" json:"stock_quantity"`            // 库存量镜像
	DamagedQuantity      int            `gorm:"not null;default:0" json:"damaged_quantity"`          // 损耗量镜像
	LowStockThreshold    int            `gorm:"not null;default:0" json:"low_stock_threshold"`       // 低库存阈值镜像
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
