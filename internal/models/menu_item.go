package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem 菜单项表
type MenuItem struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                                      // 主键
	RestaurantID         uint           `gorm:"index;not null" json:"restaurant_id"`                       // 餐厅ID
	Name                 string         `gorm:"type:varchar(200);not null" json:"name"`                    // 菜品名称
	Category             string         `gorm:"type:varchar(100);index" json:"category"`                   // 分类
	Price                Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 单价
	Tags                 StringArray    `gorm:"type:json" json:"tags"`                                     // 标签
	StockTrackingEnabled bool           `gorm:"not null;default:false" json:"stock_tracking_enabled"`      // 是否启用库存跟踪
	StockQuantity        int            `gorm:"not null;default:0" json:"stock_quantity"`                  // 当前库存量
	DamagedQuantity      int            `gorm:"not null;default:0" json:"damaged_quantity"`                // 累计损耗量
	LowStockThreshold    int            `gorm:"not null;default:0" json:"low_stock_threshold"`             // 低库存阈值
	IsActive             bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder            int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt            time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}
