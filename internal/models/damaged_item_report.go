package models

import (
	"time"
)

// DamagedItemReport 损耗上报记录表
type DamagedItemReport struct {
	ID         uint      `gorm:"primarykey" json:"id"`           // 主键
	MenuItemID uint      `gorm:"index;not null" json:"menu_item_id"` // 菜单项ID
	OrderID    uint      `gorm:"index" json:"order_id"`          // 来源订单ID
	Quantity   int       `gorm:"not null" json:"quantity"`       // 损耗数量
	Reason     string    `gorm:"type:text;not null" json:"reason"` // 损耗原因
	CreatedAt  time.Time `gorm:"index" json:"created_at"`        // 创建时间
}

// TableName 指定表名
func (DamagedItemReport) TableName() string {
	return "damaged_item_reports"
}
