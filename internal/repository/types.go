package repository

import "time"

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	OrderNo     string
	CustomerKey string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// MenuItemListFilter 查询菜单项列表的过滤条件
type MenuItemListFilter struct {
	Page        int
	PageSize    int
	Category    string
	Search      string
	OnlyActive  bool
	OnlyTracked bool
}

// DamagedReportListFilter 查询损耗记录列表的过滤条件
type DamagedReportListFilter struct {
	Page        int
	PageSize    int
	MenuItemID  uint
	OrderID     uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
