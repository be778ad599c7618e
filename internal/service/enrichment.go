package service

import (
	"context"

	"github.com/dinefront/internal/logger"
	"github.com/dinefront/internal/models"
)

// EnrichSession 用目录中的权威库存跟踪字段补全会话。
// 对列表中出现的每个目录标识各发起一次查询并一并等待；单项查询失败只回退
// 该项的既有值，不影响其余项。合并按目录标识定位行，与返回顺序无关，
// 用户在途修改（数量、价格、备注等）不被覆盖。
func EnrichSession(ctx context.Context, s *EditSession, catalog CatalogLookup) {
	ids := s.distinctBackendIDs()
	if len(ids) == 0 {
		return
	}
	results := settleAll(ctx, ids, func(ctx context.Context, id BackendID) (*models.MenuItem, error) {
		return catalog.GetMenuItemByID(ctx, id)
	})
	for i, result := range results {
		if result.Err != nil || result.Value == nil {
			logger.Debugw("edit_session_enrich_item_skipped",
				"session_id", s.ID,
				"backend_id", string(ids[i]),
				"error", result.Err,
			)
			continue
		}
		s.applyEnrichment(ids[i], result.Value)
	}
}

// distinctBackendIDs 汇总快照与活动列表中出现的目录标识（去重）
func (s *EditSession) distinctBackendIDs() []BackendID {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[BackendID]bool)
	var ids []BackendID
	collect := func(items []EditItem) {
		for _, item := range items {
			if !item.BackendID.Present() || seen[item.BackendID] {
				continue
			}
			seen[item.BackendID] = true
			ids = append(ids, item.BackendID)
		}
	}
	collect(s.snapshot)
	collect(s.items)
	return ids
}

// applyEnrichment 将权威库存字段合并进快照与活动列表中同标识的行
func (s *EditSession) applyEnrichment(id BackendID, menuItem *models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merge := func(items []EditItem) {
		for i := range items {
			if !SameBackendID(items[i].BackendID, id) {
				continue
			}
			items[i].StockTrackingEnabled = menuItem.StockTrackingEnabled
			items[i].StockQuantity = menuItem.StockQuantity
			items[i].DamagedQuantity = menuItem.DamagedQuantity
			items[i].LowStockThreshold = menuItem.LowStockThreshold
		}
	}
	merge(s.snapshot)
	merge(s.items)
}
