package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dinefront/internal/cache"
	"github.com/dinefront/internal/constants"
	"github.com/dinefront/internal/logger"
	"github.com/dinefront/internal/models"
	"github.com/dinefront/internal/repository"
)

// CatalogService 菜单目录服务。按 ID 查询走 Redis 旁路缓存，缓存不可用时
// 直接回源数据库。
type CatalogService struct {
	menuRepo repository.MenuItemRepository
}

// NewCatalogService 创建菜单目录服务
func NewCatalogService(menuRepo repository.MenuItemRepository) *CatalogService {
	return &CatalogService{menuRepo: menuRepo}
}

// GetMenuItemByID 根据目录标识获取菜单项
func (s *CatalogService) GetMenuItemByID(ctx context.Context, id BackendID) (*models.MenuItem, error) {
	numericID := id.Uint()
	if numericID == 0 {
		return nil, ErrMenuItemNotFound
	}

	key := menuItemCacheKey(numericID)
	var cached models.MenuItem
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("menu_item_cache_read_failed", "menu_item_id", numericID, "error", err)
	}
	if hit {
		return &cached, nil
	}

	item, err := s.menuRepo.GetByID(numericID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}

	if err := cache.SetJSON(ctx, key, item, time.Duration(constants.MenuItemCacheSeconds)*time.Second); err != nil {
		logger.Warnw("menu_item_cache_write_failed", "menu_item_id", numericID, "error", err)
	}
	return item, nil
}

// InvalidateMenuItem 清除菜单项缓存
func (s *CatalogService) InvalidateMenuItem(ctx context.Context, id uint) {
	if err := cache.Del(ctx, menuItemCacheKey(id)); err != nil {
		logger.Warnw("menu_item_cache_del_failed", "menu_item_id", id, "error", err)
	}
}

// ListMenuItems 菜单项列表
func (s *CatalogService) ListMenuItems(filter repository.MenuItemListFilter) ([]models.MenuItem, int64, error) {
	return s.menuRepo.List(filter)
}

// CreateMenuItem 创建菜单项
func (s *CatalogService) CreateMenuItem(item *models.MenuItem) error {
	return s.menuRepo.Create(item)
}

// UpdateMenuItem 更新菜单项字段并清除缓存
func (s *CatalogService) UpdateMenuItem(ctx context.Context, id uint, updates map[string]interface{}) error {
	existing, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrMenuItemNotFound
	}
	if err := s.menuRepo.Updates(id, updates); err != nil {
		return err
	}
	s.InvalidateMenuItem(ctx, id)
	return nil
}

func menuItemCacheKey(id uint) string {
	return fmt.Sprintf("menu_item:%d", id)
}
