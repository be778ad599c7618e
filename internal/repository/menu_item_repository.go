package repository

import (
	"errors"

	"github.com/dinefront/internal/models"

	"gorm.io/gorm"
)

// MenuItemRepository 菜单项数据访问接口
type MenuItemRepository interface {
	Create(item *models.MenuItem) error
	GetByID(id uint) (*models.MenuItem, error)
	List(filter MenuItemListFilter) ([]models.MenuItem, int64, error)
	Updates(id uint, updates map[string]interface{}) error
	AddDamagedQuantity(id uint, quantity int) error
}

// GormMenuItemRepository GORM 实现
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository 创建菜单项仓库
func NewMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// Create 创建菜单项
func (r *GormMenuItemRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// GetByID 根据 ID 获取菜单项
func (r *GormMenuItemRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List 菜单项列表
func (r *GormMenuItemRepository) List(filter MenuItemListFilter) ([]models.MenuItem, int64, error) {
	var items []models.MenuItem
	query := r.db.Model(&models.MenuItem{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.OnlyTracked {
		query = query.Where("stock_tracking_enabled = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order asc, id asc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Updates 更新菜单项字段
func (r *GormMenuItemRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.MenuItem{}).Where("id = ?", id).Updates(updates).Error
}

// AddDamagedQuantity 累加损耗量并扣减库存量
func (r *GormMenuItemRepository) AddDamagedQuantity(id uint, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return r.db.Model(&models.MenuItem{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"damaged_quantity": gorm.Expr("damaged_quantity + ?", quantity),
			"stock_quantity":   gorm.Expr("stock_quantity - ?", quantity),
		}).Error
}
