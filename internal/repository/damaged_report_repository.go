package repository

import (
	"github.com/dinefront/internal/models"

	"gorm.io/gorm"
)

// DamagedReportRepository 损耗记录数据访问接口
type DamagedReportRepository interface {
	Create(report *models.DamagedItemReport) error
	List(filter DamagedReportListFilter) ([]models.DamagedItemReport, int64, error)
}

// GormDamagedReportRepository GORM 实现
type GormDamagedReportRepository struct {
	db *gorm.DB
}

// NewDamagedReportRepository 创建损耗记录仓库
func NewDamagedReportRepository(db *gorm.DB) *GormDamagedReportRepository {
	return &GormDamagedReportRepository{db: db}
}

// Create 创建损耗记录
func (r *GormDamagedReportRepository) Create(report *models.DamagedItemReport) error {
	return r.db.Create(report).Error
}

// List 损耗记录列表
func (r *GormDamagedReportRepository) List(filter DamagedReportListFilter) ([]models.DamagedItemReport, int64, error) {
	var reports []models.DamagedItemReport
	query := r.db.Model(&models.DamagedItemReport{})

	if filter.MenuItemID != 0 {
		query = query.Where("menu_item_id = ?", filter.MenuItemID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
