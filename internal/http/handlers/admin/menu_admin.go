package admin

import (
	"strconv"
	"strings"

	"github.com/dinefront/internal/http/response"
	"github.com/dinefront/internal/models"
	"github.com/dinefront/internal/repository"
	"github.com/dinefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListMenuItems 管理端菜单项列表
func (h *Handler) AdminListMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	items, total, err := h.CatalogService.ListMenuItems(repository.MenuItemListFilter{
		Page:        page,
		PageSize:    pageSize,
		Category:    strings.TrimSpace(c.Query("category")),
		Search:      strings.TrimSpace(c.Query("search")),
		OnlyActive:  c.Query("only_active") == "true",
		OnlyTracked: c.Query("only_tracked") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "menu item list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, items, pagination)
}

// AdminGetMenuItem 管理端菜单项详情
func (h *Handler) AdminGetMenuItem(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid menu item id", err)
		return
	}
	item, err := h.CatalogService.GetMenuItemByID(c.Request.Context(), service.BackendIDFromUint(id))
	if err != nil {
		if err == service.ErrMenuItemNotFound {
			respondError(c, response.CodeNotFound, "menu item not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "menu item fetch failed", err)
		return
	}
	response.Success(c, item)
}

// MenuItemInput 菜单项创建输入
type MenuItemInput struct {
	RestaurantID         uint               `json:"restaurant_id"`
	Name                 string             `json:"name" binding:"required"`
	Category             string             `json:"category"`
	Price                models.Money       `json:"price"`
	Tags                 models.StringArray `json:"tags"`
	StockTrackingEnabled bool               `json:"stock_tracking_enabled"`
	StockQuantity        int                `json:"stock_quantity"`
	LowStockThreshold    int                `json:"low_stock_threshold"`
	IsActive             *bool              `json:"is_active"`
	SortOrder            int                `json:"sort_order"`
}

// AdminCreateMenuItem 管理端创建菜单项
func (h *Handler) AdminCreateMenuItem(c *gin.Context) {
	var input MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	item := &models.MenuItem{
		RestaurantID:         input.RestaurantID,
		Name:                 strings.TrimSpace(input.Name),
		Category:             strings.TrimSpace(input.Category),
		Price:                input.Price,
		Tags:                 input.Tags,
		StockTrackingEnabled: input.StockTrackingEnabled,
		StockQuantity:        input.StockQuantity,
		LowStockThreshold:    input.LowStockThreshold,
		IsActive:             isActive,
		SortOrder:            input.SortOrder,
	}
	if err := h.CatalogService.CreateMenuItem(item); err != nil {
		respondError(c, response.CodeInternal, "menu item create failed", err)
		return
	}
	response.Success(c, item)
}

// MenuItemUpdateInput 菜单项更新输入，nil 字段表示不修改
type MenuItemUpdateInput struct {
	Name                 *string       `json:"name"`
	Category             *string       `json:"category"`
	Price                *models.Money `json:"price"`
	StockTrackingEnabled *bool         `json:"stock_tracking_enabled"`
	StockQuantity        *int          `json:"stock_quantity"`
	LowStockThreshold    *int          `json:"low_stock_threshold"`
	IsActive             *bool         `json:"is_active"`
	SortOrder            *int          `json:"sort_order"`
}

func (in MenuItemUpdateInput) toUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		updates["category"] = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.StockTrackingEnabled != nil {
		updates["stock_tracking_enabled"] = *in.StockTrackingEnabled
	}
	if in.StockQuantity != nil {
		updates["stock_quantity"] = *in.StockQuantity
	}
	if in.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *in.LowStockThreshold
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.SortOrder != nil {
		updates["sort_order"] = *in.SortOrder
	}
	return updates
}

// AdminUpdateMenuItem 管理端更新菜单项
func (h *Handler) AdminUpdateMenuItem(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid menu item id", err)
		return
	}
	var input MenuItemUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	updates := input.toUpdates()
	if err := h.CatalogService.UpdateMenuItem(c.Request.Context(), id, updates); err != nil {
		if err == service.ErrMenuItemNotFound {
			respondError(c, response.CodeNotFound, "menu item not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "menu item update failed", err)
		return
	}
	response.Success(c, nil)
}
