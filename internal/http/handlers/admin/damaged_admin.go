package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dinefront/internal/http/response"
	"github.com/dinefront/internal/repository"
	"github.com/dinefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListDamagedReports 管理端损耗记录列表
func (h *Handler) AdminListDamagedReports(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var menuItemID, orderID uint
	if raw := strings.TrimSpace(c.Query("menu_item_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			menuItemID = uint(parsed)
		}
	}
	if raw := strings.TrimSpace(c.Query("order_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			orderID = uint(parsed)
		}
	}

	reports, total, err := h.InventoryService.ListDamagedReports(repository.DamagedReportListFilter{
		Page:       page,
		PageSize:   pageSize,
		MenuItemID: menuItemID,
		OrderID:    orderID,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "damaged report list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, reports, pagination)
}

// DamagedReportInput 手工损耗上报输入
type DamagedReportInput struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	OrderID    uint   `json:"order_id"`
	Quantity   int    `json:"quantity" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

// AdminCreateDamagedReport 管理端手工上报损耗
func (h *Handler) AdminCreateDamagedReport(c *gin.Context) {
	var input DamagedReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	err := h.InventoryService.MarkAsDamaged(c.Request.Context(), service.BackendIDFromUint(input.MenuItemID), service.DamageRequest{
		Quantity: input.Quantity,
		Reason:   input.Reason,
		OrderID:  input.OrderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			respondError(c, response.CodeNotFound, "menu item not found", nil)
		case errors.Is(err, service.ErrItemQuantityInvalid),
			errors.Is(err, service.ErrDispositionReasonRequired):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "damaged report create failed", err)
		}
		return
	}
	response.Success(c, nil)
}
