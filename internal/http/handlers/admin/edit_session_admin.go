package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/dinefront/internal/http/response"
	"github.com/dinefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionItemView 会话订单项视图
type SessionItemView struct {
	service.EditItem
	IsNew bool `json:"is_new"`
}

// SessionView 编辑会话视图
type SessionView struct {
	SessionID             string                      `json:"session_id"`
	OrderID               uint                        `json:"order_id"`
	OrderNo               string                      `json:"order_no"`
	OriginalStatus        string                      `json:"original_status"`
	RequiresAdvanceNotice bool                        `json:"requires_advance_notice"`
	EstimatedPickupTime   *time.Time                  `json:"estimated_pickup_time"`
	Items                 []SessionItemView           `json:"items"`
	DamagedQueue          []service.DamagedItemRecord `json:"damaged_queue"`
}

func sessionView(s *service.EditSession) SessionView {
	items := s.Items()
	views := make([]SessionItemView, 0, len(items))
	for _, item := range items {
		views = append(views, SessionItemView{
			EditItem: item,
			IsNew:    s.IsNewItem(item),
		})
	}
	return SessionView{
		SessionID:             s.ID,
		OrderID:               s.OrderID,
		OrderNo:               s.OrderNo,
		OriginalStatus:        s.OriginalStatus,
		RequiresAdvanceNotice: s.RequiresAdvanceNotice,
		EstimatedPickupTime:   s.EstimatedPickupTime,
		Items:                 views,
		DamagedQueue:          s.DamagedQueue(),
	}
}

// AdminOpenEditSession 打开订单编辑会话
func (h *Handler) AdminOpenEditSession(c *gin.Context) {
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}
	session, err := h.OrderEditService.OpenSession(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "edit session open failed", err)
		return
	}
	response.Success(c, sessionView(session))
}

// AdminGetEditSession 查看编辑会话
func (h *Handler) AdminGetEditSession(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	response.Success(c, sessionView(session))
}

// AdminAddSessionItem 会话内新增订单项
func (h *Handler) AdminAddSessionItem(c *gin.Context) {
	var input service.AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	item, err := h.OrderEditService.AddItem(c.Param("sid"), input)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminChangeSessionItem 会话内修改订单项
func (h *Handler) AdminChangeSessionItem(c *gin.Context) {
	var input service.ChangeItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	item, err := h.OrderEditService.ChangeItem(c.Param("sid"), c.Param("edit_id"), input)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminRequestItemRemoval 请求移除会话内订单项
func (h *Handler) AdminRequestItemRemoval(c *gin.Context) {
	outcome, err := h.OrderEditService.RequestRemoval(c.Param("sid"), c.Param("edit_id"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	response.Success(c, outcome)
}

// DispositionInput 移除处置输入
type DispositionInput struct {
	Disposition string `json:"disposition"`
	Reason      string `json:"reason"`
}

// AdminResolveItemDisposition 对挂起的移除请求执行处置
func (h *Handler) AdminResolveItemDisposition(c *gin.Context) {
	var input DispositionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.OrderEditService.ResolveDisposition(c.Param("sid"), c.Param("edit_id"), input.Disposition, input.Reason); err != nil {
		h.respondSessionError(c, err)
		return
	}
	response.Success(c, nil)
}

// AdminEtaPrompt 查询取餐时间确认信息
func (h *Handler) AdminEtaPrompt(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	result, err := h.OrderEditService.EtaPrompt(c.Param("sid"), status)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	response.Success(c, result)
}

// AdminSaveEditSession 保存编辑会话
func (h *Handler) AdminSaveEditSession(c *gin.Context) {
	var input service.SaveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	result, err := h.OrderEditService.Save(c.Request.Context(), c.Param("sid"), input)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	response.Success(c, result)
}

// AdminCancelEditSession 取消编辑会话
func (h *Handler) AdminCancelEditSession(c *gin.Context) {
	if err := h.OrderEditService.Cancel(c.Param("sid")); err != nil {
		h.respondSessionError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) loadSession(c *gin.Context) (*service.EditSession, bool) {
	session, err := h.OrderEditService.GetSession(c.Param("sid"))
	if err != nil {
		h.respondSessionError(c, err)
		return nil, false
	}
	return session, true
}

func (h *Handler) respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionItemNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrOrderStatusInvalid),
		errors.Is(err, service.ErrItemQuantityInvalid),
		errors.Is(err, service.ErrDispositionInvalid),
		errors.Is(err, service.ErrDispositionNotPending),
		errors.Is(err, service.ErrDispositionReasonRequired),
		errors.Is(err, service.ErrEtaValueRequired):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, "order save failed", err)
	}
}
