package service

import (
	"context"
	"strings"
	"time"

	"github.com/dinefront/internal/logger"
	"github.com/dinefront/internal/models"
	"github.com/dinefront/internal/queue"
	"github.com/dinefront/internal/repository"
)

// OrderEditService 订单编辑服务。打开会话、维护编辑面状态、执行保存对账。
type OrderEditService struct {
	orderRepo   repository.OrderRepository
	sessions    *EditSessionManager
	catalog     CatalogLookup
	pipeline    *SavePipeline
	scheduler   *EtaScheduler
	queueClient *queue.Client
}

// NewOrderEditService 创建订单编辑服务
func NewOrderEditService(orderRepo repository.OrderRepository, sessions *EditSessionManager, catalog CatalogLookup, pipeline *SavePipeline, scheduler *EtaScheduler, queueClient *queue.Client) *OrderEditService {
	return &OrderEditService{
		orderRepo:   orderRepo,
		sessions:    sessions,
		catalog:     catalog,
		pipeline:    pipeline,
		scheduler:   scheduler,
		queueClient: queueClient,
	}
}

// OpenSession 为订单打开编辑会话。目录补全在后台进行，不阻塞打开，
// 补全完成前库存镜像字段保持订单载荷中的值。
func (s *OrderEditService) OpenSession(ctx context.Context, orderID uint) (*EditSession, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	session := NewEditSession(order)
	s.sessions.Put(session)

	go func() {
		enrichCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		EnrichSession(enrichCtx, session, s.catalog)
	}()

	logger.Infow("order_edit_session_opened",
		"session_id", session.ID,
		"order_id", order.ID,
		"order_no", order.OrderNo,
	)
	return session, nil
}

// GetSession 获取编辑会话
func (s *OrderEditService) GetSession(id string) (*EditSession, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// AddItem 向会话新增一项
func (s *OrderEditService) AddItem(sessionID string, input AddItemInput) (EditItem, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return EditItem{}, err
	}
	return session.AddItem(input)
}

// ChangeItem 修改会话中的一项
func (s *OrderEditService) ChangeItem(sessionID, editID string, input ChangeItemInput) (EditItem, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return EditItem{}, err
	}
	return session.ChangeItem(editID, input)
}

// RequestRemoval 请求移除会话中的一项
func (s *OrderEditService) RequestRemoval(sessionID, editID string) (RemovalOutcome, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return RemovalOutcome{}, err
	}
	return session.RequestRemoval(editID)
}

// ResolveDisposition 对挂起的移除请求执行处置
func (s *OrderEditService) ResolveDisposition(sessionID, editID, disposition, reason string) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	return session.ResolveDisposition(editID, disposition, reason)
}

// EtaPromptResult 取餐时间确认信息
type EtaPromptResult struct {
	Needed        bool    `json:"needed"`
	AdvanceNotice bool    `json:"advance_notice"`
	InputValue    float64 `json:"input_value"`
}

// EtaPrompt 判断切换到目标状态是否需要确认取餐时间，并给出输入框初始值
func (s *OrderEditService) EtaPrompt(sessionID, newStatus string) (EtaPromptResult, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return EtaPromptResult{}, err
	}
	status := strings.ToLower(strings.TrimSpace(newStatus))
	if !ValidStatus(status) {
		return EtaPromptResult{}, ErrOrderStatusInvalid
	}
	result := EtaPromptResult{
		Needed:        NeedsEtaPrompt(status, session.OriginalStatus),
		AdvanceNotice: session.RequiresAdvanceNotice,
	}
	if result.Needed {
		result.InputValue = s.scheduler.InputValue(time.Now(), session.RequiresAdvanceNotice, session.EstimatedPickupTime)
	}
	return result, nil
}

// Save 保存会话。成功后销毁会话并推送订单更新通知（尽力而为）。
func (s *OrderEditService) Save(ctx context.Context, sessionID string, input SaveInput) (*SaveResult, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	result, err := s.pipeline.Save(ctx, session, input)
	if err != nil {
		return nil, err
	}
	s.sessions.Remove(sessionID)

	if err := s.queueClient.EnqueueOrderUpdatedNotify(queue.OrderUpdatedNotifyPayload{
		OrderID:        result.Order.ID,
		OrderNo:        result.Order.OrderNo,
		Status:         result.Order.Status,
		OriginalStatus: session.OriginalStatus,
	}); err != nil {
		logger.Warnw("order_updated_notify_enqueue_failed",
			"order_id", result.Order.ID,
			"error", err,
		)
	}
	return result, nil
}

// Cancel 取消并销毁会话
func (s *OrderEditService) Cancel(sessionID string) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	s.sessions.Remove(session.ID)
	logger.Infow("order_edit_session_cancelled", "session_id", session.ID, "order_id", session.OrderID)
	return nil
}

// GetOrder 获取订单
func (s *OrderEditService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 管理端订单列表
func (s *OrderEditService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}
