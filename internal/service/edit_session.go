package service

import (
	"sync"
	"time"

	"github.com/dinefront/internal/logger"
	"github.com/dinefront/internal/models"

	"github.com/google/uuid"
)

// DamagedItemRecord 损耗上报排队记录，移除处置为 mark_as_damaged 时入队，
// 保存时统一批量上报。
type DamagedItemRecord struct {
	BackendID BackendID `json:"backend_id"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
}

// EditSession 一次订单编辑会话。快照与活动项列表均在打开时由订单载荷生成，
// 快照此后只读（目录补全仅写入库存镜像字段）。
type EditSession struct {
	ID                    string
	OrderID               uint
	OrderNo               string
	RestaurantID          uint
	OriginalStatus        string
	RequiresAdvanceNotice bool
	EstimatedPickupTime   *time.Time
	CustomerName          string
	CustomerPhone         string
	CustomerEmail         string
	PaymentMethod         string
	PaymentStatus         string
	SpecialInstructions   string
	CreatedAt             time.Time

	mu       sync.Mutex
	snapshot []EditItem
	items    []EditItem
	// added 记录本会话内新增项的 editID，只增不删，成员关系永不回退
	added   map[string]bool
	damaged []DamagedItemRecord
	// pendingDisposition 记录待处置的移除请求
	pendingDisposition map[string]bool
}

// NewEditSession 从订单载荷创建编辑会话
func NewEditSession(order *models.Order) *EditSession {
	s := &EditSession{
		ID:                    uuid.NewString(),
		OrderID:               order.ID,
		OrderNo:               order.OrderNo,
		RestaurantID:          order.RestaurantID,
		OriginalStatus:        order.Status,
		RequiresAdvanceNotice: order.RequiresAdvanceNotice,
		EstimatedPickupTime:   order.EstimatedPickupTime,
		CustomerName:          order.CustomerName,
		CustomerPhone:         order.CustomerPhone,
		CustomerEmail:         order.CustomerEmail,
		PaymentMethod:         order.PaymentMethod,
		PaymentStatus:         order.PaymentStatus,
		SpecialInstructions:   order.SpecialInstructions,
		CreatedAt:             time.Now(),
		added:                 make(map[string]bool),
		pendingDisposition:    make(map[string]bool),
	}
	for _, item := range order.Items {
		edit := editItemFromModel(item)
		s.snapshot = append(s.snapshot, edit)
		s.items = append(s.items, edit)
	}
	return s
}

func editItemFromModel(item models.OrderItem) EditItem {
	return EditItem{
		EditID:               uuid.NewString(),
		BackendID:            BackendIDFromUint(item.MenuItemID),
		Name:                 item.Name,
		Quantity:             item.Quantity,
		Price:                item.Price,
		Notes:                item.Notes,
		Customizations:       item.CustomizationsJSON,
		PaymentStatus:        item.PaymentStatus,
		StockTrackingEnabled: item.StockTrackingEnabled,
		StockQuantity:        item.StockQuantity,
		DamagedQuantity:      item.DamagedQuantity,
		LowStockThreshold:    item.LowStockThreshold,
	}
}

// Items 返回活动项列表副本
func (s *EditSession) Items() []EditItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]EditItem(nil), s.items...)
}

// Snapshot 返回原始快照副本
func (s *EditSession) Snapshot() []EditItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]EditItem(nil), s.snapshot...)
}

// DamagedQueue 返回损耗上报队列副本
func (s *EditSession) DamagedQueue() []DamagedItemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DamagedItemRecord(nil), s.damaged...)
}

// AddItemInput 新增订单项输入
type AddItemInput struct {
	BackendID      BackendID    `json:"backend_id"`
	Name           string       `json:"name"`
	Quantity       int          `json:"quantity"`
	Price          models.Money `json:"price"`
	Notes          string       `json:"notes"`
	Customizations models.JSON  `json:"customizations"`
	PaymentStatus  string       `json:"payment_status"`
}

// AddItem 向活动列表追加一项并登记为本会话新增
func (s *EditSession) AddItem(input AddItemInput) (EditItem, error) {
	if input.Quantity <= 0 {
		return EditItem{}, ErrItemQuantityInvalid
	}
	item := EditItem{
		EditID:         uuid.NewString(),
		BackendID:      input.BackendID,
		Name:           input.Name,
		Quantity:       input.Quantity,
		Price:          input.Price,
		Notes:          input.Notes,
		Customizations: input.Customizations,
		PaymentStatus:  input.PaymentStatus,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	s.added[item.EditID] = true
	return item, nil
}

// ChangeItemInput 修改订单项输入，nil 字段表示不修改
type ChangeItemInput struct {
	Quantity       *int          `json:"quantity"`
	Price          *models.Money `json:"price"`
	Notes          *string       `json:"notes"`
	Customizations models.JSON   `json:"customizations"`
	PaymentStatus  *string       `json:"payment_status"`
}

// ChangeItem 修改活动列表中的一项。editID 保持不变，快照不受影响。
func (s *EditSession) ChangeItem(editID string, input ChangeItemInput) (EditItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfLocked(editID)
	if idx < 0 {
		return EditItem{}, ErrSessionItemNotFound
	}
	item := &s.items[idx]
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return EditItem{}, ErrItemQuantityInvalid
		}
		item.Quantity = *input.Quantity
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}
	if input.Customizations != nil {
		item.Customizations = input.Customizations
	}
	if input.PaymentStatus != nil {
		item.PaymentStatus = *input.PaymentStatus
	}
	return *item, nil
}

func (s *EditSession) indexOfLocked(editID string) int {
	for i := range s.items {
		if s.items[i].EditID == editID {
			return i
		}
	}
	return -1
}

func (s *EditSession) removeLocked(editID string) bool {
	idx := s.indexOfLocked(editID)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	delete(s.pendingDisposition, editID)
	return true
}

// drainDamaged 取出并清空损耗上报队列。保存流程每次调用至多执行一次上报。
func (s *EditSession) drainDamaged() []DamagedItemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	drained := s.damaged
	s.damaged = nil
	return drained
}

// EditSessionManager 编辑会话管理器。会话仅存在于进程内，随保存或取消而销毁。
type EditSessionManager struct {
	mu       sync.Mutex
	sessions map[string]*EditSession
	ttl      time.Duration
}

// NewEditSessionManager 创建编辑会话管理器
func NewEditSessionManager(ttl time.Duration) *EditSessionManager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &EditSessionManager{
		sessions: make(map[string]*EditSession),
		ttl:      ttl,
	}
}

// Put 登记会话
func (m *EditSessionManager) Put(s *EditSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpiredLocked()
	m.sessions[s.ID] = s
}

// Get 获取会话
func (m *EditSessionManager) Get(id string) (*EditSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(s.CreatedAt) > m.ttl {
		delete(m.sessions, id)
		logger.Debugw("edit_session_expired", "session_id", id, "order_id", s.OrderID)
		return nil, false
	}
	return s, true
}

// Remove 移除会话
func (m *EditSessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *EditSessionManager) purgeExpiredLocked() {
	for id, s := range m.sessions {
		if time.Since(s.CreatedAt) > m.ttl {
			delete(m.sessions, id)
		}
	}
}
