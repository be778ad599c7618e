package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dinefront/internal/models"
)

// BackendID 目录项标识。不同来源可能是数字或字符串，统一保存为规范化字符串，
// 比较时不依赖原始类型。
type BackendID string

// UnmarshalJSON 解析标识（字符串或数字）
func (b *BackendID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*b = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = BackendID(strings.TrimSpace(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*b = BackendID(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// Present 判断标识是否存在
func (b BackendID) Present() bool {
	return strings.TrimSpace(string(b)) != ""
}

// Uint 转换为数字主键，非数字返回 0
func (b BackendID) Uint() uint {
	parsed, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

// BackendIDFromUint 从数字主键构造标识
func BackendIDFromUint(id uint) BackendID {
	if id == 0 {
		return ""
	}
	return BackendID(strconv.FormatUint(uint64(id), 10))
}

// SameBackendID 规范化比较两个目录项标识。任一缺失视为不同。
func SameBackendID(a, b BackendID) bool {
	if !a.Present() || !b.Present() {
		return false
	}
	return strings.TrimSpace(string(a)) == strings.TrimSpace(string(b))
}

// EditItem 编辑面上的一行订单项
type EditItem struct {
	EditID               string       `json:"edit_id"`
	BackendID            BackendID    `json:"backend_id,omitempty"`
	Name                 string       `json:"name"`
	Quantity             int          `json:"quantity"`
	Price                models.Money `json:"price"`
	Notes                string       `json:"notes"`
	Customizations       models.JSON  `json:"customizations,omitempty"`
	PaymentStatus        string       `json:"payment_status,omitempty"`
	StockTrackingEnabled bool         `json:"stock_tracking_enabled"`
	StockQuantity        int          `json:"stock_quantity"`
	DamagedQuantity      int          `json:"damaged_quantity"`
	LowStockThreshold    int          `json:"low_stock_threshold"`
}

// IsNewItem 按目录标识对比快照判断订单项是否为新项。无目录标识的项恒为新项；
// 有标识但快照中不存在同标识项的也视为新项。
func (s *EditSession) IsNewItem(item EditItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isNewItemLocked(item)
}

func (s *EditSession) isNewItemLocked(item EditItem) bool {
	if !item.BackendID.Present() {
		return true
	}
	return s.findOriginalLocked(item.BackendID) == nil
}

// FindOriginal 返回快照中同目录标识的原始项
func (s *EditSession) FindOriginal(item EditItem) *EditItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := s.findOriginalLocked(item.BackendID)
	if found == nil {
		return nil
	}
	copied := *found
	return &copied
}

func (s *EditSession) findOriginalLocked(id BackendID) *EditItem {
	if !id.Present() {
		return nil
	}
	for i := range s.snapshot {
		if SameBackendID(s.snapshot[i].BackendID, id) {
			return &s.snapshot[i]
		}
	}
	return nil
}
