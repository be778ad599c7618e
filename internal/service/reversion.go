package service

import (
	"strings"

	"github.com/dinefront/internal/constants"
)

// RemovalOutcome 移除请求的判定结果
type RemovalOutcome struct {
	// Removed 为 true 时该项已从活动列表移除
	Removed bool `json:"removed"`
	// NeedsDisposition 为 true 时移除被挂起，需先选择库存处置方式
	NeedsDisposition bool `json:"needs_disposition"`
}

// RequestRemoval 请求移除活动列表中的一项。
// 判定顺序：未启用库存跟踪或属于本会话新增的项直接移除（新增项的库存
// 从未因本订单扣减，"新增"优先于"跟踪"）；其余项挂起，等待处置选择。
func (s *EditSession) RequestRemoval(editID string) (RemovalOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfLocked(editID)
	if idx < 0 {
		return RemovalOutcome{}, ErrSessionItemNotFound
	}
	item := s.items[idx]
	if !item.StockTrackingEnabled || s.added[editID] {
		s.removeLocked(editID)
		return RemovalOutcome{Removed: true}, nil
	}
	s.pendingDisposition[editID] = true
	return RemovalOutcome{NeedsDisposition: true}, nil
}

// ResolveDisposition 对挂起的移除请求执行处置。
// return_to_inventory 直接移除；mark_as_damaged 需给出原因，移除并将
// 损耗记录入队，保存时统一上报。
func (s *EditSession) ResolveDisposition(editID, disposition, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pendingDisposition[editID] {
		return ErrDispositionNotPending
	}
	idx := s.indexOfLocked(editID)
	if idx < 0 {
		delete(s.pendingDisposition, editID)
		return ErrSessionItemNotFound
	}
	item := s.items[idx]

	switch disposition {
	case constants.DispositionReturnToInventory:
		s.removeLocked(editID)
		return nil
	case constants.DispositionMarkAsDamaged:
		if strings.TrimSpace(reason) == "" {
			return ErrDispositionReasonRequired
		}
		s.removeLocked(editID)
		if item.BackendID.Present() {
			s.damaged = append(s.damaged, DamagedItemRecord{
				BackendID: item.BackendID,
				Quantity:  item.Quantity,
				Reason:    strings.TrimSpace(reason),
			})
		}
		return nil
	default:
		return ErrDispositionInvalid
	}
}
