package service

import (
	"math"
	"time"

	"github.com/dinefront/internal/constants"
)

// EtaScheduler 取餐时间调度。预约单的输入值按"小时.分钟档"解释
// （小数部分 .3 表示半点，其余为整点），即时单按分钟偏移解释。
type EtaScheduler struct {
	loc *time.Location
}

// NewEtaScheduler 创建取餐时间调度器
func NewEtaScheduler(loc *time.Location) *EtaScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &EtaScheduler{loc: loc}
}

// NeedsEtaPrompt 仅在状态切入 preparing 时需要确认取餐时间，
// 其余任何状态变化（包括从 preparing 切出）都不需要。
func NeedsEtaPrompt(newStatus, originalStatus string) bool {
	return newStatus == constants.OrderStatusPreparing && originalStatus != constants.OrderStatusPreparing
}

// ComputePickupTime 由输入值计算取餐时间绝对时间戳。
// 预约单：明天的 hour:minute（餐厅本地时区）；即时单：now + 分钟数。
func (s *EtaScheduler) ComputePickupTime(now time.Time, advanceNotice bool, etaValue float64) time.Time {
	if advanceNotice {
		hour := int(etaValue)
		frac := int(math.Round((etaValue - float64(hour)) * 10))
		minute := 0
		if frac == 3 {
			minute = 30
		}
		tomorrow := now.In(s.loc).AddDate(0, 0, 1)
		return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hour, minute, 0, 0, s.loc)
	}
	return now.Add(time.Duration(etaValue * float64(time.Minute)))
}

// InputValue 计算取餐时间输入框的初始值。订单已有取餐时间时换算回
// 输入表示（即时单向上取整到 5 分钟档，下限为 5 分钟后），否则用默认值。
func (s *EtaScheduler) InputValue(now time.Time, advanceNotice bool, existing *time.Time) float64 {
	if existing == nil {
		if advanceNotice {
			return constants.DefaultEtaAdvanceHour
		}
		return float64(constants.DefaultEtaImmediateMinutes)
	}
	if advanceNotice {
		local := existing.In(s.loc)
		value := float64(local.Hour())
		if local.Minute() >= 30 {
			value += 0.3
		}
		return value
	}
	minutes := int(math.Ceil(existing.Sub(now).Minutes()))
	rounded := ((minutes + constants.EtaRoundingMinutes - 1) / constants.EtaRoundingMinutes) * constants.EtaRoundingMinutes
	if rounded < constants.DefaultEtaImmediateMinutes {
		rounded = constants.DefaultEtaImmediateMinutes
	}
	return float64(rounded)
}
