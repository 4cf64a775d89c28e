package utils

import (
	"errors"
	"fmt"

	"github.com/iskedyul/backend/internal/domain"
)

// ValidateBlockTime 检查事件的结束时间是否晚于开始时间
func ValidateBlockTime(block *domain.Block) error {
	if !block.StartTime.Valid() {
		return fmt.Errorf("开始时间 %s 无效", block.StartTime)
	}
	if !block.EndTime.Valid() {
		return fmt.Errorf("结束时间 %s 无效", block.EndTime)
	}
	if block.EndTime <= block.StartTime {
		return errors.New("结束时间必须晚于开始时间")
	}
	return nil
}

func ValidateBlockDay(block *domain.Block) error {
	if !block.Day.Valid() {
		return fmt.Errorf("无效的星期 %d", block.Day)
	}
	return nil
}

// ParseBlockTimes 解析请求中的开始时间和结束时间
func ParseBlockTimes(start string, end string) (domain.TimeOfDay, domain.TimeOfDay, error) {
	startTime, err := domain.ParseTimeOfDay(start)
	if err != nil {
		return 0, 0, errors.New("开始时间格式错误")
	}
	endTime, err := domain.ParseTimeOfDay(end)
	if err != nil {
		return 0, 0, errors.New("结束时间格式错误")
	}
	return startTime, endTime, nil
}
