package grid

import (
	"time"

	"github.com/iskedyul/backend/internal/domain"
)

const (
	Step       = 30 * time.Minute
	OtherLabel = "other"
)

var (
	DayStart = domain.NewTimeOfDay(0, 0, 0)
	DayEnd   = domain.NewTimeOfDay(20, 0, 0) // 最后一行会是 20:00-20:30
)

// TimeRanges 生成固定的时间段：从 00:00 开始，每 30 分钟一段，直到覆盖 20:00
func TimeRanges() []TimeRange {
	return generateTimeRanges(DayStart, DayEnd, Step)
}

// 先前进再判断，所以 end 本身也会作为一个时间段的下界
func generateTimeRanges(start, end domain.TimeOfDay, step time.Duration) []TimeRange {
	ranges := []TimeRange{}
	if step <= 0 {
		return ranges
	}

	current := start
	for current <= end {
		next := current.Add(step)
		ranges = append(ranges, TimeRange{
			Lower: current,
			Upper: next,
			Label: current.String() + "-" + next.String(),
		})
		current = next
	}

	return ranges
}
