package grid

import (
	"sort"

	"github.com/iskedyul/backend/internal/domain"
)

// Classify 在有序且连续的时间段中二分查找包含 t 的时间段，找不到时返回 OtherLabel
func Classify(ranges []TimeRange, t domain.TimeOfDay) string {
	i := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].Upper > t
	})
	if i < len(ranges) && ranges[i].Contains(t) {
		return ranges[i].Label
	}
	return OtherLabel
}

func FilterByTimeRange(classified []ClassifiedBlock, label string) []ClassifiedBlock {
	result := make([]ClassifiedBlock, 0)
	for _, cb := range classified {
		if cb.TimeRange == label {
			result = append(result, cb)
		}
	}
	return result
}

// 按开始时间排序，开始时间相同时按星期排序
func sortBlocks(blocks []*domain.Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].StartTime != blocks[j].StartTime {
			return blocks[i].StartTime < blocks[j].StartTime
		}
		return blocks[i].Day < blocks[j].Day
	})
}

// annotate 统计同一行中每一天的事件数量，并附加到每个事件上
func annotate(label string, classified []ClassifiedBlock) Row {
	dayCnt := make(map[domain.Weekday]int)
	for _, cb := range classified {
		dayCnt[cb.Day]++
	}

	row := Row{
		Label:  label,
		Blocks: make([]RowBlock, 0, len(classified)),
	}
	for _, cb := range classified {
		cnt := dayCnt[cb.Day]
		if cnt > 1 {
			row.Conflict = true
		}
		row.Blocks = append(row.Blocks, RowBlock{
			Text:      cb.Text,
			Day:       cb.Day,
			StartTime: cb.StartTime,
			EndTime:   cb.EndTime,
			Count:     cnt,
		})
	}

	return row
}
