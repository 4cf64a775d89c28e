package grid

import "github.com/iskedyul/backend/internal/domain"

// TimeRange: 半开区间 [Lower, Upper)
type TimeRange struct {
	Lower domain.TimeOfDay `json:"lower"`
	Upper domain.TimeOfDay `json:"upper"`
	Label string           `json:"label"`
}

func (tr TimeRange) Contains(t domain.TimeOfDay) bool {
	return tr.Lower <= t && t < tr.Upper
}

// ClassifiedBlock: 已经归入某个时间段的事件
type ClassifiedBlock struct {
	TimeRange string           `json:"timeRange"`
	Text      string           `json:"text"`
	Day       domain.Weekday   `json:"day"`
	StartTime domain.TimeOfDay `json:"startTime"`
	EndTime   domain.TimeOfDay `json:"endTime"`
}

// RowBlock: Count 为同一行中与该事件同一天的事件数量（包括它自己）
type RowBlock struct {
	Text      string           `json:"text"`
	Day       domain.Weekday   `json:"day"`
	StartTime domain.TimeOfDay `json:"startTime"`
	EndTime   domain.TimeOfDay `json:"endTime"`
	Count     int              `json:"count"`
}

type Row struct {
	Label    string     `json:"label"`
	Conflict bool       `json:"conflict"`
	Blocks   []RowBlock `json:"blocks"`
}
