package grid

import "github.com/iskedyul/backend/internal/domain"

// Grid 将一个课表中的事件整理成按时间段划分的行。Grid 创建后不会被修改，可以并发使用。
type Grid struct {
	ranges []TimeRange
	blocks []*domain.Block // 已排序
}

func New(blocks []*domain.Block) *Grid {
	g := &Grid{
		ranges: TimeRanges(),
		blocks: make([]*domain.Block, 0, len(blocks)),
	}

	for _, block := range blocks {
		if block == nil {
			continue
		}
		b := *block
		g.blocks = append(g.blocks, &b)
	}
	sortBlocks(g.blocks)

	return g
}

func (g *Grid) TimeRanges() []TimeRange {
	ranges := make([]TimeRange, len(g.ranges))
	copy(ranges, g.ranges)
	return ranges
}

// ByTimeRange 返回每个事件所属的时间段
func (g *Grid) ByTimeRange() []ClassifiedBlock {
	classified := make([]ClassifiedBlock, 0, len(g.blocks))
	for _, block := range g.blocks {
		classified = append(classified, ClassifiedBlock{
			TimeRange: Classify(g.ranges, block.StartTime),
			Text:      block.Text,
			Day:       block.Day,
			StartTime: block.StartTime,
			EndTime:   block.EndTime,
		})
	}
	return classified
}

// Rows 按时间段的生成顺序返回每一行，没有事件的时间段也会返回一个空行。
// 归入 OtherLabel 的事件不会出现在任何一行中。
func (g *Grid) Rows() []Row {
	classified := g.ByTimeRange()

	byLabel := make(map[string][]ClassifiedBlock)
	for _, cb := range classified {
		byLabel[cb.TimeRange] = append(byLabel[cb.TimeRange], cb)
	}

	rows := make([]Row, 0, len(g.ranges))
	for _, tr := range g.ranges {
		rows = append(rows, annotate(tr.Label, byLabel[tr.Label]))
	}

	return rows
}

// Conflicts 从 rows 中筛选出存在冲突的行，rows 可以来自缓存
func Conflicts(rows []Row) []Row {
	conflicts := make([]Row, 0)
	for _, row := range rows {
		if row.Conflict {
			conflicts = append(conflicts, row)
		}
	}
	return conflicts
}
