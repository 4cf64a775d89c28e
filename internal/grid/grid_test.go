package grid

import (
	"testing"
	"time"

	"github.com/iskedyul/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) domain.TimeOfDay {
	return domain.NewTimeOfDay(hour, minute, 0)
}

func block(text string, day domain.Weekday, start, end domain.TimeOfDay) *domain.Block {
	return &domain.Block{Text: text, Day: day, StartTime: start, EndTime: end}
}

func findRow(t *testing.T, rows []Row, label string) Row {
	t.Helper()
	for _, row := range rows {
		if row.Label == label {
			return row
		}
	}
	t.Fatalf("row %q not found", label)
	return Row{}
}

func TestTimeRanges(t *testing.T) {
	ranges := TimeRanges()

	require.Len(t, ranges, 41)
	assert.Equal(t, at(0, 0), ranges[0].Lower)
	assert.Equal(t, "00:00:00-00:30:00", ranges[0].Label)
	assert.Equal(t, at(20, 0), ranges[40].Lower)
	assert.Equal(t, at(20, 30), ranges[40].Upper)
	assert.Equal(t, "20:00:00-20:30:00", ranges[40].Label)

	for i := 1; i < len(ranges); i++ {
		assert.Equal(t, ranges[i-1].Upper, ranges[i].Lower, "ranges %d and %d are not contiguous", i-1, i)
		assert.Equal(t, 30*60, int(ranges[i].Upper-ranges[i].Lower))
	}
}

func TestGenerateTimeRangesNonPositiveStep(t *testing.T) {
	assert.Empty(t, generateTimeRanges(at(0, 0), at(1, 0), 0))
	assert.Empty(t, generateTimeRanges(at(0, 0), at(1, 0), -time.Minute))
}

func TestClassify(t *testing.T) {
	ranges := TimeRanges()

	tests := []struct {
		name  string
		start domain.TimeOfDay
		want  string
	}{
		{"midnight", at(0, 0), "00:00:00-00:30:00"},
		{"quarter past seven", at(7, 15), "07:00:00-07:30:00"},
		{"lower bound inclusive", at(7, 30), "07:30:00-08:00:00"},
		{"just before upper bound", domain.NewTimeOfDay(7, 59, 59), "07:30:00-08:00:00"},
		{"end of day bound", at(20, 0), "20:00:00-20:30:00"},
		{"last second of final range", domain.NewTimeOfDay(20, 29, 59), "20:00:00-20:30:00"},
		{"after final range", at(20, 30), OtherLabel},
		{"late evening", at(23, 0), OtherLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(ranges, tt.start))
		})
	}
}

func TestClassifyNoRanges(t *testing.T) {
	assert.Equal(t, OtherLabel, Classify(nil, at(9, 0)))
}

func TestByTimeRangeOrdering(t *testing.T) {
	g := New([]*domain.Block{
		block("c", domain.Wednesday, at(10, 0), at(11, 0)),
		block("b", domain.Friday, at(9, 0), at(10, 0)),
		block("a", domain.Monday, at(9, 0), at(10, 0)),
		block("late", domain.Monday, at(22, 0), at(23, 0)),
	})

	classified := g.ByTimeRange()
	require.Len(t, classified, 4)

	assert.Equal(t, "a", classified[0].Text)
	assert.Equal(t, "b", classified[1].Text)
	assert.Equal(t, "c", classified[2].Text)
	assert.Equal(t, "late", classified[3].Text)
	assert.Equal(t, OtherLabel, classified[3].TimeRange)

	nine := FilterByTimeRange(classified, "09:00:00-09:30:00")
	require.Len(t, nine, 2)
	assert.Equal(t, domain.Monday, nine[0].Day)
	assert.Equal(t, domain.Friday, nine[1].Day)
}

func TestRowsConflictCounts(t *testing.T) {
	g := New([]*domain.Block{
		block("math", domain.Monday, at(9, 0), at(10, 0)),
		block("physics", domain.Monday, at(9, 0), at(10, 30)),
		block("chemistry", domain.Tuesday, at(9, 0), at(10, 0)),
		block("lunch", domain.Monday, at(12, 0), at(13, 0)),
	})

	rows := g.Rows()
	require.Len(t, rows, 41)

	nine := findRow(t, rows, "09:00:00-09:30:00")
	require.Len(t, nine.Blocks, 3)
	assert.True(t, nine.Conflict)

	counts := map[string]int{}
	for _, b := range nine.Blocks {
		counts[b.Text] = b.Count
	}
	assert.Equal(t, map[string]int{"math": 2, "physics": 2, "chemistry": 1}, counts)

	noon := findRow(t, rows, "12:00:00-12:30:00")
	require.Len(t, noon.Blocks, 1)
	assert.Equal(t, 1, noon.Blocks[0].Count)
	assert.False(t, noon.Conflict)

	conflicts := Conflicts(rows)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "09:00:00-09:30:00", conflicts[0].Label)
}

func TestConflictsWithoutConflictingRows(t *testing.T) {
	g := New([]*domain.Block{
		block("a", domain.Monday, at(9, 0), at(10, 0)),
		block("b", domain.Tuesday, at(9, 0), at(10, 0)),
	})

	conflicts := Conflicts(g.Rows())
	assert.NotNil(t, conflicts)
	assert.Empty(t, conflicts)
}

func TestRowsCountIsPerRow(t *testing.T) {
	// 同一天但不同时间段的事件不算冲突
	g := New([]*domain.Block{
		block("a", domain.Monday, at(9, 0), at(10, 0)),
		block("b", domain.Monday, at(9, 30), at(10, 0)),
	})

	rows := g.Rows()
	assert.Equal(t, 1, findRow(t, rows, "09:00:00-09:30:00").Blocks[0].Count)
	assert.Equal(t, 1, findRow(t, rows, "09:30:00-10:00:00").Blocks[0].Count)
}

func TestRowsEmpty(t *testing.T) {
	rows := New(nil).Rows()

	require.Len(t, rows, 41)
	for i, row := range rows {
		assert.Equal(t, TimeRanges()[i].Label, row.Label)
		assert.Empty(t, row.Blocks)
		assert.False(t, row.Conflict)
	}
}

func TestRowsExcludeOther(t *testing.T) {
	rows := New([]*domain.Block{block("night", domain.Sunday, at(21, 0), at(22, 0))}).Rows()

	for _, row := range rows {
		assert.Empty(t, row.Blocks, row.Label)
	}
}

func TestNewDoesNotAliasInput(t *testing.T) {
	blocks := []*domain.Block{
		block("b", domain.Monday, at(10, 0), at(11, 0)),
		block("a", domain.Monday, at(9, 0), at(10, 0)),
		nil,
	}
	g := New(blocks)

	blocks[0].Text = "changed"
	require.Len(t, g.ByTimeRange(), 2)
	assert.Equal(t, "a", g.ByTimeRange()[0].Text)
	assert.Equal(t, "b", g.ByTimeRange()[1].Text)
}

func TestRowsIdempotent(t *testing.T) {
	blocks := []*domain.Block{
		block("a", domain.Thursday, at(8, 0), at(9, 0)),
		block("b", domain.Thursday, at(8, 15), at(9, 0)),
	}

	assert.Equal(t, New(blocks).Rows(), New(blocks).Rows())

	g := New(blocks)
	assert.Equal(t, g.Rows(), g.Rows())
}

func TestTimeRangesReturnsCopy(t *testing.T) {
	g := New(nil)
	ranges := g.TimeRanges()
	ranges[0].Label = "mutated"

	assert.Equal(t, "00:00:00-00:30:00", g.TimeRanges()[0].Label)
}
