package export

import (
	"bytes"
	"testing"

	"github.com/iskedyul/backend/internal/domain"
	"github.com/iskedyul/backend/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	nine := domain.NewTimeOfDay(9, 0, 0)
	ten := domain.NewTimeOfDay(10, 0, 0)

	rows := grid.New([]*domain.Block{
		{Text: "Math", Day: domain.Monday, StartTime: nine, EndTime: ten},
		{Text: "Physics", Day: domain.Monday, StartTime: nine, EndTime: ten},
		{Text: "Art", Day: domain.Wednesday, StartTime: nine, EndTime: ten},
	}).Rows()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Week A", rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	value := func(cell string) string {
		v, err := f.GetCellValue(SheetName, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Week A", value("A1"))
	assert.Equal(t, "Time", value("A2"))
	assert.Equal(t, "Monday", value("B2"))
	assert.Equal(t, "Sunday", value("H2"))

	// 09:00 是第 19 个时间段，对应第 21 行
	assert.Equal(t, "09:00:00-09:30:00", value("A21"))
	assert.Equal(t, "Math (09:00:00-10:00:00)\nPhysics (09:00:00-10:00:00)", value("B21"))
	assert.Equal(t, "", value("C21"))
	assert.Equal(t, "Art (09:00:00-10:00:00)", value("D21"))

	assert.Equal(t, "00:00:00-00:30:00", value("A3"))
	assert.Equal(t, "20:00:00-20:30:00", value("A43"))

	conflict, err := f.GetCellStyle(SheetName, "B21")
	require.NoError(t, err)
	plain, err := f.GetCellStyle(SheetName, "D21")
	require.NoError(t, err)
	assert.NotEqual(t, conflict, plain)
}
