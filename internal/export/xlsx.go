package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iskedyul/backend/internal/domain"
	"github.com/iskedyul/backend/internal/grid"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Timetable"

// 第一行为标题，第二行为表头，从第三行开始每个时间段一行
const (
	titleRow     = 1
	headerRow    = 2
	firstDataRow = 3
)

// WriteXLSX 将网格行写成一个工作表：第一列为时间段，之后每一列对应一天，
// 同一天同一时间段的多个事件写在同一个单元格中，并用颜色标出冲突
func WriteXLSX(w io.Writer, title string, rows []grid.Row) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	conflictStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	titleCell, _ := excelize.CoordinatesToCellName(1, titleRow)
	if err := f.SetCellValue(SheetName, titleCell, title); err != nil {
		return err
	}

	// 表头
	header := []any{"Time"}
	for _, day := range domain.Weekdays() {
		header = append(header, day.String())
	}
	headerCell, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetSheetRow(SheetName, headerCell, &header); err != nil {
		return err
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(header), headerRow)
	if err := f.SetCellStyle(SheetName, headerCell, lastHeaderCell, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		r := firstDataRow + i

		labelCell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetCellValue(SheetName, labelCell, row.Label); err != nil {
			return err
		}

		entries := make(map[domain.Weekday][]string)
		counts := make(map[domain.Weekday]int)
		for _, b := range row.Blocks {
			entries[b.Day] = append(entries[b.Day], fmt.Sprintf("%s (%s-%s)", b.Text, b.StartTime, b.EndTime))
			counts[b.Day] = b.Count
		}

		for col, day := range domain.Weekdays() {
			cell, _ := excelize.CoordinatesToCellName(col+2, r)
			if err := f.SetCellValue(SheetName, cell, strings.Join(entries[day], "\n")); err != nil {
				return err
			}

			style := cellStyle
			if counts[day] > 1 {
				style = conflictStyle
			}
			if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "H", 24); err != nil {
		return err
	}

	return f.Write(w)
}
