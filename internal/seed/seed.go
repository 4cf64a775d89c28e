package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/iskedyul/backend/internal/domain"
	"github.com/iskedyul/backend/internal/repository"
	"github.com/iskedyul/backend/internal/utils"
)

var Headers = []string{"title", "day", "start", "end", "text"}

// 与数据库中 title 和 text 列的长度限制一致
const maxFieldLength = 50

// ImportResult 记录一次导入新建的课表和事件数量
type ImportResult struct {
	Timetables []*domain.Timetable
	Blocks     int
}

type record struct {
	title string
	block *domain.Block
}

// ImportCSV 读取 title,day,start,end,text 格式的 CSV，每个不同的 title 新建一个课表。
// 整个文件先全部校验，再在同一个事务中写入，任何一行失败都不会留下数据
func ImportCSV(r *repository.Repository, in io.Reader) (*ImportResult, error) {
	records, err := readRecords(in)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Timetables: make([]*domain.Timetable, 0),
	}
	timetables := make(map[string]*domain.Timetable)

	for _, rec := range records {
		tt, ok := timetables[rec.title]
		if !ok {
			tt = &domain.Timetable{
				Title:  rec.title,
				Blocks: make([]*domain.Block, 0),
			}
			timetables[rec.title] = tt
			result.Timetables = append(result.Timetables, tt)
		}
		tt.Blocks = append(tt.Blocks, rec.block)
		result.Blocks++
	}

	if err := r.ImportTimetables(result.Timetables); err != nil {
		return nil, fmt.Errorf("无法写入课表: %w", err)
	}

	for _, tt := range result.Timetables {
		slog.Info("插入课表成功", slog.Int64("id", tt.ID), slog.String("title", tt.Title), slog.Int("blocks", len(tt.Blocks)))
	}

	return result, nil
}

func readRecords(in io.Reader) ([]record, error) {
	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("文件为空")
		}
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}
	if !slices.Equal(headers, Headers) {
		return nil, fmt.Errorf("表头必须为 %s", strings.Join(Headers, ","))
	}

	records := make([]record, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("第 %d 行: 读取失败: %w", line, err)
		}

		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRecord(row []string) (record, error) {
	title := strings.TrimSpace(row[0])
	if title == "" {
		return record{}, errors.New("课表标题不能为空")
	}
	if utf8.RuneCountInString(title) > maxFieldLength {
		return record{}, fmt.Errorf("课表标题不能超过 %d 个字符", maxFieldLength)
	}

	day, err := parseDay(strings.TrimSpace(row[1]))
	if err != nil {
		return record{}, err
	}

	startTime, endTime, err := utils.ParseBlockTimes(strings.TrimSpace(row[2]), strings.TrimSpace(row[3]))
	if err != nil {
		return record{}, err
	}

	text := strings.TrimSpace(row[4])
	if text == "" {
		return record{}, errors.New("事件内容不能为空")
	}
	if utf8.RuneCountInString(text) > maxFieldLength {
		return record{}, fmt.Errorf("事件内容不能超过 %d 个字符", maxFieldLength)
	}

	block := &domain.Block{
		Text:      text,
		Day:       day,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := utils.ValidateBlockTime(block); err != nil {
		return record{}, err
	}

	return record{title: title, block: block}, nil
}

// parseDay 接受 1~7 或星期的英文名称
func parseDay(s string) (domain.Weekday, error) {
	if n, err := strconv.Atoi(s); err == nil {
		block := &domain.Block{Day: domain.Weekday(n)}
		if err := utils.ValidateBlockDay(block); err != nil {
			return 0, err
		}
		return block.Day, nil
	}
	return domain.ParseWeekday(s)
}
