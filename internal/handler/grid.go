package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iskedyul/backend/internal/domain"
	"github.com/iskedyul/backend/internal/grid"
)

func (h *Handler) GetTimeRanges(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取时间段成功", grid.TimeRanges())
}

func (h *Handler) GetTimetableRows(w http.ResponseWriter, r *http.Request) {
	tt := timetableFromContext(r)

	rows, err := h.timetableRows(r.Context(), tt)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// conflict=true 时只返回存在冲突的行
	if r.URL.Query().Get("conflict") == "true" {
		rows = grid.Conflicts(rows)
	}

	h.successResponse(w, r, "获取课表网格成功", rows)
}

// GetTimetableClassification 返回每个事件所属的时间段，可以通过 timeRange 参数筛选
func (h *Handler) GetTimetableClassification(w http.ResponseWriter, r *http.Request) {
	tt := timetableFromContext(r)

	blocks, err := h.repository.GetBlocksByTimetableID(tt.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	classified := grid.New(blocks).ByTimeRange()
	if label := r.URL.Query().Get("timeRange"); label != "" {
		classified = grid.FilterByTimeRange(classified, label)
	}

	h.successResponse(w, r, "获取事件分组成功", classified)
}

// timetableRows 优先从缓存中读取网格，缓存出错时直接重新计算
func (h *Handler) timetableRows(ctx context.Context, tt *domain.Timetable) ([]grid.Row, error) {
	if h.gridCache != nil {
		rows, hit, err := h.gridCache.GetRows(ctx, tt.ID, tt.Version)
		if err != nil {
			slog.Warn("读取网格缓存失败", "timetable", tt.ID, "error", err)
		} else if hit {
			return rows, nil
		}
	}

	blocks, err := h.repository.GetBlocksByTimetableID(tt.ID)
	if err != nil {
		return nil, err
	}
	rows := grid.New(blocks).Rows()

	if h.gridCache != nil {
		if err := h.gridCache.SetRows(ctx, tt.ID, tt.Version, rows); err != nil {
			slog.Warn("写入网格缓存失败", "timetable", tt.ID, "error", err)
		}
	}

	return rows, nil
}
