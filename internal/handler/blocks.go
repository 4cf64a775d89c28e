package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/iskedyul/backend/internal/domain"
	"github.com/iskedyul/backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) GetTimetableBlocks(w http.ResponseWriter, r *http.Request) {
	tt := timetableFromContext(r)

	blocks, err := h.repository.GetBlocksByTimetableID(tt.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取事件列表成功", blocks)
}

func (h *Handler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	tt := timetableFromContext(r)

	var req struct {
		Text      string `json:"text" validate:"required,max=50"`
		Day       int32  `json:"day" validate:"required,gte=1,lte=7"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startTime, endTime, err := utils.ParseBlockTimes(req.StartTime, req.EndTime)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	block := &domain.Block{
		TimetableID: tt.ID,
		Text:        req.Text,
		Day:         domain.Weekday(req.Day),
		StartTime:   startTime,
		EndTime:     endTime,
	}

	if err := utils.ValidateBlockTime(block); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateBlock(block); err != nil {
		h.blockWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建事件成功", block)
}

func (h *Handler) GetBlock(w http.ResponseWriter, r *http.Request) {
	block := blockFromContext(r)

	h.successResponse(w, r, "获取事件成功", block)
}

func (h *Handler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	block := blockFromContext(r)

	var req struct {
		Text      *string `json:"text" validate:"omitempty,min=1,max=50"`
		Day       *int32  `json:"day" validate:"omitempty,gte=1,lte=7"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Text != nil {
		block.Text = *req.Text
	}
	if req.Day != nil {
		block.Day = domain.Weekday(*req.Day)
	}

	startTime, endTime := block.StartTime.String(), block.EndTime.String()
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	if req.EndTime != nil {
		endTime = *req.EndTime
	}

	var err error
	block.StartTime, block.EndTime, err = utils.ParseBlockTimes(startTime, endTime)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 检查修改后的时间是否合法
	if err := utils.ValidateBlockTime(block); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateBlock(block); err != nil {
		h.blockWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新事件成功", block)
}

func (h *Handler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	block := blockFromContext(r)

	if err := h.repository.DeleteBlock(block); err != nil {
		h.blockWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除事件成功", nil)
}

func (h *Handler) blockWriteError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		switch pgErr.ConstraintName {
		case "blocks_timetable_id_fkey":
			h.errorResponse(w, r, "课表不存在")
		case "blocks_day_check":
			h.errorResponse(w, r, "无效的星期")
		default:
			h.internalServerError(w, r, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		h.errorResponse(w, r, "请重试")
	default:
		h.internalServerError(w, r, err)
	}
}
