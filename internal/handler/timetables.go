package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/iskedyul/backend/internal/domain"
)

func (h *Handler) GetAllTimetables(w http.ResponseWriter, r *http.Request) {
	timetables, err := h.repository.GetAllTimetables()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有课表成功", timetables)
}

func (h *Handler) CreateTimetable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title" validate:"required,max=50"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	tt := &domain.Timetable{
		Title: req.Title,
	}

	if err := h.repository.CreateTimetable(tt); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建课表成功", tt)
}

// GetTimetable 返回课表及其所有事件
func (h *Handler) GetTimetable(w http.ResponseWriter, r *http.Request) {
	tt := timetableFromContext(r)

	blocks, err := h.repository.GetBlocksByTimetableID(tt.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	tt.Blocks = blocks

	h.successResponse(w, r, "获取课表成功", tt)
}

func (h *Handler) UpdateTimetable(w http.ResponseWriter, r *http.Request) {
	tt := timetableFromContext(r)

	var req struct {
		Title *string `json:"title" validate:"omitempty,min=1,max=50"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Title != nil {
		tt.Title = *req.Title
	}

	if err := h.repository.UpdateTimetable(tt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新课表成功", tt)
}

func (h *Handler) DeleteTimetable(w http.ResponseWriter, r *http.Request) {
	tt := timetableFromContext(r)

	if err := h.repository.DeleteTimetable(tt.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "课表不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除课表成功", nil)
}
