package handler

import (
	"net/http"

	"github.com/iskedyul/backend/internal/domain"
)

type ContextKey string

var (
	TimetableCtx ContextKey = "timetable"
	BlockCtx     ContextKey = "block"
)

func timetableFromContext(r *http.Request) *domain.Timetable {
	return r.Context().Value(TimetableCtx).(*domain.Timetable)
}

func blockFromContext(r *http.Request) *domain.Block {
	return r.Context().Value(BlockCtx).(*domain.Block)
}
