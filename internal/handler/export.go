package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/iskedyul/backend/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) ExportTimetable(w http.ResponseWriter, r *http.Request) {
	tt := timetableFromContext(r)

	rows, err := h.timetableRows(r.Context(), tt)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 先写到内存中，出错时还能返回 JSON
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, tt.Title, rows); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"timetable-%d.xlsx\"", tt.ID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}
