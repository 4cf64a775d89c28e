package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/iskedyul/backend/internal/domain"
	"github.com/iskedyul/backend/internal/grid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ShareTimetable 将课表网格通过邮件发送给指定的邮箱，邮件由 mail worker 异步发送
func (h *Handler) ShareTimetable(w http.ResponseWriter, r *http.Request) {
	tt := timetableFromContext(r)

	var req struct {
		Email   string `json:"email" validate:"required,email"`
		Message string `json:"message" validate:"max=200"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if h.mailChannel == nil {
		h.errorResponse(w, r, "邮件服务不可用")
		return
	}

	rows, err := h.timetableRows(r.Context(), tt)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 准备邮件
	mailMessage := domain.MailMessage{
		Type: domain.MailTypeShareTimetable,
		To:   req.Email,
		Data: domain.ShareTimetableMailData{
			Title:   tt.Title,
			Message: req.Message,
			Rows:    digestRows(rows),
		},
	}

	// 序列化邮件
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 发送邮件到消息队列中
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   uuid.NewString(),
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "课表已通过邮件发送", nil)
}

// digestRows 只保留有事件的行，每个事件渲染成一行文字
func digestRows(rows []grid.Row) []domain.TimetableRowDigest {
	digests := make([]domain.TimetableRowDigest, 0)
	for _, row := range rows {
		if len(row.Blocks) == 0 {
			continue
		}

		digest := domain.TimetableRowDigest{
			Label:    row.Label,
			Conflict: row.Conflict,
			Entries:  make([]string, 0, len(row.Blocks)),
		}
		for _, b := range row.Blocks {
			entry := fmt.Sprintf("%s %s (%s-%s)", b.Day, b.Text, b.StartTime, b.EndTime)
			if b.Count > 1 {
				entry += " [冲突]"
			}
			digest.Entries = append(digest.Entries, entry)
		}
		digests = append(digests, digest)
	}
	return digests
}
