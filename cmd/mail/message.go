package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/iskedyul/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

var errUnsupportedMailType = errors.New("不支持的邮件类型")

// buildMail 根据消息队列中的邮件信息构建待发送的邮件
func buildMail(from, templateDir string, body []byte) (*mail.Msg, error) {
	var mailMessage struct {
		Type string          `json:"type"`
		To   string          `json:"to"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &mailMessage); err != nil {
		return nil, fmt.Errorf("邮件信息反序列化失败: %w", err)
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := m.To(mailMessage.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}

	switch mailMessage.Type {
	case domain.MailTypeShareTimetable:
		data := domain.ShareTimetableMailData{}
		if err := json.Unmarshal(mailMessage.Data, &data); err != nil {
			return nil, fmt.Errorf("邮件数据反序列化失败: %w", err)
		}

		tmpl, err := template.ParseFiles(filepath.Join(templateDir, "share_timetable_email.html"))
		if err != nil {
			return nil, fmt.Errorf("无法解析邮件模板: %w", err)
		}
		if err := m.SetBodyHTMLTemplate(tmpl, data); err != nil {
			return nil, fmt.Errorf("无法设置邮件正文: %w", err)
		}
		m.Subject(fmt.Sprintf("课表分享 - %s", data.Title))
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedMailType, mailMessage.Type)
	}

	return m, nil
}
