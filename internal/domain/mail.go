package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeShareTimetable = "share_timetable"

// TimetableRowDigest 是邮件中渲染的一行，只包含有事件的时间段
type TimetableRowDigest struct {
	Label    string   `json:"label"`
	Conflict bool     `json:"conflict"`
	Entries  []string `json:"entries"`
}

type ShareTimetableMailData struct {
	Title   string               `json:"title"`
	Message string               `json:"message"`
	Rows    []TimetableRowDigest `json:"rows"`
}
