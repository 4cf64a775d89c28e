package utils

import (
	"math/rand"

	"github.com/iskedyul/backend/internal/domain"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
var digits = "0123456789"

var subjects = []string{
	"Math", "Physics", "Chemistry", "Biology", "History", "English",
	"Filipino", "PE", "Music", "Art", "Computer", "Lunch",
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

func GenerateRandomTimetable() *domain.Timetable {
	return &domain.Timetable{
		Title: "Timetable " + GenerateRandomID(3, 3),
	}
}

// GenerateRandomBlock 生成一个落在 07:00 到 19:30 之间的事件，时长为 30 分钟的整数倍
func GenerateRandomBlock(timetableID int64) *domain.Block {
	slot := rand.Intn(26) // 07:00 ~ 19:30
	startTime := domain.NewTimeOfDay(7+slot/2, (slot%2)*30, 0)

	length := rand.Intn(4) + 1
	endTime := domain.NewTimeOfDay(7+(slot+length)/2, ((slot+length)%2)*30, 0)

	weekdays := domain.Weekdays()

	return &domain.Block{
		TimetableID: timetableID,
		Text:        subjects[rand.Intn(len(subjects))],
		StartTime:   startTime,
		EndTime:     endTime,
		Day:         weekdays[rand.Intn(len(weekdays))],
	}
}
