package domain

import "fmt"

type Weekday int32

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayLabels = [...]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// Weekdays 按照周一到周日的顺序返回所有的星期
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int32(d))
	}
	return weekdayLabels[d]
}

// ParseWeekday 同时接受英文全称和三个字母的缩写（如 Mon）
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Weekdays() {
		label := weekdayLabels[d]
		if s == label || s == label[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("无效的星期 %q", s)
}
