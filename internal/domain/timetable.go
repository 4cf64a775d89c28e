package domain

import "time"

type Block struct {
	ID          int64     `json:"id"`
	TimetableID int64     `json:"timetableID"`
	Text        string    `json:"text"`
	StartTime   TimeOfDay `json:"startTime"`
	EndTime     TimeOfDay `json:"endTime"`
	Day         Weekday   `json:"day"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

type Timetable struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Blocks    []*Block  `json:"blocks,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
