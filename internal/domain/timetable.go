package domain

import (
	"strings"
	"time"
)

// TimetableEntry is one class slot joined with its course.
type TimetableEntry struct {
	ID         int64  `json:"id"`
	StudentID  int64  `json:"student_id"`
	CourseID   int64  `json:"course_id"`
	DayOfWeek  string `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Room       string `json:"room,omitempty"`
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	Lecturer   string `json:"lecturer,omitempty"`
	Colour     string `json:"colour,omitempty"`
}

// DayOrToday returns day trimmed, or the weekday of now when day is blank.
func DayOrToday(day string, now time.Time) string {
	if d := strings.TrimSpace(day); d != "" {
		return d
	}
	return now.Weekday().String()
}
