package chat

import (
	"strings"
	"time"

	"github.com/hafljin/inquiry-automation/internal/models"
)

// HolidayLabel is shown in place of hours on closed days
const HolidayLabel = "定休日"

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "月曜日",
	time.Tuesday:   "火曜日",
	time.Wednesday: "水曜日",
	time.Thursday:  "木曜日",
	time.Friday:    "金曜日",
	time.Saturday:  "土曜日",
	time.Sunday:    "日曜日",
}

// DefaultSchedule is the weekly shop schedule, Monday first
var DefaultSchedule = []models.BusinessHours{
	{DayOfWeek: "月曜日", Open: "10:00", Close: "19:00"},
	{DayOfWeek: "火曜日", Open: "10:00", Close: "19:00"},
	{DayOfWeek: "水曜日", IsHoliday: true},
	{DayOfWeek: "木曜日", Open: "10:00", Close: "19:00"},
	{DayOfWeek: "金曜日", Open: "10:00", Close: "20:00"},
	{DayOfWeek: "土曜日", Open: "10:00", Close: "18:00"},
	{DayOfWeek: "日曜日", Open: "10:00", Close: "17:00"},
}

// WeekdayName returns the Japanese name of the weekday of t
func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// FormatSchedule renders one line per day in table order
func FormatSchedule(schedule []models.BusinessHours) string {
	lines := make([]string, 0, len(schedule))
	for _, h := range schedule {
		if h.IsHoliday {
			lines = append(lines, h.DayOfWeek+": "+HolidayLabel)
			continue
		}
		lines = append(lines, h.DayOfWeek+": "+h.Open+" - "+h.Close)
	}
	return strings.Join(lines, "\n")
}

// HolidayDays lists the closed days in table order
func HolidayDays(schedule []models.BusinessHours) []string {
	var days []string
	for _, h := range schedule {
		if h.IsHoliday {
			days = append(days, h.DayOfWeek)
		}
	}
	return days
}

func lookup(schedule []models.BusinessHours, day string) (models.BusinessHours, bool) {
	for _, h := range schedule {
		if h.DayOfWeek == day {
			return h, true
		}
	}
	return models.BusinessHours{}, false
}
