package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/hafljin/inquiry-automation/internal/models"
)

// 2026-10-14 is a Wednesday
var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestResponder() *Responder {
	return NewResponderWithClock(DefaultSchedule, func() time.Time { return fixedNow })
}

func TestFormatSchedule(t *testing.T) {
	got := FormatSchedule(DefaultSchedule)
	lines := strings.Split(got, "\n")

	if len(lines) != 7 {
		t.Fatalf("Expected 7 lines, got %d", len(lines))
	}
	if lines[0] != "月曜日: 10:00 - 19:00" {
		t.Errorf("Expected Monday line, got %s", lines[0])
	}
	if lines[2] != "水曜日: 定休日" {
		t.Errorf("Expected Wednesday holiday line, got %s", lines[2])
	}
}

func TestResponder_Topics(t *testing.T) {
	r := newTestResponder()

	tests := []struct {
		name          string
		message       string
		expectedTopic string
	}{
		{"Hours", "営業時間を教えて", TopicHours},
		{"Hours wins over today", "今日の営業時間は？", TopicHours},
		{"Holiday", "お休みはいつですか", TopicHoliday},
		{"Today", "今日はやっていますか", TopicToday},
		{"Tomorrow", "明日は開いていますか", TopicTomorrow},
		{"Reservation", "予約したいです", TopicReservation},
		{"Menu", "メニューを見たい", TopicMenu},
		{"Location", "お店はどこですか", TopicLocation},
		{"Greeting", "こんにちは", TopicGreeting},
		{"English is lower-cased", "What are your HOURS?", TopicHours},
		{"Fallback", "ありがとう", TopicFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Topic(tt.message); got != tt.expectedTopic {
				t.Errorf("Expected topic %s, got %s", tt.expectedTopic, got)
			}
		})
	}
}

func TestResponder_HoursReply(t *testing.T) {
	reply := newTestResponder().Respond("すみません、営業時間を教えてください")

	if !strings.Contains(reply.Message, FormatSchedule(DefaultSchedule)) {
		t.Errorf("Expected full schedule in reply, got %s", reply.Message)
	}
	if !strings.Contains(reply.Message, "水曜日は定休日です。") {
		t.Errorf("Expected holiday note, got %s", reply.Message)
	}
	if !reply.Timestamp.Equal(fixedNow) {
		t.Errorf("Expected timestamp %v, got %v", fixedNow, reply.Timestamp)
	}
}

func TestResponder_TodayAndTomorrow(t *testing.T) {
	r := newTestResponder()

	today := r.Respond("今日はやっていますか").Message
	if today != "本日（水曜日）は定休日です。" {
		t.Errorf("Expected holiday today, got %s", today)
	}

	tomorrow := r.Respond("明日は開いていますか").Message
	if tomorrow != "明日（木曜日）の営業時間は10:00 - 19:00です。" {
		t.Errorf("Expected Thursday hours, got %s", tomorrow)
	}
}

func TestResponder_MissingDayFallsBackToHours(t *testing.T) {
	schedule := []models.BusinessHours{{DayOfWeek: "月曜日", Open: "09:00", Close: "17:00"}}
	r := NewResponderWithClock(schedule, func() time.Time { return fixedNow })

	got := r.Respond("今日はやっていますか").Message
	if !strings.HasPrefix(got, "営業時間は以下の通りです。") {
		t.Errorf("Expected hours fallback, got %s", got)
	}
}

func TestResponder_Fallback(t *testing.T) {
	got := newTestResponder().Respond("ありがとう").Message
	if got != fallbackReply {
		t.Errorf("Expected fallback reply, got %s", got)
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(fixedNow); got != "水曜日" {
		t.Errorf("Expected 水曜日, got %s", got)
	}
}
