// Package chat answers shop questions with canned replies built from the weekly schedule.
package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/hafljin/inquiry-automation/internal/models"
	"github.com/hafljin/inquiry-automation/pkg/utils"
)

// Topic names
const (
	TopicHours       = "hours"
	TopicHoliday     = "holiday"
	TopicToday       = "today"
	TopicTomorrow    = "tomorrow"
	TopicReservation = "reservation"
	TopicMenu        = "menu"
	TopicLocation    = "location"
	TopicGreeting    = "greeting"
	TopicFallback    = "fallback"
)

type topic struct {
	name     string
	keywords []string
	reply    func(r *Responder, now time.Time) string
}

// topics are tested in priority order against the lower-cased message
var topics = []topic{
	{
		name:     TopicHours,
		keywords: []string{"営業時間", "何時から", "何時まで", "開店", "閉店", "hours"},
		reply:    (*Responder).hoursReply,
	},
	{
		name:     TopicHoliday,
		keywords: []string{"定休日", "休み", "休業", "holiday"},
		reply:    (*Responder).holidayReply,
	},
	{
		name:     TopicToday,
		keywords: []string{"今日", "本日", "today"},
		reply: func(r *Responder, now time.Time) string {
			return r.dayReply("本日", now)
		},
	},
	{
		name:     TopicTomorrow,
		keywords: []string{"明日", "あした", "tomorrow"},
		reply: func(r *Responder, now time.Time) string {
			return r.dayReply("明日", now.AddDate(0, 0, 1))
		},
	},
	{
		name:     TopicReservation,
		keywords: []string{"予約", "reservation", "booking"},
		reply: func(*Responder, time.Time) string {
			return "ご予約はお電話またはLINEにて承っております。ご希望の日時と人数をお知らせください。当日のご予約は空き状況によりお受けできない場合がございます。"
		},
	},
	{
		name:     TopicMenu,
		keywords: []string{"メニュー", "料金", "価格", "値段", "menu", "price"},
		reply: func(*Responder, time.Time) string {
			return "メニューと料金はホームページに掲載しております。季節限定のメニューもございますので、詳しくはお気軽にお問い合わせください。"
		},
	},
	{
		name:     TopicLocation,
		keywords: []string{"場所", "住所", "アクセス", "どこ", "駐車場", "location"},
		reply: func(*Responder, time.Time) string {
			return "店舗は駅から徒歩5分の場所にございます。詳しい地図はホームページのアクセスページをご覧ください。駐車場はございませんので、近隣のコインパーキングをご利用ください。"
		},
	},
	{
		name:     TopicGreeting,
		keywords: []string{"こんにちは", "こんばんは", "おはよう", "はじめまして", "hello"},
		reply: func(*Responder, time.Time) string {
			return "こんにちは！ご質問があればお気軽にどうぞ。営業時間、定休日、予約、メニュー、アクセスについてお答えできます。"
		},
	},
}

const fallbackReply = "申し訳ございません、その内容にはお答えできません。営業時間、定休日、本日・明日の営業、予約、メニュー、アクセスについてお尋ねください。"

// Responder produces canned chat replies
type Responder struct {
	schedule []models.BusinessHours
	now      func() time.Time
}

// NewResponder creates a responder over the default schedule and wall clock
func NewResponder() *Responder {
	return NewResponderWithClock(DefaultSchedule, time.Now)
}

// NewResponderWithClock creates a responder with a custom schedule and clock
func NewResponderWithClock(schedule []models.BusinessHours, now func() time.Time) *Responder {
	return &Responder{schedule: schedule, now: now}
}

// Respond returns the reply for a user message
func (r *Responder) Respond(message string) models.BotReply {
	now := r.now()
	t := match(message)

	text := fallbackReply
	if t != nil {
		text = t.reply(r, now)
	}

	return models.BotReply{Message: text, Timestamp: now}
}

// Topic returns the name of the topic a message maps to
func (r *Responder) Topic(message string) string {
	if t := match(message); t != nil {
		return t.name
	}
	return TopicFallback
}

// Now returns the responder clock reading
func (r *Responder) Now() time.Time {
	return r.now()
}

// Schedule returns the weekly schedule
func (r *Responder) Schedule() []models.BusinessHours {
	return append([]models.BusinessHours(nil), r.schedule...)
}

func match(message string) *topic {
	lower := strings.ToLower(message)
	for i := range topics {
		if utils.ContainsAny(lower, topics[i].keywords) {
			return &topics[i]
		}
	}
	return nil
}

func (r *Responder) hoursReply(time.Time) string {
	var sb strings.Builder
	sb.WriteString("営業時間は以下の通りです。\n")
	sb.WriteString(FormatSchedule(r.schedule))

	if days := HolidayDays(r.schedule); len(days) > 0 {
		sb.WriteString("\n※")
		sb.WriteString(strings.Join(days, "・"))
		sb.WriteString("は定休日です。")
	}
	return sb.String()
}

func (r *Responder) holidayReply(now time.Time) string {
	days := HolidayDays(r.schedule)
	if len(days) == 0 {
		return "定休日はございません。毎日営業しております。"
	}
	return fmt.Sprintf("定休日は毎週%sです。祝日は通常通り営業しております。", strings.Join(days, "・"))
}

// dayReply reports the hours of the weekday of at; unknown days fall back to the full schedule
func (r *Responder) dayReply(label string, at time.Time) string {
	day := WeekdayName(at)
	h, ok := lookup(r.schedule, day)
	if !ok {
		return r.hoursReply(at)
	}
	if h.IsHoliday {
		return fmt.Sprintf("%s（%s）は定休日です。", label, day)
	}
	return fmt.Sprintf("%s（%s）の営業時間は%s - %sです。", label, day, h.Open, h.Close)
}
