package models

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who wrote a chat message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one entry of the on-page conversation log. It is never persisted.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChatMessage creates a message with a fresh id
func NewChatMessage(sender Sender, text string, at time.Time) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: at,
	}
}

// BotReply is what the chat responder returns for one user message
type BotReply struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// BusinessHours is one weekday of the static shop schedule. Open and Close are "HH:MM".
type BusinessHours struct {
	DayOfWeek string `json:"dayOfWeek"`
	Open      string `json:"open"`
	Close     string `json:"close"`
	IsHoliday bool   `json:"isHoliday"`
}
