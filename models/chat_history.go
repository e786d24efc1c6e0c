package models

import "gorm.io/gorm"

// ChatHistory is an append-only record of one AI chat exchange.
// MessageType is "text" or "media".
type ChatHistory struct {
	gorm.Model
	Email       string `gorm:"index;not null"`
	UserMessage string
	BotResponse string
	MessageType string
}
