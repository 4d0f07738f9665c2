package notify

import (
	"fmt"
	"log"

	"complaintwall/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramAlerter posts new-complaint alerts to a fixed admin chat so the
// team hears about submissions without watching the dashboard.
type TelegramAlerter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramAlerter connects the bot, or returns nil when the token or
// chat ID is unset (alerts are then disabled silently).
func NewTelegramAlerter(token string, chatID int64) (*TelegramAlerter, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	bot.Debug = false
	log.Printf("notify: telegram alerts enabled as @%s", bot.Self.UserName)
	return &TelegramAlerter{bot: bot, chatID: chatID}, nil
}

// ComplaintSubmitted posts a one-line alert for a fresh submission.
func (t *TelegramAlerter) ComplaintSubmitted(c *models.Complaint) {
	if t == nil {
		return
	}
	text := fmt.Sprintf("New complaint %s\nCategory: %s\nPriority: %s", c.ComplaintNumber, c.Category, c.Priority)
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		log.Printf("notify: telegram alert failed for %s: %v", c.ComplaintNumber, err)
	}
}
