package notify

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram builds the Telegram notifier. A missing token or chat id is not
// an error: delivery degrades to log-only via Disabled.
func NewTelegram(token, chatID string) Notifier {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(chatID) == "" {
		log.Println("Telegram token or chat ID not set. Set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID in environment.")
		return Disabled{}
	}

	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil {
		log.Printf("invalid Telegram chat ID %q: %v", chatID, err)
		return Disabled{}
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("Telegram bot init failed: %v", err)
		return Disabled{}
	}

	return &Telegram{bot: bot, chatID: id}
}

func (t *Telegram) Send(text string) error {
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
