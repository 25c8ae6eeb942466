package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups your app’s secrets in the OS keychain.
	KeyringService = "jobwatch"

	keyringAccount = "telegram-bot"
)

// BotToken resolves the Telegram bot token: environment first, then the OS
// keychain. Empty means delivery degrades to log-only; it is never an error.
func BotToken() string {
	if t := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")); t != "" {
		return t
	}
	if t, err := keyring.Get(KeyringService, keyringAccount); err == nil {
		return strings.TrimSpace(t)
	}
	return ""
}

func SetBotToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, token)
}

func DeleteBotToken() error {
	return keyring.Delete(KeyringService, keyringAccount)
}
