// Package notify delivers partner notifications about protected lock
// activity.
package notify

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"timeout/internal/core"
)

// TelegramNotifier sends partner notifications through a Telegram bot.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token and
// partner chat.
func NewTelegramNotifier(token string, chatID int64, logger *slog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram notifier connected", "bot_username", bot.Self.UserName)

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

// AuthorizationRequested tells the partner that a protected change is
// waiting for their code.
func (n *TelegramNotifier) AuthorizationRequested(userID string, action core.PendingAuthorization) {
	var text string
	switch action {
	case core.PendingDisablingSelfLock:
		text = "🔓 Your partner wants to turn off their self-lock. They need your code to continue."
	case core.PendingDisablingPartnerLock:
		text = "🔓 Your partner wants to remove the partner lock. They need your code to continue."
	default:
		return
	}

	n.send(userID, text)
}

// LockChanged tells the partner about a completed lock change.
func (n *TelegramNotifier) LockChanged(userID string, selfLock, partnerLock bool) {
	var text string
	switch {
	case partnerLock:
		text = "🔒 Partner lock is on."
	case selfLock:
		text = "🔒 Self-lock is on."
	default:
		text = "🔓 All locks are off."
	}

	n.send(userID, text)
}

func (n *TelegramNotifier) send(userID, text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("Failed to send telegram notification",
			"user_id", userID,
			"error", err,
		)
	}
}

var _ core.Notifier = (*TelegramNotifier)(nil)
