// Package telegram pushes complaint activity to an administrators' chat.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
)

// Notifier sends one message per complaint lifecycle change. Send failures
// are logged and swallowed; notifications must never fail an operation.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *logging.Logger
}

// NewNotifier authorizes the bot with token.
func NewNotifier(token string, chatID int64, log *logging.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	log.Info("telegram notifier ready", "bot", bot.Self.UserName)
	return &Notifier{bot: bot, chatID: chatID, log: log}, nil
}

// ComplaintCreated announces a new submission.
func (n *Notifier) ComplaintCreated(c models.Complaint) {
	n.send(fmt.Sprintf(
		"New complaint #%d\n%s [%s]\nFrom: %s\n\n%s",
		c.ID, c.Title, c.Category, reporterName(c), truncate(c.Description, 200),
	))
}

// ComplaintResolved announces a resolution.
func (n *Notifier) ComplaintResolved(c models.Complaint) {
	response := ""
	if c.AdminResponse != nil {
		response = truncate(*c.AdminResponse, 200)
	}
	n.send(fmt.Sprintf(
		"Complaint #%d resolved\n%s [%s]\n\nResponse: %s",
		c.ID, c.Title, c.Category, response,
	))
}

func (n *Notifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.log.Error("telegram send", "error", err)
	}
}

func reporterName(c models.Complaint) string {
	if c.UserName != nil {
		return *c.UserName
	}
	return "Anonymous"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
