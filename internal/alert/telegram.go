package alert

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends operational alerts to a Telegram chat. A nil Notifier is
// valid and drops every alert, so callers never need to branch on whether
// alerting is configured.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Notifier{
		api:    api,
		chatID: chatID,
	}, nil
}

// LoginFailure alerts that the Facebook session could not be established.
// Login breakage needs a human: expired credentials or a checkpoint page.
func (n *Notifier) LoginFailure(err error) error {
	if n == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("🚨 Facebook login failed: %v", err))
	_, sendErr := n.api.Send(msg)
	return sendErr
}

// RunSummary reports how a scoring batch went.
func (n *Notifier) RunSummary(scored, failed int) error {
	if n == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("ℹ️ Scoring batch finished: %d scored, %d failed", scored, failed))
	_, err := n.api.Send(msg)
	return err
}
