// internal/infra/telegram/client.go
package telegram

import (
	"gopkg.in/telebot.v3"
)

const resendCallbackPrefix = "send_"

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendReminder posts text to chatID, attaching a "Resend email" button when
// birthdayID is set.
func (tba *TelebotAdapter) SendReminder(chatID int64, text string, birthdayID string) error {
	options := &telebot.SendOptions{}
	if birthdayID != "" {
		options.ReplyMarkup = resendMarkup(birthdayID)
	}

	recipient := &telebot.User{ID: chatID} // Admin reminders go to a direct user chat
	_, err := tba.bot.Send(recipient, text, options)
	return err
}

func resendMarkup(birthdayID string) *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{{
			{Text: "📧 Resend email", Data: resendCallbackPrefix + birthdayID},
		}},
	}
}
