package telegram

// Client sends messages through a Telegram bot. It keeps the application layer
// independent of the bot library.
type Client interface {
	// SendReminder posts text to chatID. When birthdayID is non-empty the message
	// carries a button that re-sends the email reminder for that record.
	SendReminder(chatID int64, text string, birthdayID string) error
}
