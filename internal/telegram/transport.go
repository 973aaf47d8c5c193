package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Transport adapts the Bot API to what a countdown session needs. Kept
// separate from Router so the live registry does not depend on update
// handling.
type Transport struct {
	bot *tgbotapi.BotAPI
}

func NewTransport(bot *tgbotapi.BotAPI) *Transport {
	return &Transport{bot: bot}
}

// SendBound sends the message a session will keep editing, with the stop
// control attached, and returns its id.
func (t *Transport) SendBound(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = stopMenuKeyboard()
	sent, err := t.bot.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// Edit rewrites the bound message in place.
func (t *Transport) Edit(chatID int64, messageID int, text string) error {
	_, err := t.bot.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

// Notify sends a one-off plain message.
func (t *Transport) Notify(chatID int64, text string) error {
	_, err := t.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
