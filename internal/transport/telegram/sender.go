package telegram

import (
	"context"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/likhanovw/redTripwireBot/internal/transport"
)

// Sender implements transport.Sender over the Telegram Bot API.
type Sender struct {
	api *tgbotapi.BotAPI
	log zerolog.Logger
}

// NewSender wraps an authorized Bot API client.
func NewSender(api *tgbotapi.BotAPI, log zerolog.Logger) *Sender {
	return &Sender{
		api: api,
		log: log.With().Str("component", "telegram").Logger(),
	}
}

// SendText sends a new message with an optional inline keyboard.
func (s *Sender) SendText(ctx context.Context, chatID int64, text string, buttons [][]transport.Button) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if kb, ok := inlineKeyboard(buttons); ok {
		msg.ReplyMarkup = kb
	}
	_, err := s.api.Send(msg)
	return err
}

// EditText replaces the text and keyboard of an existing message.
func (s *Sender) EditText(ctx context.Context, chatID int64, messageID int, text string, buttons [][]transport.Button) error {
	if kb, ok := inlineKeyboard(buttons); ok {
		_, err := s.api.Send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb))
		return err
	}
	_, err := s.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

// SendDocument uploads a local file as a document message.
func (s *Sender) SendDocument(ctx context.Context, chatID int64, path, filename, caption string, buttons [][]transport.Button) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileReader{Name: filename, Reader: f})
	doc.Caption = caption
	if kb, ok := inlineKeyboard(buttons); ok {
		doc.ReplyMarkup = kb
	}
	_, err = s.api.Send(doc)
	return err
}

// RequestContactKeyboard shows a one-time reply keyboard with a single
// share-contact button.
func (s *Sender) RequestContactKeyboard(ctx context.Context, chatID int64, text, buttonLabel string) error {
	kb := tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(buttonLabel)),
	)
	kb.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	_, err := s.api.Send(msg)
	return err
}

// AnswerCallback acknowledges a button press.
func (s *Sender) AnswerCallback(ctx context.Context, callbackID string) error {
	_, err := s.api.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

func inlineKeyboard(buttons [][]transport.Button) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(buttons) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Payload))
		}
		rows = append(rows, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}
