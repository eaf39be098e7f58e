package transport

import (
	"context"

	"github.com/likhanovw/redTripwireBot/internal/models"
)

// Button is one inline-keyboard button. Payload is delivered back verbatim in
// a ButtonPress when the user presses it.
type Button struct {
	Label   string
	Payload string
}

// Row builds a single-button keyboard row.
func Row(label, payload string) []Button {
	return []Button{{Label: label, Payload: payload}}
}

// Sender is the outbound side of the chat transport. The conversation core
// depends on this interface only; the Telegram implementation lives in
// transport/telegram.
type Sender interface {
	// SendText sends a new message with an optional inline keyboard.
	SendText(ctx context.Context, chatID int64, text string, buttons [][]Button) error

	// EditText replaces the text and keyboard of an existing message.
	EditText(ctx context.Context, chatID int64, messageID int, text string, buttons [][]Button) error

	// SendDocument sends a file from the local filesystem as a new message.
	SendDocument(ctx context.Context, chatID int64, path, filename, caption string, buttons [][]Button) error

	// RequestContactKeyboard shows a one-time reply keyboard with a single
	// share-contact button.
	RequestContactKeyboard(ctx context.Context, chatID int64, text, buttonLabel string) error

	// AnswerCallback acknowledges a button press so the client stops showing
	// a progress indicator.
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Handler consumes inbound events. The conversation core implements this;
// listeners (the Telegram long-poll loop, test drivers) feed it.
type Handler interface {
	HandleCommand(ctx context.Context, ev models.Command)
	HandleButton(ctx context.Context, ev models.ButtonPress)
	HandleText(ctx context.Context, ev models.TextMessage)
	HandleContact(ctx context.Context, ev models.ContactShared)
}
