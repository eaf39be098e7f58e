package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/likhanovw/redTripwireBot/internal/models"
	"github.com/likhanovw/redTripwireBot/internal/transport"
)

// Listener long-polls Telegram for updates and translates them into the
// core's inbound events. One user's failure never takes down the loop: each
// update is handled behind a recover.
type Listener struct {
	api     *tgbotapi.BotAPI
	handler transport.Handler
	timeout time.Duration
	log     zerolog.Logger
}

// NewListener creates a long-poll listener delivering events to handler.
func NewListener(api *tgbotapi.BotAPI, handler transport.Handler, timeout time.Duration, log zerolog.Logger) *Listener {
	return &Listener{
		api:     api,
		handler: handler,
		timeout: timeout,
		log:     log.With().Str("component", "telegram_listener").Logger(),
	}
}

// Run polls for updates until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(l.timeout.Seconds())

	updates := l.api.GetUpdatesChan(cfg)
	defer l.api.StopReceivingUpdates()

	l.log.Info().Str("bot", l.api.Self.UserName).Msg("Listening for updates")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			l.dispatch(ctx, update)
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("Panic recovered while handling update")
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		l.handler.HandleButton(ctx, buttonPress(update.CallbackQuery))

	case update.Message != nil && update.Message.Contact != nil:
		msg := update.Message
		l.handler.HandleContact(ctx, models.ContactShared{
			UserID: msg.From.ID,
			ChatID: msg.Chat.ID,
			Name:   contactName(msg.Contact),
			Phone:  msg.Contact.PhoneNumber,
		})

	case update.Message != nil && update.Message.IsCommand():
		msg := update.Message
		l.handler.HandleCommand(ctx, models.Command{
			UserID:    msg.From.ID,
			ChatID:    msg.Chat.ID,
			Name:      msg.Command(),
			FirstName: msg.From.FirstName,
			Username:  msg.From.UserName,
		})

	case update.Message != nil && update.Message.Text != "":
		msg := update.Message
		l.handler.HandleText(ctx, models.TextMessage{
			UserID: msg.From.ID,
			ChatID: msg.Chat.ID,
			Body:   msg.Text,
		})
	}
}

func buttonPress(q *tgbotapi.CallbackQuery) models.ButtonPress {
	ev := models.ButtonPress{
		UserID:     q.From.ID,
		CallbackID: q.ID,
		Payload:    q.Data,
		Username:   q.From.UserName,
		FirstName:  q.From.FirstName,
	}
	if q.Message != nil {
		ev.ChatID = q.Message.Chat.ID
		ev.MessageID = q.Message.MessageID
		// A document message cannot be edited in place; the core sends the
		// next screen as a new message instead.
		ev.HasDocument = q.Message.Document != nil
	}
	return ev
}

func contactName(c *tgbotapi.Contact) string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	return name
}
