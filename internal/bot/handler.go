package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/likhanovw/redTripwireBot/internal/consent"
	"github.com/likhanovw/redTripwireBot/internal/docs"
	"github.com/likhanovw/redTripwireBot/internal/keyword"
	"github.com/likhanovw/redTripwireBot/internal/menu"
	"github.com/likhanovw/redTripwireBot/internal/models"
	"github.com/likhanovw/redTripwireBot/internal/store"
	"github.com/likhanovw/redTripwireBot/internal/transport"
)

// Handler is the conversation core: every inbound event passes through the
// consent gate, then through the menu state machine (buttons) or the keyword
// router (free text). All failures are converted to user-visible messages at
// the point nearest their cause; none escape a single interaction.
type Handler struct {
	store    store.UserRecordStore
	gate     *consent.Gate
	graph    *menu.Graph
	keywords *keyword.Router
	docs     *docs.Dispatcher
	sender   transport.Sender
	msgs     map[string]string
	btns     map[string]string
	log      zerolog.Logger
}

// New wires the conversation handler. Every screen node's text key is
// validated against the message table so a missing text is caught at startup,
// not mid-conversation.
func New(
	st store.UserRecordStore,
	graph *menu.Graph,
	keywords *keyword.Router,
	dispatcher *docs.Dispatcher,
	sender transport.Sender,
	msgs map[string]string,
	btns map[string]string,
	log zerolog.Logger,
) (*Handler, error) {
	for _, id := range []string{"consent_prompt", "consent_declined", "consent_thanks", "consent_save_failed", "contact_prompt", "contact_saved", "doc_caption", "doc_sent", "doc_not_found", "doc_error", "keyword_caption", "help", "docs"} {
		if _, ok := msgs[id]; !ok {
			return nil, fmt.Errorf("bot: message %q not configured", id)
		}
	}

	return &Handler{
		store:    st,
		gate:     consent.NewGate(st, log),
		graph:    graph,
		keywords: keywords,
		docs:     dispatcher,
		sender:   sender,
		msgs:     msgs,
		btns:     btns,
		log:      log.With().Str("component", "bot").Logger(),
	}, nil
}

// HandleCommand handles slash commands.
func (h *Handler) HandleCommand(ctx context.Context, ev models.Command) {
	log := h.interactionLog(ev.UserID)
	log.Info().Str("command", ev.Name).Msg("Command received")

	switch ev.Name {
	case "start":
		switch h.gate.Authorize(ev.UserID) {
		case consent.NeedsConsent:
			h.sendText(ctx, log, ev.ChatID, h.msgs["consent_prompt"], h.consentKeyboard())
		case consent.NeedsContact:
			h.sendText(ctx, log, ev.ChatID, h.msgs["consent_thanks"], h.shareContactKeyboard())
		default:
			start := h.graph.Start()
			h.sendText(ctx, log, ev.ChatID, h.msgs[start.TextKey], start.Keyboard())
		}
	case "help":
		h.sendText(ctx, log, ev.ChatID, h.msgs["help"], nil)
	case "docs":
		kb := [][]transport.Button{transport.Row(h.btns["main_menu"], h.graph.Start().ID)}
		h.sendText(ctx, log, ev.ChatID, h.msgs["docs"], kb)
	default:
		log.Warn().Str("command", ev.Name).Msg("Unknown command ignored")
	}
}

// HandleButton handles inline-keyboard callbacks. Consent-flow payloads
// bypass the gate so an ungated user can always answer the consent prompt.
func (h *Handler) HandleButton(ctx context.Context, ev models.ButtonPress) {
	log := h.interactionLog(ev.UserID)
	log.Info().Str("payload", ev.Payload).Msg("Button pressed")

	if err := h.sender.AnswerCallback(ctx, ev.CallbackID); err != nil {
		log.Debug().Err(err).Msg("Failed to answer callback")
	}

	if consent.Exempt(ev.Payload) {
		h.handleConsentPayload(ctx, log, ev)
		return
	}

	switch h.gate.Authorize(ev.UserID) {
	case consent.NeedsConsent:
		h.render(ctx, log, ev, h.msgs["consent_prompt"], h.consentKeyboard())
		return
	case consent.NeedsContact:
		h.render(ctx, log, ev, h.msgs["consent_thanks"], h.shareContactKeyboard())
		return
	}

	node, err := h.graph.Transition(ev.Payload)
	if err != nil {
		// Payloads come from our own keyboards, so this is a configuration
		// or programming error. Fall back to the main menu.
		log.Error().Err(err).Msg("Unknown menu transition, falling back to main menu")
		node = h.graph.Start()
	}

	h.executeNode(ctx, log, ev, node)
}

// HandleText handles free-text messages: gated users get keyword-triggered
// documents, ungated users are routed into the consent flow.
func (h *Handler) HandleText(ctx context.Context, ev models.TextMessage) {
	log := h.interactionLog(ev.UserID)

	switch h.gate.Authorize(ev.UserID) {
	case consent.NeedsConsent:
		h.sendText(ctx, log, ev.ChatID, h.msgs["consent_prompt"], h.consentKeyboard())
		return
	case consent.NeedsContact:
		h.sendText(ctx, log, ev.ChatID, h.msgs["consent_thanks"], h.shareContactKeyboard())
		return
	}

	matches := h.keywords.Match(ev.Body)
	if len(matches) == 0 {
		log.Debug().Msg("No keyword match, message ignored")
		return
	}
	log.Info().Strs("documents", matches).Msg("Keyword match")

	mainMenu := [][]transport.Button{transport.Row(h.btns["main_menu"], h.graph.Start().ID)}
	for _, docID := range matches {
		filename := h.docs.Filename(docID)
		caption := fmt.Sprintf(h.msgs["keyword_caption"], filename)

		// Each matched document dispatches independently; one failure does
		// not block the rest.
		switch h.docs.Send(ctx, ev.ChatID, docID, caption, mainMenu) {
		case docs.NotFound:
			h.sendText(ctx, log, ev.ChatID, fmt.Sprintf(h.msgs["doc_not_found"], filename), nil)
		case docs.TransferFailed:
			h.sendText(ctx, log, ev.ChatID, fmt.Sprintf(h.msgs["doc_error"], filename), nil)
		}
	}
}

// HandleContact completes contact capture when the user shares their card.
func (h *Handler) HandleContact(ctx context.Context, ev models.ContactShared) {
	log := h.interactionLog(ev.UserID)
	log.Info().Msg("Contact shared")

	if _, err := h.store.ReloadIfChanged(); err != nil {
		log.Warn().Err(err).Msg("Store reload failed, using in-memory state")
	}

	rec, ok := h.store.Get(ev.UserID)
	if !ok || !rec.ConsentGiven {
		// Contact shared without consent on file: route into the consent flow.
		h.sendText(ctx, log, ev.ChatID, h.msgs["consent_prompt"], h.consentKeyboard())
		return
	}

	name := ev.Name
	if name == "" {
		name = "Не указано"
	}
	rec.Data.Name = name
	rec.Data.Phone = ev.Phone
	rec.LastUpdated = time.Now()

	if err := h.store.Put(ev.UserID, rec); err != nil {
		h.sendText(ctx, log, ev.ChatID, h.msgs["consent_save_failed"], nil)
		return
	}

	h.sendText(ctx, log, ev.ChatID, fmt.Sprintf(h.msgs["contact_saved"], name, ev.Phone), nil)

	// The confirmation above replaced nothing; the main menu goes out as a
	// fresh message.
	start := h.graph.Start()
	h.sendText(ctx, log, ev.ChatID, h.msgs[start.TextKey], start.Keyboard())
}

func (h *Handler) handleConsentPayload(ctx context.Context, log zerolog.Logger, ev models.ButtonPress) {
	switch ev.Payload {
	case consent.PayloadConsentYes:
		now := time.Now()
		rec := &models.UserRecord{
			ConsentGiven: true,
			ConsentDate:  now,
			Data:         models.ContactData{Username: ev.Username},
			LastUpdated:  now,
		}
		if err := h.store.Put(ev.UserID, rec); err != nil {
			h.render(ctx, log, ev, h.msgs["consent_save_failed"], nil)
			return
		}
		log.Info().Msg("Consent recorded")
		h.render(ctx, log, ev, h.msgs["consent_thanks"], h.shareContactKeyboard())

	case consent.PayloadConsentNo:
		// A decline stores nothing; the user stays unknown and may retry.
		log.Info().Msg("Consent declined")
		retry := [][]transport.Button{transport.Row(h.btns["consent_retry"], consent.PayloadConsentYes)}
		h.render(ctx, log, ev, h.msgs["consent_declined"], retry)

	case consent.PayloadRequestContact:
		if err := h.sender.RequestContactKeyboard(ctx, ev.ChatID, h.msgs["contact_prompt"], h.btns["share_contact"]); err != nil {
			log.Error().Err(err).Msg("Failed to request contact keyboard")
		}
	}
}

func (h *Handler) executeNode(ctx context.Context, log zerolog.Logger, ev models.ButtonPress, node *menu.Node) {
	switch node.Action.Kind {
	case menu.ActionSendDocument:
		filename := h.docs.Filename(node.Action.DocID)
		caption := fmt.Sprintf(h.msgs["doc_caption"], filename)

		switch h.docs.Send(ctx, ev.ChatID, node.Action.DocID, caption, nil) {
		case docs.Sent:
			h.render(ctx, log, ev, fmt.Sprintf(h.msgs["doc_sent"], filename), node.Keyboard())
		case docs.NotFound:
			h.render(ctx, log, ev, fmt.Sprintf(h.msgs["doc_not_found"], filename), node.Keyboard())
		case docs.TransferFailed:
			h.render(ctx, log, ev, fmt.Sprintf(h.msgs["doc_error"], filename), node.Keyboard())
		}

	case menu.ActionRequestContact:
		if err := h.sender.RequestContactKeyboard(ctx, ev.ChatID, h.msgs["contact_prompt"], h.btns["share_contact"]); err != nil {
			log.Error().Err(err).Msg("Failed to request contact keyboard")
		}

	case menu.ActionShowStats:
		h.render(ctx, log, ev, h.statsText(ev.UserID), node.Keyboard())

	default:
		// Plain screen or show-text node.
		h.render(ctx, log, ev, h.msgs[node.TextKey], node.Keyboard())
	}
}

func (h *Handler) statsText(userID int64) string {
	rec, ok := h.store.Get(userID)
	if !ok {
		return "У вас пока нет сохраненных данных."
	}

	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}

	st := h.store.Stats()
	return fmt.Sprintf(
		"📊 Ваши данные:\nИмя: %s\nТелефон: %s\nUsername: %s\nДата согласия: %s\n\n📈 Статистика:\nВсего пользователей: %d\nСогласились: %d\nПроцент согласия: %.1f%%",
		orDefault(rec.Data.Name, "Не указано"),
		orDefault(rec.Data.Phone, "Не указан"),
		orDefault(rec.Data.Username, "Не указан"),
		rec.ConsentDate.Format("2006-01-02 15:04"),
		st.TotalUsers,
		st.UsersWithConsent,
		st.ConsentRate,
	)
}

// render replaces the screen the pressed button lives on. A message carrying
// a document cannot be edited in place, so its replacement goes out as a new
// message; everything else edits the existing one.
func (h *Handler) render(ctx context.Context, log zerolog.Logger, ev models.ButtonPress, text string, buttons [][]transport.Button) {
	if ev.HasDocument {
		h.sendText(ctx, log, ev.ChatID, text, buttons)
		return
	}
	if err := h.sender.EditText(ctx, ev.ChatID, ev.MessageID, text, buttons); err != nil {
		log.Error().Err(err).Msg("Failed to edit message")
	}
}

func (h *Handler) sendText(ctx context.Context, log zerolog.Logger, chatID int64, text string, buttons [][]transport.Button) {
	if err := h.sender.SendText(ctx, chatID, text, buttons); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func (h *Handler) consentKeyboard() [][]transport.Button {
	return [][]transport.Button{
		transport.Row(h.btns["consent_yes"], consent.PayloadConsentYes),
		transport.Row(h.btns["consent_no"], consent.PayloadConsentNo),
	}
}

func (h *Handler) shareContactKeyboard() [][]transport.Button {
	return [][]transport.Button{
		transport.Row(h.btns["share_contact"], consent.PayloadRequestContact),
	}
}

func (h *Handler) interactionLog(userID int64) zerolog.Logger {
	return h.log.With().
		Str("interaction_id", uuid.NewString()).
		Int64("user_id", userID).
		Logger()
}
