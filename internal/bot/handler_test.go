package bot_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/likhanovw/redTripwireBot/internal/bot"
	"github.com/likhanovw/redTripwireBot/internal/config"
	"github.com/likhanovw/redTripwireBot/internal/consent"
	"github.com/likhanovw/redTripwireBot/internal/docs"
	"github.com/likhanovw/redTripwireBot/internal/keyword"
	"github.com/likhanovw/redTripwireBot/internal/menu"
	"github.com/likhanovw/redTripwireBot/internal/mocks"
	"github.com/likhanovw/redTripwireBot/internal/models"
	"github.com/likhanovw/redTripwireBot/internal/store"
)

type fixture struct {
	handler *bot.Handler
	sender  *mocks.MockSender
	store   *store.FileStore
	docsDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sender := mocks.NewMockSender()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "user_data.json"), zerolog.Nop())

	graph, err := menu.NewGraph(config.MenuNodes(), config.StartNode)
	require.NoError(t, err)

	docsDir := filepath.Join(t.TempDir(), "pdfs")
	dispatcher, err := docs.NewDispatcher(docsDir, config.Documents, sender, zerolog.Nop())
	require.NoError(t, err)

	handler, err := bot.New(st, graph, keyword.NewRouter(config.KeywordRules), dispatcher, sender,
		config.Messages, config.Buttons, zerolog.Nop())
	require.NoError(t, err)

	return &fixture{handler: handler, sender: sender, store: st, docsDir: docsDir}
}

func (f *fixture) writeDoc(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.docsDir, name), []byte("%PDF-1.4"), 0o644))
}

func (f *fixture) putGatedUser(t *testing.T, id int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.store.Put(id, &models.UserRecord{
		ConsentGiven: true,
		ConsentDate:  now,
		Data:         models.ContactData{Name: "Ivan", Phone: "+15550100", Username: "ivan"},
		LastUpdated:  now,
	}))
}

func press(payload string) models.ButtonPress {
	return models.ButtonPress{
		UserID:     1,
		ChatID:     1,
		MessageID:  10,
		CallbackID: "cb1",
		Payload:    payload,
		Username:   "ivan",
	}
}

func TestStartWithoutRecordShowsConsentPrompt(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleCommand(context.Background(), models.Command{UserID: 1, ChatID: 1, Name: "start"})

	require.Len(t, f.sender.Texts, 1)
	msg := f.sender.Texts[0]
	assert.Equal(t, config.Messages["consent_prompt"], msg.Text)
	require.Len(t, msg.Buttons, 2)
	assert.Equal(t, consent.PayloadConsentYes, msg.Buttons[0][0].Payload)
	assert.Equal(t, consent.PayloadConsentNo, msg.Buttons[1][0].Payload)
}

func TestConsentDeclineLeavesNoRecord(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleButton(context.Background(), press(consent.PayloadConsentNo))

	require.Len(t, f.sender.Edits, 1)
	edit := f.sender.Edits[0]
	assert.Equal(t, config.Messages["consent_declined"], edit.Text)
	require.Len(t, edit.Buttons, 1)
	assert.Equal(t, consent.PayloadConsentYes, edit.Buttons[0][0].Payload)

	_, ok := f.store.Get(1)
	assert.False(t, ok)
}

func TestConsentAcceptCreatesRecordAndAsksForContact(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleButton(context.Background(), press(consent.PayloadConsentYes))

	rec, ok := f.store.Get(1)
	require.True(t, ok)
	assert.True(t, rec.ConsentGiven)
	assert.Equal(t, "ivan", rec.Data.Username)
	assert.Empty(t, rec.Data.Phone)
	assert.False(t, rec.ConsentDate.IsZero())

	require.Len(t, f.sender.Edits, 1)
	edit := f.sender.Edits[0]
	assert.Equal(t, config.Messages["consent_thanks"], edit.Text)
	assert.Equal(t, consent.PayloadRequestContact, edit.Buttons[0][0].Payload)
}

func TestRequestContactShowsShareKeyboard(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleButton(context.Background(), press(consent.PayloadRequestContact))

	require.Len(t, f.sender.ContactRequests, 1)
	assert.Equal(t, config.Messages["contact_prompt"], f.sender.ContactRequests[0].Text)
}

func TestContactSharedCompletesCaptureAndSendsMainMenu(t *testing.T) {
	f := newFixture(t)
	f.handler.HandleButton(context.Background(), press(consent.PayloadConsentYes))

	f.handler.HandleContact(context.Background(), models.ContactShared{
		UserID: 1, ChatID: 1, Name: "Ivan", Phone: "+15550100",
	})

	rec, ok := f.store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Ivan", rec.Data.Name)
	assert.Equal(t, "+15550100", rec.Data.Phone)

	// Confirmation text, then the main menu as a fresh message.
	require.Len(t, f.sender.Texts, 2)
	assert.Contains(t, f.sender.Texts[0].Text, "Ivan")
	assert.Contains(t, f.sender.Texts[0].Text, "+15550100")
	assert.Equal(t, config.Messages["welcome"], f.sender.Texts[1].Text)
	assert.NotEmpty(t, f.sender.Texts[1].Buttons)
}

func TestContactWithoutConsentRoutesToConsentFlow(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleContact(context.Background(), models.ContactShared{
		UserID: 1, ChatID: 1, Name: "Ivan", Phone: "+15550100",
	})

	require.Len(t, f.sender.Texts, 1)
	assert.Equal(t, config.Messages["consent_prompt"], f.sender.Texts[0].Text)
	_, ok := f.store.Get(1)
	assert.False(t, ok)
}

func TestUngatedButtonRedirectsToConsent(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleButton(context.Background(), press("materials"))

	require.Len(t, f.sender.Edits, 1)
	assert.Equal(t, config.Messages["consent_prompt"], f.sender.Edits[0].Text)
	assert.Empty(t, f.sender.Documents)
}

func TestConsentedWithoutContactButtonRedirectsToContactCapture(t *testing.T) {
	f := newFixture(t)
	f.handler.HandleButton(context.Background(), press(consent.PayloadConsentYes))
	f.sender.Edits = nil

	f.handler.HandleButton(context.Background(), press("materials"))

	require.Len(t, f.sender.Edits, 1)
	assert.Equal(t, config.Messages["consent_thanks"], f.sender.Edits[0].Text)
}

func TestGatedMenuNavigationEditsInPlace(t *testing.T) {
	f := newFixture(t)
	f.putGatedUser(t, 1)

	f.handler.HandleButton(context.Background(), press("materials"))

	require.Len(t, f.sender.Edits, 1)
	edit := f.sender.Edits[0]
	assert.Equal(t, config.Messages["materials"], edit.Text)
	assert.Len(t, edit.Buttons, 4)
	assert.Empty(t, f.sender.Texts)
}

func TestDocumentScreenIsReplacedByNewMessage(t *testing.T) {
	f := newFixture(t)
	f.putGatedUser(t, 1)

	ev := press("materials")
	ev.HasDocument = true
	f.handler.HandleButton(context.Background(), ev)

	// The keyboard lived on a document message, which cannot be edited.
	assert.Empty(t, f.sender.Edits)
	require.Len(t, f.sender.Texts, 1)
	assert.Equal(t, config.Messages["materials"], f.sender.Texts[0].Text)
}

func TestUnknownPayloadFallsBackToMainMenu(t *testing.T) {
	f := newFixture(t)
	f.putGatedUser(t, 1)

	f.handler.HandleButton(context.Background(), press("definitely_not_a_node"))

	require.Len(t, f.sender.Edits, 1)
	assert.Equal(t, config.Messages["welcome"], f.sender.Edits[0].Text)
}

func TestMenuDocumentNodeSendsFileAndConfirms(t *testing.T) {
	f := newFixture(t)
	f.putGatedUser(t, 1)
	f.writeDoc(t, "frst_file.pdf")

	f.handler.HandleButton(context.Background(), press("materials_file_1"))

	require.Len(t, f.sender.Documents, 1)
	assert.Equal(t, "frst_file.pdf", f.sender.Documents[0].Filename)

	require.Len(t, f.sender.Edits, 1)
	assert.Contains(t, f.sender.Edits[0].Text, "отправлен успешно")
}

func TestMenuDocumentNodeMissingFile(t *testing.T) {
	f := newFixture(t)
	f.putGatedUser(t, 1)

	f.handler.HandleButton(context.Background(), press("get_brief"))

	assert.Empty(t, f.sender.Documents)
	require.Len(t, f.sender.Edits, 1)
	assert.Contains(t, f.sender.Edits[0].Text, "не найден")
	assert.Contains(t, f.sender.Edits[0].Text, "RED.brief.odt")
}

func TestKeywordTextDispatchesEachDocumentOnce(t *testing.T) {
	f := newFixture(t)
	f.putGatedUser(t, 1)
	f.writeDoc(t, "frst_file.pdf")

	// "первый" and "файл" both map to frst_file.pdf.
	f.handler.HandleText(context.Background(), models.TextMessage{UserID: 1, ChatID: 1, Body: "пришлите первый файл"})

	require.Len(t, f.sender.Documents, 1)
	assert.Equal(t, "frst_file.pdf", f.sender.Documents[0].Filename)
}

func TestKeywordFailureDoesNotBlockOtherDocuments(t *testing.T) {
	f := newFixture(t)
	f.putGatedUser(t, 1)
	// audit_processes.pdf is missing, frst_file.pdf is present.
	f.writeDoc(t, "frst_file.pdf")

	f.handler.HandleText(context.Background(), models.TextMessage{UserID: 1, ChatID: 1, Body: "аудит и файл"})

	// The missing one produced an apology, the present one still went out.
	require.Len(t, f.sender.Documents, 1)
	assert.Equal(t, "frst_file.pdf", f.sender.Documents[0].Filename)
	require.Len(t, f.sender.Texts, 1)
	assert.Contains(t, f.sender.Texts[0].Text, "audit_processes.pdf")
}

func TestUnmatchedTextIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.putGatedUser(t, 1)

	f.handler.HandleText(context.Background(), models.TextMessage{UserID: 1, ChatID: 1, Body: "просто привет"})

	assert.Empty(t, f.sender.Documents)
	assert.Empty(t, f.sender.Texts)
}

func TestUngatedTextRoutesToConsent(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleText(context.Background(), models.TextMessage{UserID: 1, ChatID: 1, Body: "аудит"})

	assert.Empty(t, f.sender.Documents)
	require.Len(t, f.sender.Texts, 1)
	assert.Equal(t, config.Messages["consent_prompt"], f.sender.Texts[0].Text)
}

func TestShowStatsScreen(t *testing.T) {
	f := newFixture(t)
	f.putGatedUser(t, 1)

	f.handler.HandleButton(context.Background(), press("my_data"))

	require.Len(t, f.sender.Edits, 1)
	text := f.sender.Edits[0].Text
	assert.Contains(t, text, "Ivan")
	assert.Contains(t, text, "+15550100")
	assert.Contains(t, text, "Всего пользователей: 1")
}

func TestHelpCommand(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleCommand(context.Background(), models.Command{UserID: 1, ChatID: 1, Name: "help"})

	require.Len(t, f.sender.Texts, 1)
	assert.Equal(t, config.Messages["help"], f.sender.Texts[0].Text)
}

func TestCallbackIsAlwaysAnswered(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleButton(context.Background(), press(consent.PayloadConsentNo))

	assert.Equal(t, []string{"cb1"}, f.sender.Callbacks)
}
