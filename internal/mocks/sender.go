package mocks

import (
	"context"
	"sync"

	"github.com/likhanovw/redTripwireBot/internal/transport"
)

// SentText records one SendText call.
type SentText struct {
	ChatID  int64
	Text    string
	Buttons [][]transport.Button
}

// EditedText records one EditText call.
type EditedText struct {
	ChatID    int64
	MessageID int
	Text      string
	Buttons   [][]transport.Button
}

// SentDocument records one SendDocument call.
type SentDocument struct {
	ChatID   int64
	Path     string
	Filename string
	Caption  string
	Buttons  [][]transport.Button
}

// ContactRequest records one RequestContactKeyboard call.
type ContactRequest struct {
	ChatID      int64
	Text        string
	ButtonLabel string
}

// MockSender is a mock implementation of transport.Sender recording every
// outbound call.
type MockSender struct {
	mu sync.Mutex

	Texts           []SentText
	Edits           []EditedText
	Documents       []SentDocument
	ContactRequests []ContactRequest
	Callbacks       []string

	SendTextErr     error
	EditTextErr     error
	SendDocumentErr error
}

// NewMockSender creates an empty mock sender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) SendText(ctx context.Context, chatID int64, text string, buttons [][]transport.Button) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendTextErr != nil {
		return m.SendTextErr
	}
	m.Texts = append(m.Texts, SentText{ChatID: chatID, Text: text, Buttons: buttons})
	return nil
}

func (m *MockSender) EditText(ctx context.Context, chatID int64, messageID int, text string, buttons [][]transport.Button) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EditTextErr != nil {
		return m.EditTextErr
	}
	m.Edits = append(m.Edits, EditedText{ChatID: chatID, MessageID: messageID, Text: text, Buttons: buttons})
	return nil
}

func (m *MockSender) SendDocument(ctx context.Context, chatID int64, path, filename, caption string, buttons [][]transport.Button) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendDocumentErr != nil {
		return m.SendDocumentErr
	}
	m.Documents = append(m.Documents, SentDocument{ChatID: chatID, Path: path, Filename: filename, Caption: caption, Buttons: buttons})
	return nil
}

func (m *MockSender) RequestContactKeyboard(ctx context.Context, chatID int64, text, buttonLabel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ContactRequests = append(m.ContactRequests, ContactRequest{ChatID: chatID, Text: text, ButtonLabel: buttonLabel})
	return nil
}

func (m *MockSender) AnswerCallback(ctx context.Context, callbackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Callbacks = append(m.Callbacks, callbackID)
	return nil
}

// LastText returns the most recent SendText call, or nil.
func (m *MockSender) LastText() *SentText {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Texts) == 0 {
		return nil
	}
	return &m.Texts[len(m.Texts)-1]
}

// LastEdit returns the most recent EditText call, or nil.
func (m *MockSender) LastEdit() *EditedText {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Edits) == 0 {
		return nil
	}
	return &m.Edits[len(m.Edits)-1]
}
