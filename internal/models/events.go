package models

// Inbound events delivered by the transport listener. The conversation core
// only ever sees these; it never touches the transport library's update types.

// Command is a slash command such as /start or /help.
type Command struct {
	UserID    int64
	ChatID    int64
	Name      string
	FirstName string
	Username  string
}

// ButtonPress is an inline-keyboard callback. Payload is the target node ID
// (or a consent-flow payload) encoded into the button when it was rendered.
// HasDocument is true when the message carrying the pressed keyboard has an
// attached document, which cannot be edited in place.
type ButtonPress struct {
	UserID      int64
	ChatID      int64
	MessageID   int
	CallbackID  string
	Payload     string
	Username    string
	FirstName   string
	HasDocument bool
}

// TextMessage is a free-text message scanned for keyword triggers.
type TextMessage struct {
	UserID int64
	ChatID int64
	Body   string
}

// ContactShared is delivered when the user shares a contact card.
type ContactShared struct {
	UserID int64
	ChatID int64
	Name   string
	Phone  string
}
