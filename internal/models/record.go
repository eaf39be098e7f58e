package models

import (
	"time"
)

// ConsentState is the per-user position in the consent flow.
type ConsentState int

const (
	// ConsentUnknown means no record exists or consent was never given.
	ConsentUnknown ConsentState = iota
	// ConsentedNoContact means consent is on file but contact capture is pending.
	ConsentedNoContact
	// ConsentedWithContact means consent and a phone number are both on file.
	ConsentedWithContact
)

func (s ConsentState) String() string {
	switch s {
	case ConsentedNoContact:
		return "consented_no_contact"
	case ConsentedWithContact:
		return "consented_with_contact"
	default:
		return "unknown"
	}
}

// ContactData holds the personal data collected from the user.
type ContactData struct {
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Username string `json:"username,omitempty"`
}

// UserRecord is one user's consent and contact record. The JSON field names
// match the layout of the existing user_data.json store so the record file
// stays readable by the external dashboard.
type UserRecord struct {
	ConsentGiven bool        `json:"consent_given"`
	ConsentDate  time.Time   `json:"consent_date"`
	Data         ContactData `json:"data"`
	LastUpdated  time.Time   `json:"last_updated"`
}

// HasContact reports whether contact capture has completed.
func (r *UserRecord) HasContact() bool {
	return r != nil && r.Data.Phone != ""
}

// State derives the consent state from the record. A nil record is Unknown.
func (r *UserRecord) State() ConsentState {
	switch {
	case r == nil || !r.ConsentGiven:
		return ConsentUnknown
	case !r.HasContact():
		return ConsentedNoContact
	default:
		return ConsentedWithContact
	}
}

// Stats is the read-only statistics view over the record store.
type Stats struct {
	TotalUsers       int     `json:"total_users"`
	UsersWithConsent int     `json:"users_with_consent"`
	ConsentRate      float64 `json:"consent_rate_percent"`
}
