package consent

import (
	"github.com/rs/zerolog"

	"github.com/likhanovw/redTripwireBot/internal/models"
	"github.com/likhanovw/redTripwireBot/internal/store"
)

// Decision is the gate's verdict for one inbound interaction.
type Decision int

const (
	// Proceed: consent and contact are on file, the main menu is unlocked.
	Proceed Decision = iota
	// NeedsConsent: no consent on file, route into the consent prompt.
	NeedsConsent
	// NeedsContact: consent given but contact capture is still pending.
	NeedsContact
)

func (d Decision) String() string {
	switch d {
	case NeedsConsent:
		return "needs_consent"
	case NeedsContact:
		return "needs_contact"
	default:
		return "proceed"
	}
}

// Consent-flow button payloads. These bypass the gate: an ungated user must
// always be able to answer the consent prompt itself.
const (
	PayloadConsentYes     = "consent_yes"
	PayloadConsentNo      = "consent_no"
	PayloadRequestContact = "request_contact"
)

// Exempt reports whether a button payload belongs to the consent flow and
// must be reachable regardless of gate state.
func Exempt(payload string) bool {
	switch payload {
	case PayloadConsentYes, PayloadConsentNo, PayloadRequestContact:
		return true
	}
	return false
}

// Gate decides whether a user may reach the functional menus. The predicate
// is the strict one: consent AND a captured contact unlock the main menu.
type Gate struct {
	store store.UserRecordStore
	log   zerolog.Logger
}

// NewGate creates a consent gate over the given record store.
func NewGate(st store.UserRecordStore, log zerolog.Logger) *Gate {
	return &Gate{
		store: st,
		log:   log.With().Str("component", "consent_gate").Logger(),
	}
}

// Authorize evaluates the gate for one interaction. It first picks up any
// external store edits so out-of-band changes are respected within one
// interaction's latency.
func (g *Gate) Authorize(userID int64) Decision {
	if _, err := g.store.ReloadIfChanged(); err != nil {
		// Keep serving from the in-memory state; a broken reload must not
		// lock users out.
		g.log.Warn().Err(err).Msg("Store reload failed, using in-memory state")
	}

	switch g.store.StateOf(userID) {
	case models.ConsentUnknown:
		return NeedsConsent
	case models.ConsentedNoContact:
		return NeedsContact
	default:
		return Proceed
	}
}
