package store

import (
	"github.com/likhanovw/redTripwireBot/internal/models"
)

// UserRecordStore defines the interface for user record persistence. All
// mutating operations persist before returning so a crash between two
// conversational steps cannot lose consent state.
type UserRecordStore interface {
	// Get returns the record for the user, or false when absent.
	Get(userID int64) (*models.UserRecord, bool)

	// Put replaces the user's record and persists it. On a persistence
	// failure the in-memory state is left as it was before the call.
	Put(userID int64, rec *models.UserRecord) error

	// Delete removes the record and persists. Returns false when absent.
	Delete(userID int64) (bool, error)

	// HasConsent reports whether a record exists with consent given.
	HasConsent(userID int64) bool

	// StateOf derives the user's consent state.
	StateOf(userID int64) models.ConsentState

	// Reload re-reads the backing file unconditionally.
	Reload() error

	// ReloadIfChanged re-reads the backing file only if it was modified
	// since the last load, picking up external edits (admin dashboard).
	// Returns true when a reload happened.
	ReloadIfChanged() (bool, error)

	// AllIDs returns the IDs of all stored users.
	AllIDs() []int64

	// Stats returns collection statistics.
	Stats() models.Stats
}
