package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/likhanovw/redTripwireBot/internal/models"
)

// FileStore is the JSON-file implementation of UserRecordStore. Records are
// kept as a nested mapping keyed by the decimal user ID, the same layout the
// external dashboard reads and writes. Concurrent writers to the file follow
// last-write-wins; only in-process access is synchronized.
type FileStore struct {
	path string
	log  zerolog.Logger

	mu       sync.RWMutex
	data     map[string]*models.UserRecord
	lastMod  time.Time
	external atomic.Bool
}

// NewFileStore loads the store from path. A missing or unreadable file yields
// an empty store so the bot can still serve new users.
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	s := &FileStore{
		path: path,
		log:  log.With().Str("component", "store").Logger(),
		data: make(map[string]*models.UserRecord),
	}
	if err := s.Reload(); err != nil {
		s.log.Warn().Err(err).Str("file", path).Msg("Starting with empty user store")
	}
	return s
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Get returns the record for the user, or false when absent.
func (s *FileStore) Get(userID int64) (*models.UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[key(userID)]
	if !ok {
		return nil, false
	}
	cp := *rec
	return &cp, true
}

// Put replaces the user's record and persists immediately.
func (s *FileStore) Put(userID int64, rec *models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(userID)
	prev, hadPrev := s.data[k]
	cp := *rec
	s.data[k] = &cp

	if err := s.saveLocked(); err != nil {
		// Roll back so in-memory state matches what is on disk.
		if hadPrev {
			s.data[k] = prev
		} else {
			delete(s.data, k)
		}
		s.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to persist user record")
		return err
	}

	s.log.Info().Int64("user_id", userID).Msg("User record saved")
	return nil
}

// Delete removes the record and persists. Returns false when absent.
func (s *FileStore) Delete(userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(userID)
	prev, ok := s.data[k]
	if !ok {
		return false, nil
	}
	delete(s.data, k)

	if err := s.saveLocked(); err != nil {
		s.data[k] = prev
		s.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to persist user deletion")
		return false, err
	}

	s.log.Info().Int64("user_id", userID).Msg("User record deleted")
	return true, nil
}

// HasConsent reports whether a record exists with consent given.
func (s *FileStore) HasConsent(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[key(userID)]
	return ok && rec.ConsentGiven
}

// StateOf derives the user's consent state.
func (s *FileStore) StateOf(userID int64) models.ConsentState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key(userID)].State()
}

// Reload re-reads the backing file unconditionally. A missing file resets the
// store to empty; that is the normal first-run state, not an error.
func (s *FileStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// ReloadIfChanged re-reads the backing file only when the watcher flagged an
// external write or the file's modification time advanced since last load.
func (s *FileStore) ReloadIfChanged() (bool, error) {
	if !s.external.Load() {
		info, err := os.Stat(s.path)
		if err != nil {
			// Missing file: nothing newer to pick up.
			return false, nil
		}
		if !info.ModTime().After(s.lastModTime()) {
			return false, nil
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return false, err
	}
	s.external.Store(false)
	s.log.Info().Int("records", len(s.data)).Msg("Reloaded user store after external change")
	return true, nil
}

// AllIDs returns the IDs of all stored users in ascending order.
func (s *FileStore) AllIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.data))
	for k := range s.data {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Stats returns collection statistics.
func (s *FileStore) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := models.Stats{TotalUsers: len(s.data)}
	for _, rec := range s.data {
		if rec.ConsentGiven {
			st.UsersWithConsent++
		}
	}
	if st.TotalUsers > 0 {
		st.ConsentRate = float64(st.UsersWithConsent) / float64(st.TotalUsers) * 100
	}
	return st
}

// Watch marks the store dirty whenever the backing file is written by another
// process, so ReloadIfChanged becomes a flag check instead of a stat call.
// Blocks until ctx is cancelled.
func (s *FileStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors and the dashboard replace the file, which
	// would orphan a watch on the file itself.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	base := filepath.Base(s.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				s.external.Store(true)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Msg("Store watcher error")
		}
	}
}

func (s *FileStore) lastModTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMod
}

// loadLocked reads the backing file into memory. Caller holds the write lock.
func (s *FileStore) loadLocked() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.data = make(map[string]*models.UserRecord)
		s.lastMod = time.Time{}
		s.log.Info().Str("file", s.path).Msg("User store file absent, starting empty")
		return nil
	}
	if err != nil {
		return err
	}

	// Parse into a fresh map so a half-written or corrupt file cannot wipe
	// the state already in memory.
	data := make(map[string]*models.UserRecord)
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	s.data = data
	if info, err := os.Stat(s.path); err == nil {
		s.lastMod = info.ModTime()
	}
	s.log.Info().Int("records", len(s.data)).Str("file", s.path).Msg("Loaded user store")
	return nil
}

// saveLocked writes the store to disk. Caller holds the write lock.
func (s *FileStore) saveLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return err
	}
	if info, err := os.Stat(s.path); err == nil {
		// Remember our own write so ReloadIfChanged only fires on external ones.
		s.lastMod = info.ModTime()
	}
	return nil
}
