package docs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/likhanovw/redTripwireBot/internal/transport"
)

// Status is the outcome of a document dispatch.
type Status int

const (
	// Sent: the document left through the transport.
	Sent Status = iota
	// NotFound: the file is absent; the transport was never called.
	NotFound
	// TransferFailed: the transfer itself failed. Not retried automatically;
	// retry is the user re-pressing the button.
	TransferFailed
)

// Dispatcher resolves logical document names to files under a single
// directory and sends them through the transport.
type Dispatcher struct {
	dir    string
	names  map[string]string
	sender transport.Sender
	log    zerolog.Logger
}

// NewDispatcher creates a dispatcher over dir, creating the directory when
// missing. names maps logical document IDs to filenames; IDs absent from the
// map are treated as filenames directly, which is how keyword rules name
// their documents.
func NewDispatcher(dir string, names map[string]string, sender transport.Sender, log zerolog.Logger) (*Dispatcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Dispatcher{
		dir:    dir,
		names:  names,
		sender: sender,
		log:    log.With().Str("component", "docs").Logger(),
	}, nil
}

// Filename resolves a logical document ID to its filename.
func (d *Dispatcher) Filename(docID string) string {
	if fn, ok := d.names[docID]; ok {
		return fn
	}
	return docID
}

// Resolve returns the full path for a document ID.
func (d *Dispatcher) Resolve(docID string) string {
	return filepath.Join(d.dir, d.Filename(docID))
}

// Exists reports whether the document's file is present.
func (d *Dispatcher) Exists(docID string) bool {
	info, err := os.Stat(d.Resolve(docID))
	return err == nil && !info.IsDir()
}

// Send dispatches the document to the chat. A missing file short-circuits to
// NotFound without touching the transport.
func (d *Dispatcher) Send(ctx context.Context, chatID int64, docID, caption string, buttons [][]transport.Button) Status {
	filename := d.Filename(docID)

	if !d.Exists(docID) {
		d.log.Warn().Str("document", filename).Int64("chat_id", chatID).Msg("Requested document is missing")
		return NotFound
	}

	if err := d.sender.SendDocument(ctx, chatID, d.Resolve(docID), filename, caption, buttons); err != nil {
		d.log.Error().Err(err).Str("document", filename).Int64("chat_id", chatID).Msg("Document transfer failed")
		return TransferFailed
	}

	d.log.Info().Str("document", filename).Int64("chat_id", chatID).Msg("Document sent")
	return Sent
}

// ListAvailable returns the document files currently present in the
// directory.
func (d *Dispatcher) ListAvailable() []string {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		files = append(files, name)
	}
	return files
}
