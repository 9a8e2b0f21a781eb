// Package autosave writes best-effort snapshots of the working quote.
package autosave

import (
	"context"
	"errors"
	"log"

	"quoteterm/internal/quote"
	"quoteterm/internal/quotefile"
	"quoteterm/internal/storage"
)

// RestoreFileName is the name snapshot restores are loaded under.
const RestoreFileName = "autosave.json"

// SnapshotStore is the persistence the saver writes through.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, key string, data []byte) error
	LoadSnapshot(ctx context.Context, key string) (*storage.Snapshot, error)
	DeleteSnapshot(ctx context.Context, key string) error
}

// Saver snapshots documents under a single key.
type Saver struct {
	store  SnapshotStore
	key    string
	logger *log.Logger
}

// New builds a saver. A nil logger falls back to log.Default().
func New(store SnapshotStore, key string, logger *log.Logger) *Saver {
	if logger == nil {
		logger = log.Default()
	}
	return &Saver{store: store, key: key, logger: logger}
}

// Save stores doc when it has data. Failures are logged and reported as false.
func (s *Saver) Save(ctx context.Context, doc quote.Document) bool {
	if s == nil || s.store == nil || !hasData(doc) {
		return false
	}
	data, err := quotefile.EncodeJSON(doc)
	if err != nil {
		s.logger.Printf("autosave: encode: %v", err)
		return false
	}
	if err := s.store.SaveSnapshot(ctx, s.key, data); err != nil {
		s.logger.Printf("autosave: %v", err)
		return false
	}
	return true
}

// Restore returns the last snapshot, if any.
func (s *Saver) Restore(ctx context.Context) ([]byte, bool) {
	if s == nil || s.store == nil {
		return nil, false
	}
	snap, err := s.store.LoadSnapshot(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Printf("autosave: restore: %v", err)
		}
		return nil, false
	}
	return snap.Data, true
}

// Discard removes the stored snapshot.
func (s *Saver) Discard(ctx context.Context) {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.DeleteSnapshot(ctx, s.key); err != nil {
		s.logger.Printf("autosave: discard: %v", err)
	}
}

func hasData(doc quote.Document) bool {
	p := doc.Product()
	if p == nil {
		return false
	}
	switch len(p.Items) {
	case 0:
		return false
	case 1:
		return p.Items[0].HasData()
	default:
		return true
	}
}
