package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"snapvault/internal/logging"
)

// Store owns the persisted destination cache document. Opening a store
// acquires a file lock so two concurrent runs cannot interleave rewrites;
// the second run fails fast instead of waiting.
type Store struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
	doc    Document
}

// ErrLocked reports that another process holds the cache lock.
var ErrLocked = errors.New("another snapvault run is active")

// Open loads the cache document at path, creating parent directories as
// needed. A missing file yields an empty document; an undecodable file is
// reported and replaced on the next Save.
func Open(path string, logger *slog.Logger) (*Store, error) {
	logger = logging.NewComponentLogger(logger, "catalog")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock held at %s)", ErrLocked, lock.Path())
	}

	s := &Store{
		path:   path,
		lock:   lock,
		logger: logger,
		doc:    make(Document),
	}

	if err := s.load(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	return s, nil
}

// Path returns the location of the persisted document.
func (s *Store) Path() string {
	return s.path
}

// Entries returns the cached entries for a destination root, or an empty map
// when the root has never been scanned.
func (s *Store) Entries(root string) Entries {
	if entries, ok := s.doc[root]; ok {
		return entries
	}
	return make(Entries)
}

// SetEntries replaces the cached entries for a destination root.
func (s *Store) SetEntries(root string, entries Entries) {
	s.doc[root] = entries
}

// Remove drops a destination root from the document, reporting whether it
// was present.
func (s *Store) Remove(root string) bool {
	if _, ok := s.doc[root]; !ok {
		return false
	}
	delete(s.doc, root)
	return true
}

// RemoveAll empties the document.
func (s *Store) RemoveAll() {
	s.doc = make(Document)
}

// Roots lists the destination roots present in the document, sorted.
func (s *Store) Roots() []string {
	roots := make([]string, 0, len(s.doc))
	for root := range s.doc {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

// Save rewrites the whole persisted document atomically via a temp file.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write cache temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace cache file: %w", err)
	}

	s.logger.Debug("saved destination cache",
		logging.String(logging.FieldPath, s.path),
		logging.Int("roots", len(s.doc)))
	return nil
}

// Close releases the cache lock. The store must not be used afterwards.
func (s *Store) Close() error {
	return s.lock.Unlock()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // first run
		}
		return fmt.Errorf("read cache file %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("cache file is corrupt; starting empty",
			logging.String(logging.FieldPath, s.path),
			logging.Error(err))
		return nil
	}

	s.doc = doc
	s.logger.Debug("loaded destination cache",
		logging.String(logging.FieldPath, s.path),
		logging.Int("roots", len(doc)))
	return nil
}
