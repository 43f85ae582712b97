package catalog

import (
	"encoding/json"
	"fmt"
)

// Fingerprint identifies file content by byte size and taken timestamp.
// Two files are considered the same content iff both fields are equal.
type Fingerprint struct {
	Size  int64
	Taken string
}

// MarshalJSON renders the persisted form: a two-element array
// [size, timestamp].
func (f Fingerprint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{f.Size, f.Taken})
}

// UnmarshalJSON parses the persisted two-element array form.
func (f *Fingerprint) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("fingerprint: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("fingerprint: expected [size, timestamp], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &f.Size); err != nil {
		return fmt.Errorf("fingerprint size: %w", err)
	}
	if f.Size < 0 {
		return fmt.Errorf("fingerprint size: negative value %d", f.Size)
	}
	if err := json.Unmarshal(raw[1], &f.Taken); err != nil {
		return fmt.Errorf("fingerprint timestamp: %w", err)
	}
	return nil
}

// Entries maps a POSIX-style relative path to its fingerprint, scoped to one
// destination root.
type Entries map[string]Fingerprint

// Document is the full persisted cache: destination root (absolute path) to
// that root's entries.
type Document map[string]Entries
