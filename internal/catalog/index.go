package catalog

import (
	"fmt"
	"path"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// IndexEntry pairs a fingerprint with the relative path it was found at.
type IndexEntry struct {
	Fingerprint Fingerprint
	RelPath     string
}

// Index maps a bare filename to every fingerprint/path pair sharing that
// name in one destination root. Filenames are NFC-normalized so cards
// written by macOS (NFD) still match archive entries.
type Index struct {
	byName map[string][]IndexEntry
}

// BuildIndex constructs an index from a cache snapshot. Two entries with the
// same filename and identical fingerprints indicate a corrupted snapshot and
// fail the build; the cache is keyed by relative path, so this cannot happen
// through normal refreshes.
func BuildIndex(entries Entries) (*Index, error) {
	relPaths := make([]string, 0, len(entries))
	for rel := range entries {
		relPaths = append(relPaths, rel)
	}
	sort.Strings(relPaths)

	idx := &Index{byName: make(map[string][]IndexEntry)}
	for _, rel := range relPaths {
		fp := entries[rel]
		name := norm.NFC.String(path.Base(rel))
		for _, existing := range idx.byName[name] {
			if existing.Fingerprint == fp {
				return nil, fmt.Errorf("index consistency: %s and %s share name %q and fingerprint (%d, %s)",
					existing.RelPath, rel, name, fp.Size, fp.Taken)
			}
		}
		idx.byName[name] = append(idx.byName[name], IndexEntry{Fingerprint: fp, RelPath: rel})
	}
	return idx, nil
}

// Lookup returns the relative path of an indexed file with the given bare
// filename and an identical fingerprint. The match is exact on both size and
// timestamp and scoped per filename.
func (idx *Index) Lookup(name string, fp Fingerprint) (string, bool) {
	for _, entry := range idx.byName[norm.NFC.String(name)] {
		if entry.Fingerprint == fp {
			return entry.RelPath, true
		}
	}
	return "", false
}

// Len returns the number of distinct filenames indexed.
func (idx *Index) Len() int {
	return len(idx.byName)
}
