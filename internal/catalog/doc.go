// Package catalog tracks what the archive already contains.
//
// A persisted cache maps each destination root to its files' fingerprints
// (size plus taken timestamp), refreshed incrementally against the live
// filesystem: an entry whose live size still matches is reused without
// re-probing, anything else is re-probed, and files that disappeared simply
// drop out because every refresh rebuilds the root's entries from what
// currently exists. A name index built from those entries answers "does this
// exact file already live somewhere in the archive".
//
// The fingerprint is a deliberate cheap proxy for content identity; a
// content hash would be stronger and could replace it behind the same
// lookup.
package catalog
