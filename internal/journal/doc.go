// Package journal records executed import batches in a local SQLite
// database for the history command.
//
// The journal is reporting only: nothing reads it to reverse or replay
// operations. Disabling it in config removes the dependency entirely.
package journal
