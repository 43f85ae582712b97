// Package review runs the edit-and-reparse exchange with the operator.
//
// The task list renders to a scratch text file, an external editor blocks
// the run while the operator edits it, and the file parses back into tasks.
// Control actions then resolve: a cancel anywhere empties the batch, a first
// marker discards everything before itself, skips drop out, and anything
// unrecognized warns and stays inert. Render, Parse, and Resolve are pure so
// the whole state machine tests without an editor.
package review
