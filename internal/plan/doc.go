// Package plan builds the proposed operation list for an import run.
//
// Each source file becomes one Task with an action letter, a source path
// relative to the card, a date-derived destination path, and an advisory
// comment. Tasks serialize to a single editable text line and parse back with
// the same grammar, which is what makes the editor-based review loop work.
package plan
