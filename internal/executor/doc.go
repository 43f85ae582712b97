// Package executor performs the resolved move/copy operations.
//
// Each task is an independent, non-retried filesystem operation. A source
// file that vanished between planning and execution stops the run; tasks
// already executed stay executed. Dry runs print the would-be operations and
// touch nothing.
package executor
