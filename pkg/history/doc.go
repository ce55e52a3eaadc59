// Package history keeps a linear undo/redo list of funnel snapshots.
//
// Each entry is an encoded portable document, so snapshots are immutable and never
// share memory with the live graph. Recording after an undo discards the redo tail.
package history
