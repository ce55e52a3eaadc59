// Package controller turns pointer and keyboard input into graph mutations.
//
// The controller owns the transient editor state: the active tool, the current
// selection, the gesture in progress, the pending connection and the viewport.
// Gestures only preview their effect; the graph is mutated and a history snapshot
// recorded once, when the gesture is released.
package controller
