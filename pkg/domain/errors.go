package domain

import "errors"

// ErrStepNotFound is returned when an operation references a step id that is not in the graph.
var ErrStepNotFound = errors.New("step not found")

// ErrSelfLoop is returned when a connection would link a step to itself.
var ErrSelfLoop = errors.New("connection to self")

// ErrDuplicateConnection is returned when the connection already exists.
var ErrDuplicateConnection = errors.New("connection already exists")

// ErrCycle is returned when a connection would close a loop in the funnel.
var ErrCycle = errors.New("connection would create a cycle")

// ErrUnknownKind is returned when a step kind is not one of the supported kinds.
var ErrUnknownKind = errors.New("unknown step kind")

// ErrUnknownColor is returned when a color scheme is not part of the palette.
var ErrUnknownColor = errors.New("unknown color scheme")

// ErrDocumentNotFound is returned when a document id cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrInvalidDocument is returned when a portable document cannot be hydrated into a graph.
var ErrInvalidDocument = errors.New("invalid document")

// ErrSessionNotFound is returned when a live editor session does not exist.
var ErrSessionNotFound = errors.New("session not found")
