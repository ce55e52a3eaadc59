package domain

import "time"

// EventType defines the category of an editor event.
type EventType string

const (
	EventSaveRequested   EventType = "save_requested"
	EventExportRequested EventType = "export_requested"
)

// ExportKind distinguishes the structural JSON export from the rasterized canvas export.
type ExportKind string

const (
	ExportStructural ExportKind = "structural"
	ExportImage      ExportKind = "image"
)

// EventBase contains common fields for all editor events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SaveRequest is emitted when the user asks to persist the funnel.
type SaveRequest struct {
	EventBase
	Document Document `json:"document"`
}

// ExportRequest is emitted when the user asks to export the funnel.
type ExportRequest struct {
	EventBase
	Kind     ExportKind `json:"kind"`
	Document Document   `json:"document"`
}
