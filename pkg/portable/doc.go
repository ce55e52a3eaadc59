// Package portable converts between the live graph and the portable funnel document.
//
// The document is the only shape that crosses the boundary of the editor: history
// snapshots, structural exports, persisted templates and the HTTP/MCP surfaces all use it.
// Presentation handles are never part of it; glyphs are re-resolved from icon tags on load.
package portable
