/*
Package domain contains the core domain models of the FunnelFy editor.

It defines the funnel steps placed on the canvas, the palette and kind enumerations,
the portable document exchanged with persistence and export collaborators, and the
sentinel errors shared by every layer. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Step: A funnel element (social channel, web page, marketing action or conversion event).
  - Document: The portable, handle-free representation of a whole funnel.
  - Tunables: The UX constants (duplicate offset, resize step, scale and zoom bounds).
  - EditorEvent: What the editor emits to its host (save requested, export requested).
*/
package domain
