/*
Package ports defines the driven ports (interfaces) of the funnel editor.

These interfaces decouple the editor from external implementations, so templates can be
persisted in memory, on disk or in Redis, and image exports can be produced by any renderer.

# Key Interfaces

  - DocumentStore: Persists and loads portable funnel documents (templates).
  - ImageCapturer: Rasterizes a region of the canvas for image exports.
  - DistributedLocker: Provides distributed locking for concurrent session access.
*/
package ports
