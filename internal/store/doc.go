// Package store defines the storage boundaries of the application: an opaque
// object store holding media blobs and deck documents, and a deck document
// store layered on top of it. Concrete implementations live under
// internal/platform (gcs, deckjson); the rest of the application depends only
// on these interfaces and sentinel errors.
package store
