// Package store defines the document store interface and its backends.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Update when the target document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is a stored record together with its store-assigned id.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is the interface that all backing stores must implement.
// It operates on named collections, where each collection contains
// documents keyed by a store-assigned identifier.
type Store interface {
	// GetAll returns every document in a collection ordered by id.
	GetAll(ctx context.Context, collection string) ([]Document, error)

	// Get returns a single document by id, or nil if not found.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Add inserts a document under a freshly generated id and returns it.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)

	// Update merges the given fields into an existing document.
	// Returns an error wrapping ErrNotFound if the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the resources held by the backend.
	Close() error
}

// merge copies every field of patch into doc.
func merge(doc, patch map[string]any) map[string]any {
	if doc == nil {
		doc = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		doc[k] = v
	}
	return doc
}
