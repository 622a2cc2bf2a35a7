// Package store persists the user collection as a single JSON document.
package store

import (
	"userd/internal/model"
)

// Document is the entire persisted state: every user in insertion order
// plus the next id to assign. It is read and rewritten in full on each
// mutation; ids are never recycled, even after deletion.
type Document struct {
	Users  []model.User `json:"users"`
	NextID int          `json:"next_id"`
}

// Store provides access to the document. Mutating handlers must hold
// Lock around the whole load-mutate-save sequence so at most one
// mutation runs at a time. Read-only handlers call Load without the
// lock and may observe a document mid-rewrite; that race is a known
// limitation of the flat-file design, kept rather than fixed.
type Store interface {
	Load() (Document, error)
	Save(Document) error
	Lock()
	Unlock()
}

// DefaultDocument is the document written on first access to an empty
// store.
func DefaultDocument() Document {
	return Document{Users: []model.User{}, NextID: 1}
}
