package store

import "sync"

// MemStore is an in-memory Store used as a test double for handlers.
// LoadErr and SaveErr, when set, are returned by the corresponding
// method to simulate backing-file faults.
type MemStore struct {
	mu  sync.Mutex
	doc Document

	LoadErr error
	SaveErr error
}

// NewMemStore creates a MemStore holding the default document.
func NewMemStore() *MemStore {
	return &MemStore{doc: DefaultDocument()}
}

func (s *MemStore) Load() (Document, error) {
	if s.LoadErr != nil {
		return Document{}, s.LoadErr
	}
	// Copy the users slice so callers never alias stored state.
	doc := s.doc
	doc.Users = append(doc.Users[:0:0], s.doc.Users...)
	return doc, nil
}

func (s *MemStore) Save(doc Document) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	doc.Users = append(doc.Users[:0:0], doc.Users...)
	s.doc = doc
	return nil
}

func (s *MemStore) Lock() { s.mu.Lock() }

func (s *MemStore) Unlock() { s.mu.Unlock() }
