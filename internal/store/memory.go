package store

import (
	"sync"

	"survey-response-service/internal/model"
)

// MemoryStore keeps the archive in memory. It backs tests and ephemeral
// runs where no durable file is wanted.
type MemoryStore struct {
	mu      sync.Mutex
	archive model.Archive
}

// NewMemoryStore creates an empty in-memory archive store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{archive: model.NewArchive()}
}

// Read returns a copy of the current archive
func (s *MemoryStore) Read() model.Archive {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Archive{
		Responses:    append([]model.ResponseRecord{}, s.archive.Responses...),
		EmailArchive: append([]model.EmailArchiveRecord{}, s.archive.EmailArchive...),
	}
}

// Write replaces the current archive
func (s *MemoryStore) Write(archive model.Archive) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archive = archive
	return nil
}
