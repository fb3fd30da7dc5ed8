package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in process memory. Suitable for a single
// instance; state is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	uploads map[int64]*UploadSession
	deletes map[int64]*DeleteSession
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		uploads: make(map[int64]*UploadSession),
		deletes: make(map[int64]*DeleteSession),
	}
}

func (m *MemoryStore) GetUpload(_ context.Context, userID int64) (*UploadSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.uploads[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.clone(), nil
}

func (m *MemoryStore) PutUpload(_ context.Context, userID int64, s *UploadSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads[userID] = s.clone()
	return nil
}

func (m *MemoryStore) DropUpload(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.uploads, userID)
	return nil
}

func (m *MemoryStore) GetDelete(_ context.Context, userID int64) (*DeleteSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.deletes[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.clone(), nil
}

func (m *MemoryStore) PutDelete(_ context.Context, userID int64, s *DeleteSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes[userID] = s.clone()
	return nil
}

func (m *MemoryStore) DropDelete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.deletes, userID)
	return nil
}
