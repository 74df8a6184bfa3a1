package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"servicedesk/internal/domain/servicerequest"
)

// MemoryBlobStorage keeps blobs in process memory. Contents are lost on
// restart.
type MemoryBlobStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobStorage() *MemoryBlobStorage {
	return &MemoryBlobStorage{blobs: make(map[string][]byte)}
}

func (s *MemoryBlobStorage) Put(_ context.Context, key string, content io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("failed to read blob content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[key]; ok {
		return fmt.Errorf("%w: %s", servicerequest.ErrBlobExists, key)
	}
	s.blobs[key] = data
	return nil
}

func (s *MemoryBlobStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", servicerequest.ErrBlobNotFound, key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemoryBlobStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.blobs, key)
	s.mu.Unlock()
	return nil
}

// Has reports whether key is stored.
func (s *MemoryBlobStorage) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[key]
	return ok
}

// Len returns the number of stored blobs.
func (s *MemoryBlobStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
