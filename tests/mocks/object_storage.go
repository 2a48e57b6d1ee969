package mocks

import (
	"context"
	"io"
	"sync"
	"testing"
)

type ObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string

	UploadErr error
	DeleteErr error
}

func NewObjectStorage() *ObjectStorage {
	return &ObjectStorage{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *ObjectStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	if s.UploadErr != nil {
		return s.UploadErr
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *ObjectStorage) DeleteFile(ctx context.Context, key string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	delete(s.types, key)
	return nil
}

func (s *ObjectStorage) ObjectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.objects)
}

func (s *ObjectStorage) AssertObjectCount(t *testing.T, expected int) *ObjectStorage {
	t.Helper()

	if got := s.ObjectCount(); got != expected {
		t.Errorf("expected %d stored objects, but got %d", expected, got)
	}
	return s
}
