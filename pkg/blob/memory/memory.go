// Package memory provides an in-memory blob store for tests and development.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/cubbyhole/cubby/pkg/blob"
)

type object struct {
	data        []byte
	contentType string
}

// Store is an in-memory implementation of blob.Store.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New creates an empty in-memory blob store.
func New() *Store {
	return &Store{objects: make(map[string]object)}
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[key] = object{data: buf, contentType: contentType}
	s.mu.Unlock()
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()

	if !ok {
		return nil, blob.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len reports the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Keys returns the keys of all stored objects.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

// ContentType returns the stored content type for key, or "" if absent.
func (s *Store) ContentType(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[key].contentType
}

var _ blob.Store = (*Store)(nil)
