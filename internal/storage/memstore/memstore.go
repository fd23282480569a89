// Package memstore is an in-memory storage.Appender for tests.
package memstore

import (
	"context"
	"sync"

	"example.com/registro/internal/domain"
)

type Store struct {
	mu      sync.Mutex
	records []domain.Record
	err     error
}

func New() *Store { return &Store{} }

func (s *Store) Append(_ context.Context, rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *Store) Ready(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Fail makes every later Append and Ready return err. A nil err restores
// normal behaviour.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Records returns a copy of everything appended so far.
func (s *Store) Records() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out
}
