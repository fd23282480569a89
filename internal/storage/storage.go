// Package storage defines the persistence capability used by the form
// processor and the errors its implementations report.
package storage

import (
	"context"
	"errors"
	"fmt"

	"example.com/registro/internal/domain"
)

// Appender persists one submission record.
type Appender interface {
	Append(ctx context.Context, rec domain.Record) error
}

// Readier is implemented by stores that can report whether an append
// would currently succeed.
type Readier interface {
	Ready(ctx context.Context) error
}

var (
	// ErrUnavailable means the store could not be opened or locked.
	ErrUnavailable = errors.New("store unavailable")
	// ErrWrite means the store was reached but the record was not written.
	ErrWrite = errors.New("store write failed")
)

// StoreError is the infrastructure fault returned by Appender implementations.
// It matches its Kind (ErrUnavailable or ErrWrite) and the cause with errors.Is.
type StoreError struct {
	Kind error
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *StoreError) Unwrap() []error { return []error{e.Kind, e.Err} }
