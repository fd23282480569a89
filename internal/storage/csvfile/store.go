// Package csvfile stores submission records as lines of an append-only CSV
// file. The file has no header row and is created on first append.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"example.com/registro/internal/domain"
	"example.com/registro/internal/storage"
)

// FileMode is the permission used when the CSV file is created.
const FileMode = 0o644

type Store struct {
	path string
	lock bool
	mu   sync.Mutex
}

// New returns a store appending to path. With lock set, every append also
// holds an exclusive advisory lock on the file, serialising writers from
// other processes.
func New(path string, lock bool) *Store {
	return &Store{path: path, lock: lock}
}

func (s *Store) Path() string { return s.path }

// Append encodes rec as one CSV line and writes it with a single write call
// on a descriptor opened in append mode.
func (s *Store) Append(_ context.Context, rec domain.Record) error {
	line, err := encodeLine(rec.Fields())
	if err != nil {
		return s.fault(storage.ErrWrite, fmt.Errorf("encode: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FileMode)
	if err != nil {
		return s.fault(storage.ErrUnavailable, err)
	}
	if s.lock {
		if err := lockFile(f); err != nil {
			_ = f.Close()
			return s.fault(storage.ErrUnavailable, fmt.Errorf("lock: %w", err))
		}
	}

	_, werr := f.Write(line)
	if s.lock {
		_ = unlockFile(f)
	}
	cerr := f.Close()
	if werr != nil {
		return s.fault(storage.ErrWrite, werr)
	}
	if cerr != nil {
		return s.fault(storage.ErrWrite, fmt.Errorf("close: %w", cerr))
	}
	return nil
}

// Ready reports whether the file (or, before the first append, its
// directory) is currently writable. It never creates the file.
func (s *Store) Ready(_ context.Context) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, FileMode)
	if err == nil {
		return f.Close()
	}
	if !errors.Is(err, os.ErrNotExist) {
		return s.fault(storage.ErrUnavailable, err)
	}

	dir := filepath.Dir(s.path)
	fi, err := os.Stat(dir)
	if err != nil {
		return s.fault(storage.ErrUnavailable, err)
	}
	if !fi.IsDir() {
		return s.fault(storage.ErrUnavailable, fmt.Errorf("%s is not a directory", dir))
	}
	if err := dirWritable(dir); err != nil {
		return s.fault(storage.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) fault(kind, err error) error {
	return &storage.StoreError{Kind: kind, Path: s.path, Err: err}
}

func encodeLine(fields []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
