// Package jsonfile implements repository.AlumniRepository on top of a single
// JSON document on disk (Database.json by default).
//
// FILE FORMAT:
// The file holds one top-level array of objects keyed exactly
// ID, Name, Department, Year, Email, Phone, Address, Job, Company, CGPA
// (see model.Record). It is rewritten in full on every Save, pretty-printed
// with a two-space indent so it stays hand-editable.
//
// WHY WRITE TO A TEMP FILE AND RENAME?
// Truncating the real file and writing into it leaves a window where another
// reader sees half a document. os.Rename within one directory is atomic on
// POSIX filesystems, so readers see either the old array or the new one.
// The temp name comes from xid so two processes sharing a directory never
// pick the same scratch file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/xid"

	"github.com/sakif/alumni-search/internal/model"
	"github.com/sakif/alumni-search/internal/repository"
)

var _ repository.AlumniRepository = (*Store)(nil)

// Store is a file-backed alumni collection.
//
// mu serializes Load against Save inside this process. It does not make
// load-modify-save sequences atomic; that is the caller's business.
type Store struct {
	path string
	mu   sync.RWMutex
}

// New returns a Store for the file at path. The file does not need to exist;
// its directory is created on the first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and decodes the whole collection.
// A missing or empty file is an empty collection.
func (s *Store) Load(ctx context.Context) ([]model.Alumni, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.path)
	s.mu.RUnlock()

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Alumni{}, nil
		}
		return nil, fmt.Errorf("jsonfile: reading %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Alumni{}, nil
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("jsonfile: decoding %s: %w", s.path, err)
	}

	list := make([]model.Alumni, 0, len(records))
	for _, r := range records {
		list = append(list, r.ToAlumni())
	}
	return list, nil
}

// Save overwrites the file with the full collection.
func (s *Store) Save(ctx context.Context, list []model.Alumni) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(model.ToRecords(list), "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encoding collection: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("jsonfile: creating directory %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+"."+xid.New().String()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("jsonfile: writing temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("jsonfile: replacing %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error {
	return nil
}
