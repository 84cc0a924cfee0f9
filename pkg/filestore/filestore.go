// Package filestore persists the store document as one JSON file plus a
// sibling directory of image files. Every mutation is a full
// load-modify-write cycle serialized behind one mutex, so concurrent
// requests cannot lose each other's updates.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrImageNotFound is returned when a referenced image file does not
	// exist under the images directory.
	ErrImageNotFound = errors.New("filestore: image not found")

	// ErrUnsafeFilename is returned for filenames that would escape the
	// images directory. Filenames are opaque keys, never paths.
	ErrUnsafeFilename = errors.New("filestore: unsafe filename")
)

const (
	documentName = "store.json"
	imagesDir    = "images"
)

type FileStore struct {
	mu      sync.Mutex
	dataDir string
}

func New(dataDir string) *FileStore {
	return &FileStore{dataDir: dataDir}
}

func (s *FileStore) documentPath() string {
	return filepath.Join(s.dataDir, documentName)
}

func (s *FileStore) imagesPath() string {
	return filepath.Join(s.dataDir, imagesDir)
}

// Load reads the current document, seeding an empty one on first access.
func (s *FileStore) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Mutate runs fn against the current document and persists the result.
// The whole cycle holds the store lock: one writer at a time, and the
// call does not return until the write hit disk or failed. An error from
// fn aborts the cycle without touching the file.
func (s *FileStore) Mutate(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.persist(doc)
}

func (s *FileStore) load() (*Document, error) {
	raw, err := os.ReadFile(s.documentPath())
	if errors.Is(err, os.ErrNotExist) {
		doc := NewDocument()
		if err := s.persist(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse store document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// persist writes the document atomically: marshal, write to a temp file
// in the same directory, rename over the old file.
func (s *FileStore) persist(doc *Document) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store document: %w", err)
	}

	tmp, err := os.CreateTemp(s.dataDir, documentName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write store document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close store document: %w", err)
	}
	if err := os.Rename(tmpName, s.documentPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store document: %w", err)
	}
	return nil
}
