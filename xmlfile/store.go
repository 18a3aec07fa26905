// Package xmlfile stores process documents as XML files in one directory.
package xmlfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/meikuraledutech/procgraph"
)

const ext = ".xml"

// Store implements procgraph.Store with one <key>.xml file per document.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(key string) (string, error) {
	if !procgraph.ValidKey(key) {
		return "", fmt.Errorf("%w: %q", procgraph.ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+ext), nil
}

// SaveDocument writes the document atomically.
func (s *Store) SaveDocument(ctx context.Context, key string, doc *procgraph.ProcessDocument) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &procgraph.DocumentError{Kind: procgraph.WriteError, Path: s.dir, Err: err}
	}
	return procgraph.Save(doc, p)
}

// GetDocument reads and parses the document stored under key.
func (s *Store) GetDocument(ctx context.Context, key string) (*procgraph.ProcessDocument, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	doc, err := procgraph.LoadDocument(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, procgraph.ErrDocumentNotFound
	}
	return doc, err
}

// DeleteDocument removes the file for key.
func (s *Store) DeleteDocument(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("xmlfile: delete %s: %w", key, err)
	}
	return nil
}

// ListDocuments returns the keys of all .xml files in the directory.
func (s *Store) ListDocuments(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("xmlfile: list: %w", err)
	}

	keys := []string{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		keys = append(keys, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(keys)
	return keys, nil
}
