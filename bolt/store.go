// Package bolt implements procgraph.Store on an embedded bbolt database.
package bolt

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/procgraph"
	"go.etcd.io/bbolt"
)

// documentBucketKey is the bucket holding documents. Keys are document keys,
// values are the documents' XML text.
var documentBucketKey = []byte("documents")

// Store implements procgraph.Store using bbolt.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("bolt: open %s: %w", path, err)
	}
	return New(db), nil
}

// New creates a Store on an already opened database.
func New(db *bbolt.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocument stores the document's XML under key.
func (s *Store) SaveDocument(ctx context.Context, key string, doc *procgraph.ProcessDocument) error {
	if !procgraph.ValidKey(key) {
		return fmt.Errorf("%w: %q", procgraph.ErrInvalidKey, key)
	}
	body, err := procgraph.EncodeBytes(doc)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(documentBucketKey)
		if err != nil {
			return fmt.Errorf("bolt: bucket: %w", err)
		}
		return b.Put([]byte(key), body)
	})
}

// GetDocument loads and parses the document stored under key.
func (s *Store) GetDocument(ctx context.Context, key string) (*procgraph.ProcessDocument, error) {
	var body []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(documentBucketKey); b != nil {
			// Values are only valid for the life of the transaction.
			if v := b.Get([]byte(key)); v != nil {
				body = append([]byte(nil), v...)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bolt: get %s: %w", key, err)
	}
	if body == nil {
		return nil, procgraph.ErrDocumentNotFound
	}
	return procgraph.DecodeBytes(body)
}

// DeleteDocument removes the document stored under key.
func (s *Store) DeleteDocument(ctx context.Context, key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(documentBucketKey)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// ListDocuments returns all keys; bbolt iterates them in byte order.
func (s *Store) ListDocuments(ctx context.Context) ([]string, error) {
	keys := []string{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(documentBucketKey)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("bolt: list: %w", err)
	}
	return keys, nil
}
