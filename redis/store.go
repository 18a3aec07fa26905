// Package redis implements procgraph.Store on Redis. Each document is kept as
// its XML text under prefix+key; a set under prefix+"index" tracks the keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/meikuraledutech/procgraph"
	backend "github.com/redis/go-redis/v9"
)

// Store implements procgraph.Store using Redis.
type Store struct {
	client *backend.Client
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix for documents.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store connected to address.
func New(address, password string, db int, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "procgraph:document:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(key string) string { return s.prefix + key }

func (s *Store) indexKey() string { return s.prefix + "index" }

// checkKey rejects keys that would collide with the index set.
func checkKey(key string) error {
	if !procgraph.ValidKey(key) || key == "index" {
		return fmt.Errorf("%w: %q", procgraph.ErrInvalidKey, key)
	}
	return nil
}

// SaveDocument stores the document and indexes its key in one transaction.
func (s *Store) SaveDocument(ctx context.Context, key string, doc *procgraph.ProcessDocument) error {
	if err := checkKey(key); err != nil {
		return err
	}
	body, err := procgraph.EncodeBytes(doc)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Set(ctx, s.key(key), body, 0)
		pipe.SAdd(ctx, s.indexKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: save %s: %w", key, err)
	}
	return nil
}

// GetDocument loads and parses the document stored under key.
func (s *Store) GetDocument(ctx context.Context, key string) (*procgraph.ProcessDocument, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	body, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, procgraph.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return procgraph.DecodeBytes(body)
}

// DeleteDocument removes the document and its index entry.
func (s *Store) DeleteDocument(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, s.key(key))
		pipe.SRem(ctx, s.indexKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: delete %s: %w", key, err)
	}
	return nil
}

// ListDocuments returns the indexed keys in ascending order.
func (s *Store) ListDocuments(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: list: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
