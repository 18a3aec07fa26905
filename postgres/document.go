package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/meikuraledutech/procgraph"
)

// SaveDocument stores the document and replaces its resolved snapshot in one
// transaction. Snapshot rows get generated UUIDs; document ids are not unique
// enough to serve as keys.
func (s *PGStore) SaveDocument(ctx context.Context, key string, doc *procgraph.ProcessDocument) error {
	if !procgraph.ValidKey(key) {
		return fmt.Errorf("%w: %q", procgraph.ErrInvalidKey, key)
	}

	body, err := procgraph.EncodeBytes(doc)
	if err != nil {
		return err
	}
	g := procgraph.Build(doc)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO process_documents (key, process_id, version, body, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (key) DO UPDATE
		SET process_id = EXCLUDED.process_id, version = EXCLUDED.version,
		    body = EXCLUDED.body, updated_at = NOW()`,
		key, doc.ProcessID, doc.Version, string(body),
	); err != nil {
		return fmt.Errorf("postgres: upsert document: %w", err)
	}

	// Replace semantics for the snapshot.
	if _, err := tx.Exec(ctx, `DELETE FROM graph_edges WHERE doc_key = $1`, key); err != nil {
		return fmt.Errorf("postgres: delete edges: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM graph_nodes WHERE doc_key = $1`, key); err != nil {
		return fmt.Errorf("postgres: delete nodes: %w", err)
	}

	for _, n := range g.Nodes {
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("postgres: marshal node %s: %w", n.ID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO graph_nodes (id, doc_key, idx, node_id, kind, data) VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), key, n.Index, n.ID, string(n.Kind), data,
		); err != nil {
			return fmt.Errorf("postgres: insert node %s: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("postgres: marshal edge %s: %w", e.LinkID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO graph_edges (id, doc_key, link_id, source_index, source_ordinal, target_index, data)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), key, e.LinkID, e.SourceIndex, e.SourceOrdinal, e.TargetIndex, data,
		); err != nil {
			return fmt.Errorf("postgres: insert edge %s: %w", e.LinkID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// GetDocument reads and parses the stored document.
func (s *PGStore) GetDocument(ctx context.Context, key string) (*procgraph.ProcessDocument, error) {
	var body string
	err := s.db.QueryRow(ctx, `SELECT body FROM process_documents WHERE key = $1`, key).Scan(&body)
	if err != nil {
		if isNoRows(err) {
			return nil, procgraph.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("postgres: get document: %w", err)
	}
	return procgraph.DecodeBytes([]byte(body))
}

// DeleteDocument removes the document; its snapshot rows cascade.
// No error if the key doesn't exist.
func (s *PGStore) DeleteDocument(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM process_documents WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres: delete document: %w", err)
	}
	return nil
}

// ListDocuments returns all stored keys in ascending order.
func (s *PGStore) ListDocuments(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT key FROM process_documents ORDER BY key COLLATE "C"`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list documents: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("postgres: scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows keys: %w", err)
	}
	return keys, nil
}
