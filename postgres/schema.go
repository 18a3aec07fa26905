package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS process_documents (
    key        TEXT PRIMARY KEY,
    process_id TEXT NOT NULL,
    version    TEXT NOT NULL,
    body       TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS graph_nodes (
    id      TEXT PRIMARY KEY,
    doc_key TEXT NOT NULL REFERENCES process_documents(key) ON DELETE CASCADE,
    idx     INTEGER NOT NULL,
    node_id TEXT NOT NULL,
    kind    TEXT NOT NULL,
    data    JSONB NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS graph_edges (
    id             TEXT PRIMARY KEY,
    doc_key        TEXT NOT NULL REFERENCES process_documents(key) ON DELETE CASCADE,
    link_id        TEXT NOT NULL,
    source_index   INTEGER NOT NULL,
    source_ordinal INTEGER NOT NULL,
    target_index   INTEGER NOT NULL,
    data           JSONB NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_graph_nodes_doc_key ON graph_nodes(doc_key, idx);
CREATE INDEX IF NOT EXISTS idx_graph_edges_doc_key ON graph_edges(doc_key, source_index, source_ordinal);
`

// CreateSchema creates the document and snapshot tables if they don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the document and snapshot tables.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS graph_edges, graph_nodes, process_documents CASCADE;`)
	return err
}
