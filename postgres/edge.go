package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meikuraledutech/procgraph"
)

// ListEdges returns the resolved edges saved with the document, ordered by
// source index then ordinal.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListEdges(ctx context.Context, key string) ([]procgraph.Edge, error) {
	rows, err := s.db.Query(ctx,
		`SELECT data FROM graph_edges WHERE doc_key = $1 ORDER BY source_index, source_ordinal`, key)
	if err != nil {
		return nil, fmt.Errorf("postgres: list edges: %w", err)
	}
	defer rows.Close()

	edges := []procgraph.Edge{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("postgres: scan edge: %w", err)
		}
		var e procgraph.Edge
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("postgres: decode edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows edges: %w", err)
	}

	return edges, nil
}
