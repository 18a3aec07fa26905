package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meikuraledutech/procgraph"
)

// ListNodes returns the resolved nodes saved with the document, in index order.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListNodes(ctx context.Context, key string) ([]procgraph.Node, error) {
	rows, err := s.db.Query(ctx,
		`SELECT data FROM graph_nodes WHERE doc_key = $1 ORDER BY idx`, key)
	if err != nil {
		return nil, fmt.Errorf("postgres: list nodes: %w", err)
	}
	defer rows.Close()

	nodes := []procgraph.Node{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("postgres: scan node: %w", err)
		}
		var n procgraph.Node
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("postgres: decode node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows nodes: %w", err)
	}

	return nodes, nil
}
