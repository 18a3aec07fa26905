package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/procgraph"
	"github.com/meikuraledutech/procgraph/postgres"
	"github.com/meikuraledutech/procgraph/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStore connects to PROCGRAPH_TEST_DATABASE_URL and creates the schema.
func newStore(t *testing.T) *postgres.PGStore {
	t.Helper()
	url := os.Getenv("PROCGRAPH_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PROCGRAPH_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := postgres.New(pool)
	require.NoError(t, store.CreateSchema(ctx))
	return store
}

func TestPGStore_Contract(t *testing.T) {
	storetest.RunStoreContract(t, newStore(t))
}

func TestPGStore_Snapshot(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	key := "snapshot-test"
	t.Cleanup(func() { store.DeleteDocument(ctx, key) })

	doc := storetest.Document("snapshot")
	require.NoError(t, store.SaveDocument(ctx, key, doc))

	nodes, err := store.ListNodes(ctx, key)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "A1", nodes[0].ID)
	assert.Equal(t, procgraph.KindPlainAction, nodes[0].Kind)
	assert.Equal(t, 10.0, nodes[0].X)
	assert.Equal(t, "S1", nodes[1].ID)

	edges, err := store.ListEdges(ctx, key)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.Equal(t, "L1", edges[0].LinkID)
	assert.Equal(t, "E1", edges[1].LinkID)
	assert.Equal(t, procgraph.Point{X: 10, Y: 20}, edges[1].Target)

	// A resave replaces the snapshot rather than appending to it.
	doc.States[0].EventLinks = nil
	require.NoError(t, store.SaveDocument(ctx, key, doc))
	edges, err = store.ListEdges(ctx, key)
	require.NoError(t, err)
	assert.Len(t, edges, 1)

	require.NoError(t, store.DeleteDocument(ctx, key))
	nodes, err = store.ListNodes(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}
