// Package storetest holds the behaviour every procgraph.Store must share.
package storetest

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/meikuraledutech/procgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Document returns a small two-node document used by the contract.
func Document(id string) *procgraph.ProcessDocument {
	return &procgraph.ProcessDocument{
		ProcessID:    id,
		Version:      "1",
		Name:         "contract " + id,
		EntryStateID: "S1",
		Actions: []procgraph.ActionNode{{
			ActionID: "A1",
			Name:     "Check",
			Hints:    procgraph.PositionHints{}.WithPosition(10, 20),
			OutcomeLinks: []procgraph.OutcomeLink{
				{LinkID: "L1", Outcome: "ok", Condition: "total > 0", Target: procgraph.ToState("S1")},
			},
		}},
		States: []procgraph.StateNode{{
			StateID:    "S1",
			Name:       "Done",
			EventLinks: []procgraph.EventLink{{LinkID: "E1", Event: "retry", Target: procgraph.ToAction("A1")}},
		}},
	}
}

// RunStoreContract checks that store honours the procgraph.Store contract.
// Keys are made unique per run so shared backends can be used.
func RunStoreContract(t *testing.T, store procgraph.Store) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405.000000000") + "-"

	t.Run("Save and Get", func(t *testing.T) {
		key := prefix + "order"
		require.NoError(t, store.SaveDocument(ctx, key, Document("order")))

		got, err := store.GetDocument(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "order", got.ProcessID)
		assert.Equal(t, procgraph.KindPlainAction, got.Actions[0].Kind)
		assert.Equal(t, procgraph.ToState("S1"), got.Actions[0].OutcomeLinks[0].Target)
		assert.Equal(t, 10.0, got.Actions[0].Hints.X())

		g := procgraph.Build(got)
		assert.Len(t, g.Nodes, 2)
		assert.Len(t, g.Edges, 2)
	})

	t.Run("Save replaces", func(t *testing.T) {
		key := prefix + "replace"
		require.NoError(t, store.SaveDocument(ctx, key, Document("first")))
		require.NoError(t, store.SaveDocument(ctx, key, Document("second")))

		got, err := store.GetDocument(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", got.ProcessID)
	})

	t.Run("Get missing", func(t *testing.T) {
		_, err := store.GetDocument(ctx, prefix+"missing")
		assert.ErrorIs(t, err, procgraph.ErrDocumentNotFound)
	})

	t.Run("Invalid key", func(t *testing.T) {
		err := store.SaveDocument(ctx, "a/b", Document("bad"))
		assert.ErrorIs(t, err, procgraph.ErrInvalidKey)
	})

	t.Run("Delete", func(t *testing.T) {
		key := prefix + "delete"
		require.NoError(t, store.SaveDocument(ctx, key, Document("delete")))
		require.NoError(t, store.DeleteDocument(ctx, key))

		_, err := store.GetDocument(ctx, key)
		assert.ErrorIs(t, err, procgraph.ErrDocumentNotFound)

		assert.NoError(t, store.DeleteDocument(ctx, key), "deleting twice is a no-op")
	})

	t.Run("List", func(t *testing.T) {
		b, a := prefix+"list-b", prefix+"list-a"
		require.NoError(t, store.SaveDocument(ctx, b, Document("b")))
		require.NoError(t, store.SaveDocument(ctx, a, Document("a")))

		keys, err := store.ListDocuments(ctx)
		require.NoError(t, err)
		assert.True(t, sort.StringsAreSorted(keys), "keys are sorted: %v", keys)
		assert.Contains(t, keys, a)
		assert.Contains(t, keys, b)
		assert.NotContains(t, keys, prefix+"delete")
	})
}
