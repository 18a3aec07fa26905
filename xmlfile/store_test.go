package xmlfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/meikuraledutech/procgraph"
	"github.com/meikuraledutech/procgraph/storetest"
	"github.com/meikuraledutech/procgraph/xmlfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	storetest.RunStoreContract(t, xmlfile.New(filepath.Join(t.TempDir(), "docs")))
}

func TestStore_ListMissingDirectory(t *testing.T) {
	s := xmlfile.New(filepath.Join(t.TempDir(), "absent"))

	keys, err := s.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStore_ListIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	s := xmlfile.New(dir)
	ctx := context.Background()

	require.NoError(t, s.SaveDocument(ctx, "order", storetest.Document("order")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xml"), 0o755))

	keys, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"order"}, keys)
}

func TestStore_WritesReadableXML(t *testing.T) {
	dir := t.TempDir()
	s := xmlfile.New(dir)
	require.NoError(t, s.SaveDocument(context.Background(), "order", storetest.Document("order")))

	doc, err := procgraph.LoadDocument(filepath.Join(dir, "order.xml"))
	require.NoError(t, err)
	assert.Equal(t, "order", doc.ProcessID)
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.xml"), []byte("<process>"), 0o644))

	_, err := xmlfile.New(dir).GetDocument(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, procgraph.IsKind(err, procgraph.ParseError))
}
