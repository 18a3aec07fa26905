package procgraph_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/meikuraledutech/procgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ignoreUnexported = cmpopts.IgnoreUnexported(procgraph.Graph{}, procgraph.Node{})

func twoNodeDoc() *procgraph.ProcessDocument {
	return &procgraph.ProcessDocument{
		ProcessID: "p",
		Version:   "1",
		Actions: []procgraph.ActionNode{{
			ActionID:     "A1",
			Name:         "First",
			Hints:        procgraph.PositionHints{{Key: "xloc", Value: "5"}, {Key: "yloc", Value: "7"}},
			OutcomeLinks: []procgraph.OutcomeLink{{LinkID: "L1", Outcome: "done", Target: procgraph.ToState("S1")}},
		}},
		States: []procgraph.StateNode{{
			StateID: "S1",
			Name:    "Second",
			Hints:   procgraph.PositionHints{{Key: "xloc", Value: "100"}, {Key: "yloc", Value: "20"}},
		}},
	}
}

func TestBuild_Fixture(t *testing.T) {
	doc, err := procgraph.LoadDocument("testdata/order.xml")
	require.NoError(t, err)

	g := procgraph.Build(doc)

	require.Len(t, g.Nodes, 4)
	assert.Equal(t, "1", g.ProcessID)
	assert.Equal(t, "Test Process", g.Name)

	a1 := g.Nodes[0]
	assert.Equal(t, "A1", a1.ID)
	assert.Equal(t, procgraph.KindPlainAction, a1.Kind)
	assert.Equal(t, 10.0, a1.X)
	assert.Equal(t, 0.0, a1.Y, "unparsable yloc defaults to 0")
	assert.Equal(t, []procgraph.Section{
		{Name: procgraph.SectionInputs, Items: []procgraph.SectionItem{{Name: "com.acme.order.Order", SimpleName: "Order"}}},
		{Name: procgraph.SectionOutputs, Items: []procgraph.SectionItem{}},
		{Name: procgraph.SectionOutcomes, Items: []procgraph.SectionItem{{Name: "com.acme.order.Valid", SimpleName: "Valid"}}},
	}, a1.Sections)

	assert.Equal(t, "A3", g.Nodes[1].ID)
	assert.Equal(t, procgraph.KindEndProcessAction, g.Nodes[1].Kind)
	assert.Equal(t, "A2", g.Nodes[2].ID)
	assert.Equal(t, procgraph.KindAssignAction, g.Nodes[2].Kind)

	s1 := g.Nodes[3]
	assert.Equal(t, procgraph.CategoryState, s1.Category)
	assert.Equal(t, "rounded", s1.Style)
	assert.Equal(t, []procgraph.Section{
		{Name: procgraph.SectionStateData, Items: []procgraph.SectionItem{{Name: "com.acme.order.OrderData", SimpleName: "OrderData"}}},
		{Name: procgraph.SectionEvents, Items: []procgraph.SectionItem{
			{Name: "com.acme.order.Paid", SimpleName: "Paid"},
			{Name: "Timeout", SimpleName: "Timeout"},
		}},
	}, s1.Sections)

	var links []string
	for _, e := range g.Edges {
		links = append(links, e.LinkID)
	}
	assert.Equal(t, []string{"L1", "L3", "E1"}, links)

	l1 := g.Edges[0]
	assert.Equal(t, 0, l1.SourceIndex)
	assert.Equal(t, 3, l1.TargetIndex)
	assert.Equal(t, "order.total > 0", l1.Condition)
	assert.Equal(t, procgraph.Point{X: 10, Y: 0}, l1.Source)
	assert.Equal(t, procgraph.Point{X: 300, Y: 120.5}, l1.Target)

	assert.Equal(t, procgraph.Viewport{Width: 300, Height: 120.5}, g.Viewport)
}

func TestBuild_DoesNotAliasDocument(t *testing.T) {
	doc := twoNodeDoc()
	g := procgraph.Build(doc)

	doc.Actions[0].Name = "changed"
	doc.Actions[0].Hints[0].Value = "999"

	back := procgraph.ToDocument(g)
	assert.Equal(t, "First", back.Actions[0].Name)
	assert.Equal(t, "5", back.Actions[0].Hints[0].Value)
}

func TestApplyPositionEdit(t *testing.T) {
	g := procgraph.Build(twoNodeDoc())
	before := procgraph.Build(twoNodeDoc())

	moved, err := procgraph.ApplyPositionEdit(g, "A1", 40, 60)
	require.NoError(t, err)

	a1, ok := moved.Node("A1")
	require.True(t, ok)
	assert.Equal(t, procgraph.Point{X: 40, Y: 60}, a1.Position())

	require.Len(t, moved.Edges, 1)
	assert.Equal(t, procgraph.Point{X: 40, Y: 60}, moved.Edges[0].Source)
	assert.Equal(t, procgraph.Point{X: 100, Y: 20}, moved.Edges[0].Target)
	assert.Equal(t, g.Edges[0].ResolvedLink, moved.Edges[0].ResolvedLink, "identities unchanged")

	assert.Empty(t, cmp.Diff(g.Nodes[1], moved.Nodes[1], ignoreUnexported))
	assert.Equal(t, procgraph.Viewport{Width: 100, Height: 60}, moved.Viewport)

	// The original snapshot is untouched.
	assert.Empty(t, cmp.Diff(before, g, ignoreUnexported))
}

func TestApplyPositionEdit_Target(t *testing.T) {
	g := procgraph.Build(twoNodeDoc())

	moved, err := procgraph.ApplyPositionEdit(g, "S1", 1, 2)
	require.NoError(t, err)

	assert.Equal(t, procgraph.Point{X: 5, Y: 7}, moved.Edges[0].Source)
	assert.Equal(t, procgraph.Point{X: 1, Y: 2}, moved.Edges[0].Target)
	assert.Equal(t, procgraph.Viewport{Width: 5, Height: 7}, moved.Viewport)
}

func TestApplyPositionEdit_UnknownNode(t *testing.T) {
	g := procgraph.Build(twoNodeDoc())

	_, err := procgraph.ApplyPositionEdit(g, "nope", 1, 1)
	assert.True(t, errors.Is(err, procgraph.ErrNodeNotFound))

	_, err = procgraph.ApplyLabelEdit(g, "nope", "x")
	assert.True(t, errors.Is(err, procgraph.ErrNodeNotFound))
}

func TestApplyLabelEdit(t *testing.T) {
	g := procgraph.Build(twoNodeDoc())

	renamed, err := procgraph.ApplyLabelEdit(g, "S1", "Renamed")
	require.NoError(t, err)

	assert.Equal(t, "Renamed", renamed.Nodes[1].Name)
	assert.Equal(t, "Second", g.Nodes[1].Name)
	assert.Equal(t, g.Edges, renamed.Edges)
}

func TestToDocument(t *testing.T) {
	doc := twoNodeDoc()
	doc.States[0].Hints = procgraph.PositionHints{{Key: "style", Value: "bold"}}

	g := procgraph.Build(doc)
	g, err := procgraph.ApplyPositionEdit(g, "A1", 40, 60)
	require.NoError(t, err)
	g, err = procgraph.ApplyLabelEdit(g, "S1", "Waiting")
	require.NoError(t, err)

	back := procgraph.ToDocument(g)

	assert.Equal(t, procgraph.PositionHints{{Key: "xloc", Value: "40"}, {Key: "yloc", Value: "60"}}, back.Actions[0].Hints)
	assert.Equal(t, "Waiting", back.States[0].Name)
	assert.Equal(t, procgraph.PositionHints{{Key: "style", Value: "bold"}}, back.States[0].Hints,
		"unmoved nodes keep their hints as they were")
	assert.Equal(t, procgraph.KindPlainAction, back.Actions[0].Kind)
}

func TestToDocument_Unedited(t *testing.T) {
	doc, err := procgraph.LoadDocument("testdata/order.xml")
	require.NoError(t, err)

	back := procgraph.ToDocument(procgraph.Build(doc))

	assert.Empty(t, cmp.Diff(doc, back))
}

func TestToDocument_RebuildAfterStructuralEdit(t *testing.T) {
	g := procgraph.Build(twoNodeDoc())

	doc := procgraph.ToDocument(g)
	doc.States = append(doc.States, procgraph.StateNode{StateID: "S2"})
	doc.Actions[0].OutcomeLinks = append(doc.Actions[0].OutcomeLinks,
		procgraph.OutcomeLink{LinkID: "L2", Target: procgraph.ToState("S2")})

	next := procgraph.Build(doc)

	require.Len(t, next.Nodes, 3)
	require.Len(t, next.Edges, 2)
	assert.Equal(t, 2, next.Edges[1].TargetIndex)
	assert.Equal(t, 1, next.Edges[1].SourceOrdinal)
	assert.Len(t, g.Nodes, 2, "earlier snapshot unaffected")
}

func TestGraph_OutboundEdges(t *testing.T) {
	doc, err := procgraph.LoadDocument("testdata/order.xml")
	require.NoError(t, err)
	g := procgraph.Build(doc)

	out := g.OutboundEdges(0)
	require.Len(t, out, 1)
	assert.Equal(t, "L1", out[0].LinkID)
	assert.Empty(t, g.OutboundEdges(1))
}

func TestToDocument_DetachedGraph(t *testing.T) {
	g := &procgraph.Graph{
		ProcessID: "p",
		Version:   "1",
		Nodes:     []procgraph.Node{{ID: "S1", Kind: procgraph.KindState, Category: procgraph.CategoryState}},
	}

	doc := procgraph.ToDocument(g)
	assert.Equal(t, "p", doc.ProcessID)
	assert.Empty(t, doc.States)
}

func TestBuild_NonFiniteHintsEncode(t *testing.T) {
	doc := twoNodeDoc()
	doc.Actions[0].Hints = procgraph.PositionHints{{Key: "xloc", Value: "NaN"}, {Key: "yloc", Value: "Inf"}}

	g := procgraph.Build(doc)
	assert.Equal(t, procgraph.Point{}, g.Nodes[0].Position())

	_, err := json.Marshal(g)
	assert.NoError(t, err)
}
