package procgraph_test

import (
	"testing"

	"github.com/meikuraledutech/procgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Document builders ---

func action(id string, links ...procgraph.OutcomeLink) procgraph.ActionNode {
	return procgraph.ActionNode{ActionID: id, Name: id, OutcomeLinks: links}
}

func state(id string, links ...procgraph.EventLink) procgraph.StateNode {
	return procgraph.StateNode{StateID: id, Name: id, EventLinks: links}
}

func outcome(id string, t procgraph.Target) procgraph.OutcomeLink {
	return procgraph.OutcomeLink{LinkID: id, Outcome: id, Target: t}
}

func event(id string, t procgraph.Target) procgraph.EventLink {
	return procgraph.EventLink{LinkID: id, Event: id, Target: t}
}

// allCategories has one node of every kind, declared out of resolution order.
func allCategories() *procgraph.ProcessDocument {
	return &procgraph.ProcessDocument{
		ProcessID:             "p",
		Version:               "1",
		States:                []procgraph.StateNode{state("s1"), state("s2")},
		AssignActions:         []procgraph.ActionNode{action("assign")},
		ExecuteProcessActions: []procgraph.ActionNode{action("exec")},
		EndProcessActions:     []procgraph.ActionNode{action("end")},
		Actions:               []procgraph.ActionNode{action("plain1"), action("plain2")},
	}
}

// --- Tests ---

func TestResolve_NodeOrder(t *testing.T) {
	res := procgraph.Resolve(allCategories())

	var ids []string
	var kinds []procgraph.NodeKind
	for i, n := range res.Nodes {
		assert.Equal(t, i, n.Index)
		ids = append(ids, n.ID)
		kinds = append(kinds, n.Kind)
	}
	assert.Equal(t, []string{"plain1", "plain2", "end", "exec", "assign", "s1", "s2"}, ids)
	assert.Equal(t, []procgraph.NodeKind{
		procgraph.KindPlainAction,
		procgraph.KindPlainAction,
		procgraph.KindEndProcessAction,
		procgraph.KindExecuteProcessAction,
		procgraph.KindAssignAction,
		procgraph.KindState,
		procgraph.KindState,
	}, kinds)
	assert.Equal(t, procgraph.CategoryState, res.Nodes[5].Category())
	assert.Equal(t, procgraph.CategoryAction, res.Nodes[4].Category())
}

func TestResolve_Stable(t *testing.T) {
	doc := allCategories()
	doc.Actions[0].OutcomeLinks = []procgraph.OutcomeLink{
		outcome("a", procgraph.ToState("s2")),
		outcome("b", procgraph.ToAction("exec")),
	}
	doc.States[1].EventLinks = []procgraph.EventLink{event("c", procgraph.ToAction("plain1"))}

	first := procgraph.Resolve(doc)
	second := procgraph.Resolve(doc)

	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Links, second.Links)
}

func TestResolve_EndToEnd(t *testing.T) {
	doc := &procgraph.ProcessDocument{
		ProcessID: "p",
		Version:   "1",
		States:    []procgraph.StateNode{state("S1")},
		Actions:   []procgraph.ActionNode{action("A1", outcome("L1", procgraph.ToState("S1")))},
	}

	res := procgraph.Resolve(doc)

	require.Len(t, res.Nodes, 2)
	assert.Equal(t, "A1", res.Nodes[0].ID)
	assert.Equal(t, "S1", res.Nodes[1].ID)
	require.Len(t, res.Links, 1)
	assert.Equal(t, procgraph.ResolvedLink{
		LinkID:         "L1",
		Label:          "L1",
		SourceID:       "A1",
		SourceCategory: procgraph.CategoryAction,
		SourceIndex:    0,
		SourceOrdinal:  0,
		TargetID:       "S1",
		TargetCategory: procgraph.CategoryState,
		TargetIndex:    1,
	}, res.Links[0])
	assert.Empty(t, res.Skipped)
}

func TestResolve_SkipsUnconnectedAndDangling(t *testing.T) {
	doc := &procgraph.ProcessDocument{
		ProcessID: "p",
		Version:   "1",
		Actions: []procgraph.ActionNode{action("A1",
			outcome("none", procgraph.Target{}),
			outcome("empty", procgraph.ToState("")),
			outcome("ghost", procgraph.ToAction("nope")),
			outcome("ok", procgraph.ToState("S1")),
		)},
		States: []procgraph.StateNode{state("S1",
			event("gone", procgraph.ToState("S404")),
			event("back", procgraph.ToAction("A1")),
		)},
	}

	res := procgraph.Resolve(doc)

	require.Len(t, res.Links, 2)
	assert.Equal(t, "ok", res.Links[0].LinkID)
	assert.Equal(t, 3, res.Links[0].SourceOrdinal, "ordinal counts skipped links too")
	assert.Equal(t, "back", res.Links[1].LinkID)
	assert.Equal(t, 1, res.Links[1].SourceOrdinal)

	require.Len(t, res.Skipped, 4)
	assert.Equal(t, []procgraph.SkipReason{
		procgraph.SkipUnconnected,
		procgraph.SkipUnconnected,
		procgraph.SkipDangling,
		procgraph.SkipDangling,
	}, []procgraph.SkipReason{res.Skipped[0].Reason, res.Skipped[1].Reason, res.Skipped[2].Reason, res.Skipped[3].Reason})
	assert.Equal(t, "nope", res.Skipped[2].TargetID)
	assert.Equal(t, "S1", res.Skipped[3].SourceID)
}

func TestResolve_LinkOrder(t *testing.T) {
	doc := &procgraph.ProcessDocument{
		ProcessID: "p",
		Version:   "1",
		States: []procgraph.StateNode{
			state("s1", event("s1-a", procgraph.ToAction("a1"))),
			state("s2", event("s2-a", procgraph.ToAction("a1")), event("s2-b", procgraph.ToState("s1"))),
		},
		AssignActions: []procgraph.ActionNode{action("a2", outcome("a2-a", procgraph.ToState("s2")))},
		Actions: []procgraph.ActionNode{action("a1",
			outcome("a1-a", procgraph.ToState("s1")),
			outcome("a1-b", procgraph.ToAction("a2")),
		)},
	}

	res := procgraph.Resolve(doc)

	var order []string
	var ordinals []int
	for _, l := range res.Links {
		order = append(order, l.LinkID)
		ordinals = append(ordinals, l.SourceOrdinal)
	}
	assert.Equal(t, []string{"a1-a", "a1-b", "a2-a", "s1-a", "s2-a", "s2-b"}, order)
	assert.Equal(t, []int{0, 1, 0, 0, 0, 1}, ordinals)
}

func TestResolve_SameNamedOutcomes(t *testing.T) {
	doc := &procgraph.ProcessDocument{
		ProcessID: "p",
		Version:   "1",
		Actions: []procgraph.ActionNode{action("a",
			procgraph.OutcomeLink{LinkID: "x", Outcome: "retry", Target: procgraph.ToState("s")},
			procgraph.OutcomeLink{LinkID: "y", Outcome: "retry", Target: procgraph.ToState("s")},
		)},
		States: []procgraph.StateNode{state("s")},
	}

	res := procgraph.Resolve(doc)

	require.Len(t, res.Links, 2)
	assert.Equal(t, 0, res.Links[0].SourceOrdinal)
	assert.Equal(t, 1, res.Links[1].SourceOrdinal)
	assert.Equal(t, res.Links[0].Label, res.Links[1].Label)
}

func TestResolve_DuplicateIDFirstWins(t *testing.T) {
	doc := &procgraph.ProcessDocument{
		ProcessID: "p",
		Version:   "1",
		Actions: []procgraph.ActionNode{
			action("src", outcome("l", procgraph.ToAction("dup"))),
			action("dup"),
			action("dup"),
		},
	}

	res := procgraph.Resolve(doc)

	assert.Len(t, res.Nodes, 3, "duplicates are still nodes")
	i, ok := res.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	require.Len(t, res.Links, 1)
	assert.Equal(t, 1, res.Links[0].TargetIndex)
}

func TestResolve_SharedIDAcrossKinds(t *testing.T) {
	doc := &procgraph.ProcessDocument{
		ProcessID: "p",
		Version:   "1",
		Actions: []procgraph.ActionNode{action("x",
			outcome("to-state", procgraph.ToState("x")),
			outcome("to-action", procgraph.ToAction("x")),
		)},
		States: []procgraph.StateNode{state("x")},
	}

	res := procgraph.Resolve(doc)

	require.Len(t, res.Links, 2)
	assert.Equal(t, 1, res.Links[0].TargetIndex)
	assert.Equal(t, procgraph.CategoryState, res.Links[0].TargetCategory)
	assert.Equal(t, 0, res.Links[1].TargetIndex)
	assert.Equal(t, procgraph.CategoryAction, res.Links[1].TargetCategory)
}

func TestResolve_KindMismatchFallsBack(t *testing.T) {
	doc := &procgraph.ProcessDocument{
		ProcessID: "p",
		Version:   "1",
		Actions: []procgraph.ActionNode{
			action("a", outcome("l", procgraph.ToState("b"))),
			action("b"),
		},
	}

	res := procgraph.Resolve(doc)

	require.Len(t, res.Links, 1)
	assert.Equal(t, 1, res.Links[0].TargetIndex)
	assert.Equal(t, procgraph.CategoryAction, res.Links[0].TargetCategory)
}

func TestResolve_Empty(t *testing.T) {
	res := procgraph.Resolve(&procgraph.ProcessDocument{ProcessID: "p", Version: "1"})
	assert.Empty(t, res.Nodes)
	assert.Empty(t, res.Links)
}
