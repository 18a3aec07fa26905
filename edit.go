package procgraph

import "fmt"

// ApplyPositionEdit returns a copy of g with the node moved to x, y. Edges
// touching the node get fresh endpoint positions; every id, category, index and
// ordinal stays as it was. Structural edits need ToDocument and a new Build.
func ApplyPositionEdit(g *Graph, nodeID string, x, y float64) (*Graph, error) {
	i := g.indexOf(nodeID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, nodeID)
	}

	out := g.shallowCopy()
	out.Nodes[i].X, out.Nodes[i].Y = x, y

	p := out.Nodes[i].Position()
	for j := range out.Edges {
		if out.Edges[j].SourceIndex == i {
			out.Edges[j].Source = p
		}
		if out.Edges[j].TargetIndex == i {
			out.Edges[j].Target = p
		}
	}
	out.Viewport = viewport(out.Nodes)

	return out, nil
}

// ApplyLabelEdit returns a copy of g with the node's display name replaced.
func ApplyLabelEdit(g *Graph, nodeID, name string) (*Graph, error) {
	i := g.indexOf(nodeID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, nodeID)
	}

	out := g.shallowCopy()
	out.Nodes[i].Name = name
	return out, nil
}

// shallowCopy copies the node and edge slices. Sections are shared; they are
// never written after Build.
func (g *Graph) shallowCopy() *Graph {
	out := *g
	out.Nodes = append([]Node(nil), g.Nodes...)
	out.Edges = append([]Edge(nil), g.Edges...)
	return &out
}

// ToDocument writes the graph's positions and names back into a copy of the
// document it was built from. Hints are only touched for nodes whose position
// differs from what their hints already yield, so untouched documents
// round-trip unchanged.
func ToDocument(g *Graph) *ProcessDocument {
	doc := g.doc.Clone()
	if doc == nil {
		doc = &ProcessDocument{ProcessID: g.ProcessID, Version: g.Version}
	}
	doc.Name = g.Name

	for _, n := range g.Nodes {
		if n.Kind == KindState {
			if n.slot >= len(doc.States) {
				continue
			}
			s := &doc.States[n.slot]
			s.Name = n.Name
			s.Hints = syncPosition(s.Hints, n)
			continue
		}
		a := doc.action(n.Kind, n.slot)
		if a == nil {
			continue
		}
		a.Name = n.Name
		a.Hints = syncPosition(a.Hints, n)
	}
	return doc
}

func syncPosition(h PositionHints, n Node) PositionHints {
	if h.X() != n.X {
		h = h.Set(HintX, formatFloat(n.X))
	}
	if h.Y() != n.Y {
		h = h.Set(HintY, formatFloat(n.Y))
	}
	return h
}
