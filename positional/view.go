package positional

// Box is a node's geometry.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EdgeView is an edge with both endpoints resolved to node indices.
type EdgeView struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	SourceIndex int    `json:"source_index"`
	TargetIndex int    `json:"target_index"`
	SourceBox   Box    `json:"source_box"`
	TargetBox   Box    `json:"target_box"`
}

// View resolves every edge against the node list. Edges naming an unknown
// node are left out.
func (g *Graph) View() []EdgeView {
	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, dup := index[n.ID]; !dup {
			index[n.ID] = i
		}
	}

	views := make([]EdgeView, 0, len(g.Edges))
	for _, e := range g.Edges {
		si, ok := index[e.Source]
		if !ok {
			continue
		}
		ti, ok := index[e.Target]
		if !ok {
			continue
		}
		views = append(views, EdgeView{
			ID:          e.ID,
			Source:      e.Source,
			Target:      e.Target,
			SourceIndex: si,
			TargetIndex: ti,
			SourceBox:   g.Nodes[si].box(),
			TargetBox:   g.Nodes[ti].box(),
		})
	}
	return views
}

func (n Node) box() Box {
	return Box{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}
