package procgraph

// Graph is an immutable, renderable snapshot of a resolved document.
// Edits return a new Graph; a Graph is never changed after Build returns it.
type Graph struct {
	ProcessID string   `json:"process_id" yaml:"process_id"`
	Version   string   `json:"version" yaml:"version"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes     []Node   `json:"nodes" yaml:"nodes"`
	Edges     []Edge   `json:"edges" yaml:"edges"`
	Viewport  Viewport `json:"viewport" yaml:"viewport"`

	doc *ProcessDocument
}

// Node is a renderable action or state. Index equals its position in
// Graph.Nodes and is the address edges use.
type Node struct {
	Index    int       `json:"index" yaml:"index"`
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Kind     NodeKind  `json:"kind" yaml:"kind"`
	Category Category  `json:"category" yaml:"category"`
	X        float64   `json:"x" yaml:"x"`
	Y        float64   `json:"y" yaml:"y"`
	Style    string    `json:"style,omitempty" yaml:"style,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`

	slot int
}

// Section is one metadata list shown inside a node.
type Section struct {
	Name  string        `json:"name" yaml:"name"`
	Items []SectionItem `json:"items" yaml:"items"`
}

// SectionItem is a qualified name and its short form.
type SectionItem struct {
	Name       string `json:"name" yaml:"name"`
	SimpleName string `json:"simple_name" yaml:"simple_name"`
}

// Section names.
const (
	SectionInputs    = "inputs"
	SectionOutputs   = "outputs"
	SectionOutcomes  = "outcomes"
	SectionStateData = "stateData"
	SectionEvents    = "events"
)

// Point is a node position.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Edge is a resolved link plus the positions of both endpoints.
type Edge struct {
	ResolvedLink `yaml:",inline"`
	Source       Point `json:"source" yaml:"source"`
	Target       Point `json:"target" yaml:"target"`
}

// Viewport is the extent of all node positions; the origin is 0,0.
type Viewport struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Build resolves the document and produces its graph.
func Build(doc *ProcessDocument) *Graph {
	g, _ := BuildResolution(doc)
	return g
}

// BuildResolution is Build that also hands back the resolution pass, for
// callers that report skipped links.
func BuildResolution(doc *ProcessDocument) (*Graph, *Resolution) {
	res := Resolve(doc)

	g := &Graph{
		ProcessID: doc.ProcessID,
		Version:   doc.Version,
		Name:      doc.Name,
		Nodes:     make([]Node, 0, len(res.Nodes)),
		Edges:     make([]Edge, 0, len(res.Links)),
		doc:       doc.Clone(),
	}

	for _, ref := range res.Nodes {
		g.Nodes = append(g.Nodes, buildNode(g.doc, ref))
	}
	for _, l := range res.Links {
		g.Edges = append(g.Edges, Edge{
			ResolvedLink: l,
			Source:       g.Nodes[l.SourceIndex].Position(),
			Target:       g.Nodes[l.TargetIndex].Position(),
		})
	}
	g.Viewport = viewport(g.Nodes)

	return g, res
}

func buildNode(doc *ProcessDocument, ref NodeRef) Node {
	n := Node{
		Index:    ref.Index,
		ID:       ref.ID,
		Kind:     ref.Kind,
		Category: ref.Category(),
		slot:     ref.Slot,
	}

	var hints PositionHints
	if ref.Kind == KindState {
		s := doc.States[ref.Slot]
		n.Name = s.Name
		hints = s.Hints
		n.Sections = []Section{
			section(SectionStateData, s.Metadata.StateDataNames()),
			section(SectionEvents, s.Metadata.EventNames()),
		}
	} else {
		a := doc.action(ref.Kind, ref.Slot)
		n.Name = a.Name
		hints = a.Hints
		n.Sections = []Section{
			section(SectionInputs, a.Metadata.InputNames()),
			section(SectionOutputs, a.Metadata.OutputNames()),
			section(SectionOutcomes, a.Metadata.OutcomeNames()),
		}
	}

	n.X, n.Y = hints.X(), hints.Y()
	n.Style = hints.Style()
	return n
}

func section(name string, names []string) Section {
	items := make([]SectionItem, 0, len(names))
	for _, q := range names {
		items = append(items, SectionItem{Name: q, SimpleName: SimpleName(q)})
	}
	return Section{Name: name, Items: items}
}

// viewport returns the maximum x and y; nodes are not assumed sorted.
func viewport(nodes []Node) Viewport {
	var v Viewport
	for _, n := range nodes {
		if n.X > v.Width {
			v.Width = n.X
		}
		if n.Y > v.Height {
			v.Height = n.Y
		}
	}
	return v
}

// Position returns the node's location.
func (n Node) Position() Point { return Point{X: n.X, Y: n.Y} }

// Node returns the first node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	i := g.indexOf(id)
	if i < 0 {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// OutboundEdges returns the edges leaving the node at index, in ordinal order.
func (g *Graph) OutboundEdges(index int) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.SourceIndex == index {
			out = append(out, e)
		}
	}
	return out
}

func (g *Graph) indexOf(id string) int {
	for i, n := range g.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (d *ProcessDocument) action(kind NodeKind, slot int) *ActionNode {
	for _, g := range d.actionGroups() {
		if g.kind == kind && slot < len(*g.nodes) {
			return &(*g.nodes)[slot]
		}
	}
	return nil
}
