package procgraph

// SkipReason explains why a link produced no edge.
type SkipReason string

const (
	SkipUnconnected SkipReason = "unconnected"
	SkipDangling    SkipReason = "dangling"
)

// NodeRef is one entry of the unified node list.
type NodeRef struct {
	Index int
	ID    string
	Kind  NodeKind
	// Slot is the position inside the document collection the node came from.
	Slot int
}

// Category returns the node's category.
func (n NodeRef) Category() Category { return n.Kind.Category() }

// ResolvedLink is a link whose target id has been turned into an index.
type ResolvedLink struct {
	LinkID         string   `json:"id" yaml:"id"`
	Label          string   `json:"label,omitempty" yaml:"label,omitempty"`
	Condition      string   `json:"condition,omitempty" yaml:"condition,omitempty"`
	SourceID       string   `json:"source_id" yaml:"source_id"`
	SourceCategory Category `json:"source_category" yaml:"source_category"`
	SourceIndex    int      `json:"source_index" yaml:"source_index"`
	SourceOrdinal  int      `json:"source_ordinal" yaml:"source_ordinal"`
	TargetID       string   `json:"target_id" yaml:"target_id"`
	TargetCategory Category `json:"target_category" yaml:"target_category"`
	TargetIndex    int      `json:"target_index" yaml:"target_index"`
}

// SkippedLink records a link the resolver dropped.
type SkippedLink struct {
	SourceID    string
	SourceIndex int
	LinkID      string
	Ordinal     int
	TargetID    string
	Reason      SkipReason
}

// Resolution is the output of one resolution pass.
type Resolution struct {
	Nodes   []NodeRef
	Links   []ResolvedLink
	Skipped []SkippedLink

	index map[string]int
	byCat map[Category]map[string]int
}

// Lookup returns the index of the first node carrying id.
func (r *Resolution) Lookup(id string) (int, bool) {
	i, ok := r.index[id]
	return i, ok
}

// lookupTarget prefers the first node of the category the target names and
// falls back to the first node of any category.
func (r *Resolution) lookupTarget(t Target) (int, bool) {
	cat := CategoryAction
	if t.Kind == TargetState {
		cat = CategoryState
	}
	if i, ok := r.byCat[cat][t.ID]; ok {
		return i, true
	}
	return r.Lookup(t.ID)
}

// Resolve flattens the document into one indexed node list and resolves every
// outcome and event link against it. Nodes are ordered plain, end-process,
// execute-process and assign actions, then states. Links without a target or
// with an unknown target are skipped, never reported as errors. When an id is
// used more than once the first node carrying it is the one links reach.
func Resolve(doc *ProcessDocument) *Resolution {
	r := &Resolution{
		index: make(map[string]int),
		byCat: map[Category]map[string]int{
			CategoryAction: {},
			CategoryState:  {},
		},
	}

	for _, g := range doc.actionGroups() {
		for slot, a := range *g.nodes {
			r.add(a.ActionID, g.kind, slot)
		}
	}
	for slot, s := range doc.States {
		r.add(s.StateID, KindState, slot)
	}

	i := 0
	for _, g := range doc.actionGroups() {
		for _, a := range *g.nodes {
			for ord, l := range a.OutcomeLinks {
				r.link(i, ord, l.LinkID, l.Outcome, l.Condition, l.Target)
			}
			i++
		}
	}
	for _, s := range doc.States {
		for ord, l := range s.EventLinks {
			r.link(i, ord, l.LinkID, l.Event, l.Condition, l.Target)
		}
		i++
	}

	return r
}

func (r *Resolution) add(id string, kind NodeKind, slot int) {
	idx := len(r.Nodes)
	r.Nodes = append(r.Nodes, NodeRef{Index: idx, ID: id, Kind: kind, Slot: slot})
	if _, dup := r.index[id]; !dup {
		r.index[id] = idx
	}
	if _, dup := r.byCat[kind.Category()][id]; !dup {
		r.byCat[kind.Category()][id] = idx
	}
}

func (r *Resolution) link(src, ordinal int, linkID, label, cond string, t Target) {
	source := r.Nodes[src]
	if t.IsNone() {
		r.Skipped = append(r.Skipped, SkippedLink{
			SourceID: source.ID, SourceIndex: src, LinkID: linkID, Ordinal: ordinal, Reason: SkipUnconnected,
		})
		return
	}
	ti, ok := r.lookupTarget(t)
	if !ok {
		r.Skipped = append(r.Skipped, SkippedLink{
			SourceID: source.ID, SourceIndex: src, LinkID: linkID, Ordinal: ordinal, TargetID: t.ID, Reason: SkipDangling,
		})
		return
	}
	r.Links = append(r.Links, ResolvedLink{
		LinkID:         linkID,
		Label:          label,
		Condition:      cond,
		SourceID:       source.ID,
		SourceCategory: source.Category(),
		SourceIndex:    src,
		SourceOrdinal:  ordinal,
		TargetID:       t.ID,
		TargetCategory: r.Nodes[ti].Category(),
		TargetIndex:    ti,
	})
}
