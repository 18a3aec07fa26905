package procgraph

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Severity ranks a lint finding.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one problem Lint found in a document.
type Finding struct {
	Severity Severity `json:"severity" yaml:"severity"`
	NodeID   string   `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	LinkID   string   `json:"link_id,omitempty" yaml:"link_id,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	loc := f.NodeID
	if f.LinkID != "" {
		loc += "/" + f.LinkID
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Severity, loc, f.Message)
}

// Lint reports issues a resolution pass tolerates silently: duplicate ids,
// dangling or unconnected links, an unknown entry state and link conditions
// that do not compile.
func Lint(doc *ProcessDocument) []Finding {
	res := Resolve(doc)
	var out []Finding

	if doc.EntryStateID != "" {
		if _, ok := res.byCat[CategoryState][doc.EntryStateID]; !ok {
			out = append(out, Finding{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("entry state %q is not declared", doc.EntryStateID),
			})
		}
	}

	for _, n := range res.Nodes {
		if first := res.byCat[n.Category()][n.ID]; first != n.Index {
			out = append(out, Finding{
				Severity: SeverityWarning,
				NodeID:   n.ID,
				Message:  fmt.Sprintf("duplicate id, node %d is unreachable as a link target", n.Index),
			})
		}
	}

	for _, s := range res.Skipped {
		f := Finding{NodeID: s.SourceID, LinkID: s.LinkID}
		switch s.Reason {
		case SkipUnconnected:
			f.Severity = SeverityInfo
			f.Message = fmt.Sprintf("link %d has no target", s.Ordinal)
		case SkipDangling:
			f.Severity = SeverityWarning
			f.Message = fmt.Sprintf("link %d targets unknown node %q", s.Ordinal, s.TargetID)
		}
		out = append(out, f)
	}

	for _, l := range conditions(doc) {
		if _, err := expr.Compile(l.cond, expr.AllowUndefinedVariables()); err != nil {
			out = append(out, Finding{
				Severity: SeverityError,
				NodeID:   l.nodeID,
				LinkID:   l.linkID,
				Message:  fmt.Sprintf("condition does not compile: %v", err),
			})
		}
	}

	return out
}

type condition struct {
	nodeID, linkID, cond string
}

func conditions(doc *ProcessDocument) []condition {
	var out []condition
	for _, g := range doc.actionGroups() {
		for _, a := range *g.nodes {
			for _, l := range a.OutcomeLinks {
				if !blank(l.Condition) {
					out = append(out, condition{a.ActionID, l.LinkID, l.Condition})
				}
			}
		}
	}
	for _, s := range doc.States {
		for _, l := range s.EventLinks {
			if !blank(l.Condition) {
				out = append(out, condition{s.StateID, l.LinkID, l.Condition})
			}
		}
	}
	return out
}
