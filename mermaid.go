package procgraph

import (
	"fmt"
	"strings"
)

// Mermaid renders the graph as a Mermaid flowchart. States are rounded,
// end-process actions are circles, execute-process actions are subroutines
// and all other actions are rectangles. Edges are labelled with their
// outcome or event name.
func (g *Graph) Mermaid() string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, n := range g.Nodes {
		opener, closer := "[", "]"
		switch n.Kind {
		case KindState:
			opener, closer = "(", ")"
		case KindEndProcessAction:
			opener, closer = "((", "))"
		case KindExecuteProcessAction:
			opener, closer = "[[", "]]"
		}
		label := n.Name
		if label == "" {
			label = n.ID
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", mermaidID(n), opener, escapeLabel(label), closer)
	}

	for _, e := range g.Edges {
		arrow := "-->"
		if e.Label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeLabel(e.Label))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", mermaidID(g.Nodes[e.SourceIndex]), arrow, mermaidID(g.Nodes[e.TargetIndex]))
	}

	return sb.String()
}

// mermaidID is unique per node even when document ids repeat.
func mermaidID(n Node) string {
	return fmt.Sprintf("n%d_%s", n.Index, sanitizeMermaidID(n.ID))
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", ":", "_")
	return r.Replace(id)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
