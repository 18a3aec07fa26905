package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/meikuraledutech/procgraph"
	"github.com/meikuraledutech/procgraph/xmlfile"
)

func main() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "procgraph-example")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	// Wire up the file implementation behind the Store interface.
	var store procgraph.Store = xmlfile.New(dir)

	// ── Build a document in code ──────────────────────────────────────
	order := &procgraph.ProcessDocument{
		ProcessID:    "order",
		Version:      "1.0",
		Name:         "Order handling",
		EntryStateID: "received",
		Actions: []procgraph.ActionNode{{
			ActionID: "check",
			Name:     "Check stock",
			Hints:    procgraph.PositionHints{}.WithPosition(200, 40),
			Metadata: &procgraph.Metadata{
				Inputs:   []procgraph.InterfaceRef{{Name: "com.acme.order.Order"}},
				Outcomes: []procgraph.InterfaceRef{{Name: "com.acme.order.InStock"}},
			},
			OutcomeLinks: []procgraph.OutcomeLink{
				{LinkID: "l1", Outcome: "inStock", Target: procgraph.ToAction("ship")},
				{LinkID: "l2", Outcome: "backorder", Target: procgraph.ToState("waiting")},
				{LinkID: "l3", Outcome: "cancelled"}, // unconnected, dropped
			},
		}},
		EndProcessActions: []procgraph.ActionNode{{
			ActionID: "ship",
			Name:     "Ship",
			Hints:    procgraph.PositionHints{}.WithPosition(400, 40),
		}},
		States: []procgraph.StateNode{
			{
				StateID: "received",
				Name:    "Received",
				Metadata: &procgraph.Metadata{
					Events: []procgraph.InterfaceRef{{Name: "com.acme.order.Placed"}},
				},
				EventLinks: []procgraph.EventLink{
					{LinkID: "e1", Event: "placed", Target: procgraph.ToAction("check")},
				},
			},
			{
				StateID: "waiting",
				Name:    "Waiting for stock",
				Hints:   procgraph.PositionHints{}.WithPosition(200, 160),
				EventLinks: []procgraph.EventLink{
					{LinkID: "e2", Event: "restocked", Target: procgraph.ToAction("check")},
					{LinkID: "e3", Event: "expired", Target: procgraph.ToState("archive")}, // dangling, dropped
				},
			},
		},
	}

	if err := store.SaveDocument(ctx, "order", order); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Println("document saved")

	// ── Retrieve and resolve ──────────────────────────────────────────
	doc, err := store.GetDocument(ctx, "order")
	if err != nil {
		log.Fatalf("get: %v", err)
	}
	g := procgraph.Build(doc)
	fmt.Println("\nresolved graph:")
	printJSON(g)

	// ── Move a node ───────────────────────────────────────────────────
	moved, err := procgraph.ApplyPositionEdit(g, "check", 240, 80)
	if err != nil {
		log.Fatalf("move: %v", err)
	}
	if err := store.SaveDocument(ctx, "order", procgraph.ToDocument(moved)); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Println("\nedges after move:")
	printJSON(moved.Edges)

	// ── Lint ──────────────────────────────────────────────────────────
	fmt.Println("\nlint:")
	for _, f := range procgraph.Lint(doc) {
		fmt.Println(" ", f)
	}

	fmt.Println("\nmermaid:")
	fmt.Print(moved.Mermaid())
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
