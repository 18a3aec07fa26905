package procgraph

import (
	"encoding/xml"
	"strings"
)

// NodeKind classifies a node by the element it was declared with.
type NodeKind string

const (
	KindPlainAction          NodeKind = "action"
	KindEndProcessAction     NodeKind = "endProcessAction"
	KindExecuteProcessAction NodeKind = "executeProcessAction"
	KindAssignAction         NodeKind = "assignAction"
	KindState                NodeKind = "state"
)

// Category is the coarse node class links are addressed by.
type Category string

const (
	CategoryAction Category = "action"
	CategoryState  Category = "state"
)

// Category returns the category a kind belongs to.
func (k NodeKind) Category() Category {
	if k == KindState {
		return CategoryState
	}
	return CategoryAction
}

// ProcessDocument is the typed form of a process-definition document.
// Action collections keep document order; their concatenation order is fixed
// by Resolve.
type ProcessDocument struct {
	XMLName xml.Name `xml:"process"`
	// Namespaces are the prefix declarations found on the root element.
	// Encode writes them back so prefixed pass-through content stays bound.
	Namespaces []Namespace `xml:"-"`

	ProcessID    string        `xml:"processID"`
	Version      string        `xml:"version"`
	Name         string        `xml:"name,omitempty"`
	EntryStateID string        `xml:"entryStateID,omitempty"`
	Hints        PositionHints `xml:"positionHints>entry,omitempty"`
	Metadata     *Metadata     `xml:"metadata,omitempty"`

	Actions               []ActionNode `xml:"action"`
	EndProcessActions     []ActionNode `xml:"endProcessAction"`
	ExecuteProcessActions []ActionNode `xml:"executeProcessAction"`
	AssignActions         []ActionNode `xml:"assignAction"`
	States                []StateNode  `xml:"state"`
}

// ActionNode is an executable step. All four action elements share this shape.
type ActionNode struct {
	Kind         NodeKind      `xml:"-"`
	ActionID     string        `xml:"actionID"`
	Name         string        `xml:"name,omitempty"`
	ClassName    string        `xml:"className,omitempty"`
	Hints        PositionHints `xml:"positionHints>entry,omitempty"`
	Metadata     *Metadata     `xml:"metadata,omitempty"`
	OutcomeLinks []OutcomeLink `xml:"outcomeLinks>outcomeLink,omitempty"`
}

// StateNode is a wait point reacting to events.
type StateNode struct {
	StateID              string        `xml:"stateID"`
	Name                 string        `xml:"name,omitempty"`
	ClassName            string        `xml:"className,omitempty"`
	Hints                PositionHints `xml:"positionHints>entry,omitempty"`
	Metadata             *Metadata     `xml:"metadata,omitempty"`
	EventLinks           []EventLink   `xml:"eventLinks>eventLink,omitempty"`
	ActionInputMappings  *RawXML       `xml:"actionInputMappings,omitempty"`
	ActionOutputMappings *RawXML       `xml:"actionOutputMappings,omitempty"`
}

// Namespace is one xmlns:prefix declaration.
type Namespace struct {
	Prefix string
	URI    string
}

// RawXML carries element content the engine passes through untouched.
type RawXML struct {
	Inner string `xml:",innerxml"`
}

// TargetKind tells which kind of node a link points at.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetAction
	TargetState
)

// Target is the destination of a link: nothing, an action id or a state id.
type Target struct {
	Kind TargetKind
	ID   string
}

// ToAction returns a target naming an action.
func ToAction(id string) Target { return Target{Kind: TargetAction, ID: id} }

// ToState returns a target naming a state.
func ToState(id string) Target { return Target{Kind: TargetState, ID: id} }

// IsNone reports whether the link is unconnected.
func (t Target) IsNone() bool { return t.Kind == TargetNone || t.ID == "" }

// targetFromWire picks the action field first, then the state field.
func targetFromWire(toAction, toState string) Target {
	if id := strings.TrimSpace(toAction); id != "" {
		return ToAction(id)
	}
	if id := strings.TrimSpace(toState); id != "" {
		return ToState(id)
	}
	return Target{}
}

func (t Target) wire() (toAction, toState string) {
	switch t.Kind {
	case TargetAction:
		return t.ID, ""
	case TargetState:
		return "", t.ID
	}
	return "", ""
}

// OutcomeLink is an action's transition for one outcome.
type OutcomeLink struct {
	LinkID    string
	Outcome   string
	Condition string
	Target    Target
}

type outcomeLinkXML struct {
	LinkID     string `xml:"linkID,omitempty"`
	Outcome    string `xml:"outcome,omitempty"`
	Condition  string `xml:"condition,omitempty"`
	ToStateID  string `xml:"toStateID,omitempty"`
	ToActionID string `xml:"toActionID,omitempty"`
}

func (l *OutcomeLink) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var w outcomeLinkXML
	if err := d.DecodeElement(&w, &start); err != nil {
		return err
	}
	*l = OutcomeLink{
		LinkID:    w.LinkID,
		Outcome:   w.Outcome,
		Condition: w.Condition,
		Target:    targetFromWire(w.ToActionID, w.ToStateID),
	}
	return nil
}

func (l OutcomeLink) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	w := outcomeLinkXML{LinkID: l.LinkID, Outcome: l.Outcome, Condition: l.Condition}
	w.ToActionID, w.ToStateID = l.Target.wire()
	return e.EncodeElement(w, start)
}

// EventLink is a state's transition for one handled event.
type EventLink struct {
	LinkID    string
	Event     string
	Condition string
	Target    Target
}

type eventLinkXML struct {
	LinkID     string `xml:"linkID,omitempty"`
	Event      string `xml:"event,omitempty"`
	Condition  string `xml:"condition,omitempty"`
	ToStateID  string `xml:"toStateID,omitempty"`
	ToActionID string `xml:"toActionID,omitempty"`
}

func (l *EventLink) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var w eventLinkXML
	if err := d.DecodeElement(&w, &start); err != nil {
		return err
	}
	*l = EventLink{
		LinkID:    w.LinkID,
		Event:     w.Event,
		Condition: w.Condition,
		Target:    targetFromWire(w.ToActionID, w.ToStateID),
	}
	return nil
}

func (l EventLink) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	w := eventLinkXML{LinkID: l.LinkID, Event: l.Event, Condition: l.Condition}
	w.ToActionID, w.ToStateID = l.Target.wire()
	return e.EncodeElement(w, start)
}

// actionGroups returns the action collections in resolution order together
// with the kind each one carries.
func (d *ProcessDocument) actionGroups() []actionGroup {
	return []actionGroup{
		{KindPlainAction, &d.Actions},
		{KindEndProcessAction, &d.EndProcessActions},
		{KindExecuteProcessAction, &d.ExecuteProcessActions},
		{KindAssignAction, &d.AssignActions},
	}
}

type actionGroup struct {
	kind  NodeKind
	nodes *[]ActionNode
}

// normalize stamps every action with the kind of the collection holding it.
func (d *ProcessDocument) normalize() {
	for _, g := range d.actionGroups() {
		for i := range *g.nodes {
			(*g.nodes)[i].Kind = g.kind
		}
	}
}

// Clone returns a deep copy of the document.
func (d *ProcessDocument) Clone() *ProcessDocument {
	if d == nil {
		return nil
	}
	c := *d
	c.Namespaces = append([]Namespace(nil), d.Namespaces...)
	c.Hints = d.Hints.clone()
	c.Metadata = d.Metadata.clone()
	c.Actions = cloneActions(d.Actions)
	c.EndProcessActions = cloneActions(d.EndProcessActions)
	c.ExecuteProcessActions = cloneActions(d.ExecuteProcessActions)
	c.AssignActions = cloneActions(d.AssignActions)
	if d.States != nil {
		c.States = make([]StateNode, len(d.States))
		for i, s := range d.States {
			s.Hints = s.Hints.clone()
			s.Metadata = s.Metadata.clone()
			s.EventLinks = append([]EventLink(nil), s.EventLinks...)
			s.ActionInputMappings = s.ActionInputMappings.clone()
			s.ActionOutputMappings = s.ActionOutputMappings.clone()
			c.States[i] = s
		}
	}
	return &c
}

func cloneActions(in []ActionNode) []ActionNode {
	if in == nil {
		return nil
	}
	out := make([]ActionNode, len(in))
	for i, a := range in {
		a.Hints = a.Hints.clone()
		a.Metadata = a.Metadata.clone()
		a.OutcomeLinks = append([]OutcomeLink(nil), a.OutcomeLinks...)
		out[i] = a
	}
	return out
}

func (r *RawXML) clone() *RawXML {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
