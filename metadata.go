package procgraph

import "strings"

// Metadata holds the typed interface references of a node or process.
// Every section is optional.
type Metadata struct {
	Inputs    []InterfaceRef `xml:"inputs>interface,omitempty"`
	Outputs   []InterfaceRef `xml:"outputs>interface,omitempty"`
	Outcomes  []InterfaceRef `xml:"outcomes>interface,omitempty"`
	StateData []InterfaceRef `xml:"stateData>interface,omitempty"`
	Events    []InterfaceRef `xml:"events>interface,omitempty"`
}

// InterfaceRef names a fully-qualified interface.
type InterfaceRef struct {
	Name string `xml:"name"`
}

// InputNames returns the qualified input interface names, empty when absent.
func (m *Metadata) InputNames() []string {
	if m == nil {
		return []string{}
	}
	return refNames(m.Inputs)
}

// OutputNames returns the qualified output interface names, empty when absent.
func (m *Metadata) OutputNames() []string {
	if m == nil {
		return []string{}
	}
	return refNames(m.Outputs)
}

// OutcomeNames returns the outcome interface names an action declares.
func (m *Metadata) OutcomeNames() []string {
	if m == nil {
		return []string{}
	}
	return refNames(m.Outcomes)
}

// StateDataNames returns the state data interface names, empty when absent.
func (m *Metadata) StateDataNames() []string {
	if m == nil {
		return []string{}
	}
	return refNames(m.StateData)
}

// EventNames returns the event interface names a state declares.
func (m *Metadata) EventNames() []string {
	if m == nil {
		return []string{}
	}
	return refNames(m.Events)
}

func refNames(refs []InterfaceRef) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}

func (m *Metadata) clone() *Metadata {
	if m == nil {
		return nil
	}
	return &Metadata{
		Inputs:    append([]InterfaceRef(nil), m.Inputs...),
		Outputs:   append([]InterfaceRef(nil), m.Outputs...),
		Outcomes:  append([]InterfaceRef(nil), m.Outcomes...),
		StateData: append([]InterfaceRef(nil), m.StateData...),
		Events:    append([]InterfaceRef(nil), m.Events...),
	}
}

// SimpleName returns the part of a qualified name after the last '.',
// or the whole name when it has none.
func SimpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
