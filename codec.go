package procgraph

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
)

// Decode parses a process-definition document. Elements are matched by local
// name, so prefixed documents (core:process, ...) load as well. Elements the
// model does not declare are dropped.
func Decode(r io.Reader) (*ProcessDocument, error) {
	d := xml.NewDecoder(r)
	start, err := rootElement(d)
	if err != nil {
		return nil, &DocumentError{Kind: ParseError, Err: err}
	}

	var doc ProcessDocument
	if err := d.DecodeElement(&doc, &start); err != nil {
		return nil, &DocumentError{Kind: ParseError, Err: err}
	}
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" {
			doc.Namespaces = append(doc.Namespaces, Namespace{Prefix: a.Name.Local, URI: a.Value})
		}
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	doc.normalize()
	return &doc, nil
}

// rootElement skips the prolog and returns the document element.
func rootElement(d *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(b []byte) (*ProcessDocument, error) {
	return Decode(bytes.NewReader(b))
}

// Encode writes the document with two-space indentation. The namespace of
// the decoded root element, if any, is written back as the default namespace,
// and every prefix declared on the root is declared again.
func Encode(w io.Writer, doc *ProcessDocument) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return &DocumentError{Kind: WriteError, Err: err}
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	start := xml.StartElement{Name: xml.Name{Space: doc.XMLName.Space, Local: "process"}}
	for _, ns := range doc.Namespaces {
		// encoding/xml has no way to declare a chosen prefix; a qualified
		// local name is written verbatim.
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xmlns:" + ns.Prefix}, Value: ns.URI})
	}
	if err := enc.EncodeElement(doc, start); err != nil {
		return &DocumentError{Kind: WriteError, Err: err}
	}
	if err := enc.Close(); err != nil {
		return &DocumentError{Kind: WriteError, Err: err}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return &DocumentError{Kind: WriteError, Err: err}
	}
	return nil
}

// EncodeBytes is Encode into a byte slice.
func EncodeBytes(doc *ProcessDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// validate reports every required field that is absent.
func (d *ProcessDocument) validate() error {
	var err error
	missing := func(field string) {
		err = multierr.Append(err, &DocumentError{Kind: ParseError, Field: field, Err: ErrMissingField})
	}

	if blank(d.ProcessID) {
		missing("process/processID")
	}
	if blank(d.Version) {
		missing("process/version")
	}
	for _, g := range d.actionGroups() {
		for i, a := range *g.nodes {
			if blank(a.ActionID) {
				missing(fmt.Sprintf("process/%s[%d]/actionID", g.kind, i))
			}
		}
	}
	for i, s := range d.States {
		if blank(s.StateID) {
			missing(fmt.Sprintf("process/state[%d]/stateID", i))
		}
	}
	return err
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
