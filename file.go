package procgraph

import (
	"bytes"
	"errors"
	"os"

	"github.com/google/renameio/v2"
	"go.uber.org/multierr"
)

// LoadDocument reads and parses the document at path.
func LoadDocument(path string) (*ProcessDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{Kind: ReadError, Path: path, Err: err}
	}
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, withPath(err, path)
	}
	return doc, nil
}

// Load reads, parses and resolves the document at path.
func Load(path string) (*Graph, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return Build(doc), nil
}

// Save writes the document to path. The file is replaced atomically: a failed
// save leaves whatever was there before.
func Save(doc *ProcessDocument, path string) error {
	data, err := EncodeBytes(doc)
	if err != nil {
		return withPath(err, path)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return &DocumentError{Kind: WriteError, Path: path, Err: err}
	}
	return nil
}

// withPath stamps path onto every DocumentError held by err.
func withPath(err error, path string) error {
	for _, e := range multierr.Errors(err) {
		var de *DocumentError
		if errors.As(e, &de) {
			de.Path = path
		}
	}
	return err
}
