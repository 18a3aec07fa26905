package procgraph

import "context"

// Store defines the contract for persisting and retrieving process documents
// by key.
type Store interface {
	// SaveDocument creates or replaces the document stored under key.
	SaveDocument(ctx context.Context, key string, doc *ProcessDocument) error
	// GetDocument returns ErrDocumentNotFound when nothing is stored under key.
	GetDocument(ctx context.Context, key string) (*ProcessDocument, error)
	// DeleteDocument is a no-op for unknown keys.
	DeleteDocument(ctx context.Context, key string) error
	// ListDocuments returns the stored keys in ascending order.
	ListDocuments(ctx context.Context) ([]string, error)
}

// ValidKey reports whether key can address a stored document. Keys are used
// as file names by some stores, so path separators are rejected.
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	for _, r := range key {
		if r == '/' || r == '\\' || r == 0 {
			return false
		}
	}
	return true
}
