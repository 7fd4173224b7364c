// Package fs provides file-based storage for metro documents.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/metro"
)

// DefaultDocumentPath is where extracted documents are written by default.
const DefaultDocumentPath = "result/metro.json"

// Ensure DocumentStore implements metro.DocumentStore at compile time.
var _ metro.DocumentStore = (*DocumentStore)(nil)

// DocumentStore keeps a single document as an indented JSON file.
// Writes go to a temporary file first and are moved into place, so a
// failed write never leaves a truncated document behind.
type DocumentStore struct {
	path string
}

// NewDocumentStore creates a new DocumentStore for the file at path.
func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *DocumentStore) Path() string {
	return s.path
}

// WriteDocument replaces the stored document.
func (s *DocumentStore) WriteDocument(ctx context.Context, doc *metro.Document) error {
	if doc == nil {
		return metro.Errorf(metro.EINVALID, "document required")
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	data, err := MarshalDocument(doc)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move document into place: %w", err)
	}
	return nil
}

// ReadDocument loads the stored document.
// Returns ENOTFOUND if the file does not exist and EINVALID if it is not a
// document.
func (s *DocumentStore) ReadDocument(ctx context.Context) (*metro.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, metro.Errorf(metro.ENOTFOUND, "document %s not found", s.path)
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalDocument(data)
}

// MarshalDocument encodes doc as indented JSON without HTML escaping.
func MarshalDocument(doc *metro.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalDocument decodes a JSON document. Missing collections are
// returned empty rather than nil.
func UnmarshalDocument(data []byte) (*metro.Document, error) {
	var doc metro.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, metro.Errorf(metro.EINVALID, "invalid document: %v", err)
	}
	if doc.Stations == nil {
		doc.Stations = make(map[string][]string)
	}
	if doc.Lines == nil {
		doc.Lines = []metro.DocumentLine{}
	}
	if doc.Connections == nil {
		doc.Connections = []metro.DocumentConnection{}
	}
	return &doc, nil
}
