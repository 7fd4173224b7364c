package mock

import (
	"context"

	"github.com/fwojciec/metro"
)

var _ metro.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of metro.DocumentStore.
type DocumentStore struct {
	WriteDocumentFn func(ctx context.Context, doc *metro.Document) error
	ReadDocumentFn  func(ctx context.Context) (*metro.Document, error)
}

func (s *DocumentStore) WriteDocument(ctx context.Context, doc *metro.Document) error {
	return s.WriteDocumentFn(ctx, doc)
}

func (s *DocumentStore) ReadDocument(ctx context.Context) (*metro.Document, error) {
	return s.ReadDocumentFn(ctx)
}
