package metro

import (
	"context"
	"time"
)

// Snapshot is a stored extraction run.
type Snapshot struct {
	ID         string    `json:"id"`
	SourceURL  string    `json:"sourceUrl"`
	SourceHash string    `json:"sourceHash"`
	CreatedAt  time.Time `json:"createdAt"`

	// Document is nil when snapshots are listed.
	Document *Document `json:"document,omitempty"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.SourceURL == "" {
		return Errorf(EINVALID, "snapshot source URL required")
	}
	if s.Document == nil {
		return Errorf(EINVALID, "snapshot document required")
	}
	return s.Document.Validate()
}

// SnapshotService represents a service for managing snapshots.
type SnapshotService interface {
	// CreateSnapshot stores a new snapshot and sets its ID and CreatedAt.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindSnapshotByID retrieves a snapshot including its document.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindLatestSnapshot retrieves the most recent snapshot including its document.
	// Returns ENOTFOUND if no snapshot exists.
	FindLatestSnapshot(ctx context.Context) (*Snapshot, error)

	// FindSnapshots lists snapshots, newest first, without documents.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshot permanently removes a snapshot.
	// Returns ENOTFOUND if snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
