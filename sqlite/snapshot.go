package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/metro"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ metro.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements metro.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// CreateSnapshot stores the snapshot and its document in one transaction.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *metro.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	snapshot.ID = uuid.New().String()
	snapshot.CreatedAt = time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, source_url, source_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, snapshot.ID, snapshot.SourceURL, snapshot.SourceHash, snapshot.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	if err := insertDocument(ctx, tx, snapshot.ID, snapshot.Document); err != nil {
		return err
	}

	return tx.Commit()
}

func insertDocument(ctx context.Context, tx *sql.Tx, id string, doc *metro.Document) error {
	for i, l := range doc.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO lines (snapshot_id, position, number, name) VALUES (?, ?, ?, ?)
		`, id, i, l.Number, l.Name); err != nil {
			return err
		}
		for j, name := range doc.Stations[l.Number] {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO stations (snapshot_id, line_number, position, name) VALUES (?, ?, ?, ?)
			`, id, l.Number, j, name); err != nil {
				return err
			}
		}
	}

	for i, c := range doc.Connections {
		for j, t := range c.Transfer {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO transfers (snapshot_id, connection_position, transfer_position, line_from, station_from, line_to, station_to)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, id, i, j, c.LineFrom, c.StationFrom, t.LineTo, t.StationTo); err != nil {
				return err
			}
		}
	}

	return nil
}

// FindSnapshotByID retrieves a snapshot and its document by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*metro.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, source_hash, created_at
		FROM snapshots
		WHERE id = ?
	`, id)
	return s.findSnapshot(ctx, row)
}

// FindLatestSnapshot retrieves the most recently created snapshot.
func (s *SnapshotService) FindLatestSnapshot(ctx context.Context) (*metro.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, source_hash, created_at
		FROM snapshots
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`)
	return s.findSnapshot(ctx, row)
}

func (s *SnapshotService) findSnapshot(ctx context.Context, row *sql.Row) (*metro.Snapshot, error) {
	snapshot, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, metro.Errorf(metro.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}

	snapshot.Document, err = s.loadDocument(ctx, snapshot.ID)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// FindSnapshots lists snapshots matching the filter, newest first. Documents
// are not loaded.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter metro.SnapshotFilter) ([]*metro.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, source_hash, created_at FROM snapshots WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*metro.Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot and its document.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return metro.Errorf(metro.ENOTFOUND, "snapshot not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*metro.Snapshot, error) {
	var snapshot metro.Snapshot
	var createdAt string

	if err := row.Scan(&snapshot.ID, &snapshot.SourceURL, &snapshot.SourceHash, &createdAt); err != nil {
		return nil, err
	}

	var err error
	snapshot.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (s *SnapshotService) loadDocument(ctx context.Context, id string) (*metro.Document, error) {
	doc := &metro.Document{
		Stations:    make(map[string][]string),
		Lines:       []metro.DocumentLine{},
		Connections: []metro.DocumentConnection{},
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT number, name FROM lines WHERE snapshot_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var l metro.DocumentLine
		if err := rows.Scan(&l.Number, &l.Name); err != nil {
			rows.Close()
			return nil, err
		}
		doc.Lines = append(doc.Lines, l)
		doc.Stations[l.Number] = []string{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT line_number, name FROM stations WHERE snapshot_id = ? ORDER BY line_number, position
	`, id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var number, name string
		if err := rows.Scan(&number, &name); err != nil {
			rows.Close()
			return nil, err
		}
		doc.Stations[number] = append(doc.Stations[number], name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT connection_position, line_from, station_from, line_to, station_to
		FROM transfers
		WHERE snapshot_id = ?
		ORDER BY connection_position, transfer_position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	last := -1
	for rows.Next() {
		var pos int
		var c metro.DocumentConnection
		var t metro.Transfer
		if err := rows.Scan(&pos, &c.LineFrom, &c.StationFrom, &t.LineTo, &t.StationTo); err != nil {
			return nil, err
		}
		if pos != last {
			doc.Connections = append(doc.Connections, c)
			last = pos
		}
		i := len(doc.Connections) - 1
		doc.Connections[i].Transfer = append(doc.Connections[i].Transfer, t)
	}

	return doc, rows.Err()
}
