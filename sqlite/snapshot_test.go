package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/metro"
	"github.com/fwojciec/metro/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testDocument() *metro.Document {
	return &metro.Document{
		Stations: map[string][]string{
			"1": {"Бульвар Рокоссовского", "Охотный Ряд"},
			"3": {"Площадь Революции"},
		},
		Lines: []metro.DocumentLine{
			{Number: "1", Name: "Сокольническая линия"},
			{Number: "3", Name: "Арбатско-Покровская линия"},
		},
		Connections: []metro.DocumentConnection{
			{
				LineFrom:    "1",
				StationFrom: "Охотный Ряд",
				Transfer:    []metro.Transfer{{LineTo: "3", StationTo: "Площадь Революции"}},
			},
			{
				LineFrom:    "3",
				StationFrom: "Площадь Революции",
				Transfer:    []metro.Transfer{{LineTo: "1", StationTo: "Охотный Ряд"}},
			},
		},
	}
}

func createSnapshot(t *testing.T, svc *sqlite.SnapshotService, url string) *metro.Snapshot {
	t.Helper()
	snapshot := &metro.Snapshot{
		SourceURL:  url,
		SourceHash: sqlite.HashSource(url),
		Document:   testDocument(),
	}
	require.NoError(t, svc.CreateSnapshot(context.Background(), snapshot))
	return snapshot
}

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("creates snapshot with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		snapshot := createSnapshot(t, svc, "https://example.com/metro")

		assert.NotEmpty(t, snapshot.ID, "ID should be generated")
		assert.False(t, snapshot.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("returns error for invalid snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		err := svc.CreateSnapshot(context.Background(), &metro.Snapshot{})
		require.Error(t, err)
		assert.Equal(t, metro.EINVALID, metro.ErrorCode(err))
	})

	t.Run("rejects a document with stations of an undeclared line", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		doc := testDocument()
		doc.Stations["99"] = []string{"Нигде"}

		err := svc.CreateSnapshot(context.Background(), &metro.Snapshot{SourceURL: "u", Document: doc})
		require.Error(t, err)
		assert.Equal(t, metro.EINVALID, metro.ErrorCode(err))
	})
}

func TestSnapshotService_FindSnapshotByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the document", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		created := createSnapshot(t, svc, "https://example.com/metro")

		found, err := svc.FindSnapshotByID(context.Background(), created.ID)
		require.NoError(t, err)

		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.SourceURL, found.SourceURL)
		assert.Equal(t, created.SourceHash, found.SourceHash)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
		assert.Equal(t, testDocument(), found.Document)
	})

	t.Run("keeps empty lines in the station map", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		doc := &metro.Document{
			Stations:    map[string][]string{"14": {}},
			Lines:       []metro.DocumentLine{{Number: "14", Name: "Московское центральное кольцо"}},
			Connections: []metro.DocumentConnection{},
		}
		created := &metro.Snapshot{SourceURL: "u", Document: doc}
		require.NoError(t, svc.CreateSnapshot(context.Background(), created))

		found, err := svc.FindSnapshotByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, doc, found.Document)
	})

	t.Run("returns ENOTFOUND for missing snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		_, err := svc.FindSnapshotByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, metro.ENOTFOUND, metro.ErrorCode(err))
	})
}

func TestSnapshotService_FindLatestSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("returns the last created snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		createSnapshot(t, svc, "https://example.com/a")
		last := createSnapshot(t, svc, "https://example.com/b")

		found, err := svc.FindLatestSnapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, last.ID, found.ID)
		require.NotNil(t, found.Document)
		assert.Len(t, found.Document.Lines, 2)
	})

	t.Run("returns ENOTFOUND when empty", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		_, err := svc.FindLatestSnapshot(context.Background())
		require.Error(t, err)
		assert.Equal(t, metro.ENOTFOUND, metro.ErrorCode(err))
	})
}

func TestSnapshotService_FindSnapshots(t *testing.T) {
	t.Parallel()

	t.Run("lists newest first without documents", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		first := createSnapshot(t, svc, "https://example.com/a")
		second := createSnapshot(t, svc, "https://example.com/b")

		snapshots, err := svc.FindSnapshots(context.Background(), metro.SnapshotFilter{})
		require.NoError(t, err)
		require.Len(t, snapshots, 2)
		assert.Equal(t, second.ID, snapshots[0].ID)
		assert.Equal(t, first.ID, snapshots[1].ID)
		assert.Nil(t, snapshots[0].Document)
	})

	t.Run("filters by source URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		createSnapshot(t, svc, "https://example.com/a")
		b := createSnapshot(t, svc, "https://example.com/b")

		url := "https://example.com/b"
		snapshots, err := svc.FindSnapshots(context.Background(), metro.SnapshotFilter{SourceURL: &url})
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, b.ID, snapshots[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		createSnapshot(t, svc, "https://example.com/a")
		second := createSnapshot(t, svc, "https://example.com/b")
		createSnapshot(t, svc, "https://example.com/c")

		snapshots, err := svc.FindSnapshots(context.Background(), metro.SnapshotFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, second.ID, snapshots[0].ID)

		snapshots, err = svc.FindSnapshots(context.Background(), metro.SnapshotFilter{Offset: 2})
		require.NoError(t, err)
		assert.Len(t, snapshots, 1)
	})
}

func TestSnapshotService_DeleteSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("removes snapshot and its document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()
		created := createSnapshot(t, svc, "https://example.com/metro")

		require.NoError(t, svc.DeleteSnapshot(ctx, created.ID))

		_, err := svc.FindSnapshotByID(ctx, created.ID)
		assert.Equal(t, metro.ENOTFOUND, metro.ErrorCode(err))

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stations").Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("returns ENOTFOUND for missing snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		err := svc.DeleteSnapshot(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, metro.ENOTFOUND, metro.ErrorCode(err))
	})
}
