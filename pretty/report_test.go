package pretty_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/metro"
	"github.com/fwojciec/metro/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *metro.Registry {
	t.Helper()

	r := metro.NewRegistry()
	for _, l := range []*metro.Line{
		metro.NewLine("11", "Большая кольцевая линия"),
		metro.NewLine("3", "Арбатско-Покровская линия"),
		metro.NewLine("1", "Сокольническая линия"),
	} {
		require.True(t, r.AddLine(l))
	}

	add := func(name, number string) *metro.Station {
		line, err := r.FindLineByNumber(number)
		require.NoError(t, err)
		s := metro.NewStation(name, line)
		_, err = r.AddStation(s)
		require.NoError(t, err)
		return s
	}
	okhotny := add("Охотный Ряд", "1")
	add("Лубянка", "1")
	revolution := add("Площадь Революции", "3")
	add("Деловой центр", "11")

	require.NoError(t, r.AddConnections(okhotny, []*metro.Station{revolution}))
	require.NoError(t, r.AddConnections(revolution, []*metro.Station{okhotny}))
	return r
}

func TestWriteLineSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	pretty.WriteLineSummary(&buf, newRegistry(t))
	out := buf.String()

	t.Run("lists lines in rank order", func(t *testing.T) {
		t.Parallel()

		first := strings.Index(out, "Сокольническая линия")
		third := strings.Index(out, "Арбатско-Покровская линия")
		eleventh := strings.Index(out, "Большая кольцевая линия")
		require.NotEqual(t, -1, first)
		assert.Less(t, first, third)
		assert.Less(t, third, eleventh)
	})

	t.Run("counts stations per line", func(t *testing.T) {
		t.Parallel()

		for _, row := range strings.Split(out, "\n") {
			if strings.Contains(row, "Сокольническая линия") {
				assert.Contains(t, row, " 2 ")
			}
		}
		assert.Contains(t, out, " 4 ")
	})
}

func TestWriteConnections(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	pretty.WriteConnections(&buf, newRegistry(t))
	out := buf.String()

	assert.Contains(t, out, "Площадь Революции (3)")
	assert.Contains(t, out, "Охотный Ряд (1)")
	assert.NotContains(t, out, "Лубянка")
	assert.NotContains(t, out, "Деловой центр")
	assert.Less(t, strings.Index(out, "Охотный Ряд"), strings.Index(out, "Площадь Революции"))
}

func TestWriteSnapshots(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	pretty.WriteSnapshots(&buf, []*metro.Snapshot{
		{
			ID:         "snap-1",
			SourceURL:  "https://example.com/metro",
			SourceHash: "00ff",
			CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	})

	out := buf.String()
	assert.Contains(t, out, "snap-1")
	assert.Contains(t, out, "2026-03-01T12:00:00Z")
	assert.Contains(t, out, "https://example.com/metro")
}
