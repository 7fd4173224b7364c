package metro_test

import (
	"math"
	"slices"
	"testing"

	"github.com/fwojciec/metro"
	"github.com/stretchr/testify/assert"
)

func TestDefaultRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		number string
		want   float64
	}{
		{"1", 1},
		{"11", 11},
		{"3A", 3.5},
		{"8А", 8.5},
		{"11А", 11.5},
		{"D1", 0.51},
		{"МЦК", math.Inf(1)},
		{"", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, metro.DefaultRank(tt.number))
		})
	}
}

func TestOrdering_CompareLines(t *testing.T) {
	t.Parallel()

	o := metro.DefaultOrdering()

	t.Run("orders numeric codes by value not text", func(t *testing.T) {
		t.Parallel()

		lines := []*metro.Line{
			metro.NewLine("11", "Eleven"),
			metro.NewLine("2", "Two"),
			metro.NewLine("1", "One"),
		}
		slices.SortFunc(lines, o.CompareLines)

		assert.Equal(t, []string{"1", "2", "11"}, numbers(lines))
	})

	t.Run("places a lettered code between its digit and the next", func(t *testing.T) {
		t.Parallel()

		lines := []*metro.Line{
			metro.NewLine("4", "Four"),
			metro.NewLine("3A", "Three A"),
			metro.NewLine("3", "Three"),
		}
		slices.SortFunc(lines, o.CompareLines)

		assert.Equal(t, []string{"3", "3A", "4"}, numbers(lines))
	})

	t.Run("breaks rank ties by name", func(t *testing.T) {
		t.Parallel()

		a := metro.NewLine("МЦК", "Московское центральное кольцо")
		b := metro.NewLine("ММ", "Московский монорельс")

		assert.Positive(t, o.CompareLines(a, b))
		assert.Negative(t, o.CompareLines(b, a))
	})

	t.Run("equal lines compare as zero", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, o.CompareLines(metro.NewLine("1", "One"), metro.NewLine("1", "One")))
	})

	t.Run("uses a custom rank function", func(t *testing.T) {
		t.Parallel()

		reversed := metro.Ordering{Rank: func(number string) float64 { return -metro.DefaultRank(number) }}

		assert.Positive(t, reversed.CompareLines(metro.NewLine("1", "One"), metro.NewLine("2", "Two")))
	})
}

func TestOrdering_CompareStations(t *testing.T) {
	t.Parallel()

	o := metro.DefaultOrdering()
	one := metro.NewLine("1", "One")
	two := metro.NewLine("2", "Two")

	t.Run("orders by line before name", func(t *testing.T) {
		t.Parallel()

		assert.Negative(t, o.CompareStations(metro.NewStation("Zeta", one), metro.NewStation("Alpha", two)))
	})

	t.Run("orders names ignoring case", func(t *testing.T) {
		t.Parallel()

		assert.Negative(t, o.CompareStations(metro.NewStation("alpha", one), metro.NewStation("Beta", one)))
	})

	t.Run("same name on different lines are distinct", func(t *testing.T) {
		t.Parallel()

		assert.NotZero(t, o.CompareStations(metro.NewStation("Hub", one), metro.NewStation("Hub", two)))
	})

	t.Run("names differing only in case are the same station", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, o.CompareStations(metro.NewStation("Alpha", one), metro.NewStation("ALPHA", one)))
	})
}

func TestLine_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, metro.NewLine("1", "One").Equal(metro.NewLine("1", "One")))
	assert.False(t, metro.NewLine("1", "One").Equal(metro.NewLine("1", "Uno")))
	assert.False(t, metro.NewLine("1", "One").Equal(nil))
}

func TestStation_Equal(t *testing.T) {
	t.Parallel()

	one := metro.NewLine("1", "One")
	assert.True(t, metro.NewStation("Alpha", one).Equal(metro.NewStation("ALPHA", one)))
	assert.False(t, metro.NewStation("Alpha", one).Equal(metro.NewStation("Alpha", metro.NewLine("2", "Two"))))
	assert.False(t, metro.NewStation("Alpha", one).Equal(nil))
}

func numbers(lines []*metro.Line) []string {
	var out []string
	for _, l := range lines {
		out = append(out, l.Number)
	}
	return out
}
