package matchr_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/metro"
	"github.com/fwojciec/metro/extract"
	"github.com/fwojciec/metro/matchr"
	"github.com/fwojciec/metro/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stations(names ...string) []*metro.Station {
	line := metro.NewLine("1", "Сокольническая линия")
	out := make([]*metro.Station, 0, len(names))
	for _, n := range names {
		out = append(out, metro.NewStation(n, line))
	}
	return out
}

func TestFuzzyStationMatcher_MatchStation(t *testing.T) {
	t.Parallel()

	t.Run("uses the wrapped matcher first", func(t *testing.T) {
		t.Parallel()

		candidates := stations("Охотный Ряд", "Лубянка")
		m := matchr.NewFuzzyStationMatcher(extract.ContainsStationMatcher{}, matchr.DefaultThreshold)

		s, ok := m.MatchStation("Переход на станцию Лубянка", candidates)
		require.True(t, ok)
		assert.Equal(t, "Лубянка", s.Name)
	})

	t.Run("falls back to similar names", func(t *testing.T) {
		t.Parallel()

		candidates := stations("Охотный Ряд", "Библиотека имени Ленина")
		m := matchr.NewFuzzyStationMatcher(extract.ContainsStationMatcher{}, 0.85)

		s, ok := m.MatchStation("Переход на станцию Библиотеки имени Ленина", candidates)
		require.True(t, ok)
		assert.Equal(t, "Библиотека имени Ленина", s.Name)
	})

	t.Run("rejects matches below the threshold", func(t *testing.T) {
		t.Parallel()

		candidates := stations("Охотный Ряд")
		m := matchr.NewFuzzyStationMatcher(extract.ContainsStationMatcher{}, matchr.DefaultThreshold)

		_, ok := m.MatchStation("Переход на станцию Арбатская", candidates)
		assert.False(t, ok)
	})

	t.Run("a zero threshold disables the fallback", func(t *testing.T) {
		t.Parallel()

		candidates := stations("Библиотека имени Ленина")
		m := matchr.NewFuzzyStationMatcher(extract.ContainsStationMatcher{}, 0)

		_, ok := m.MatchStation("Переход на станцию Библиотеки имени Ленина", candidates)
		assert.False(t, ok)
	})

	t.Run("does not call the fallback when the wrapped matcher matches", func(t *testing.T) {
		t.Parallel()

		candidates := stations("Лубянка")
		var calls int
		next := &mock.StationMatcher{
			MatchStationFn: func(phrase string, c []*metro.Station) (*metro.Station, bool) {
				calls++
				return c[0], true
			},
		}

		s, ok := matchr.NewFuzzyStationMatcher(next, 1).MatchStation("anything", candidates)
		require.True(t, ok)
		assert.Equal(t, candidates[0], s)
		assert.Equal(t, 1, calls)
	})
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	words := strings.Fields("переход на станцию охотный ряд")

	assert.InDelta(t, 1.0, matchr.Similarity(words, "Охотный Ряд"), 1e-9)
	assert.Zero(t, matchr.Similarity(words, ""))
	assert.Zero(t, matchr.Similarity([]string{"ряд"}, "Охотный Ряд"))
}
