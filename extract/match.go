package extract

import (
	"strings"

	"github.com/fwojciec/metro"
)

// Defaults for PrefixLineMatcher, tuned to the line names of the Moscow
// metro station list.
const (
	DefaultSharedPrefix     = "Московск"
	DefaultSecondWordLength = 4
	DefaultPrefixLength     = 5
)

var _ metro.LineMatcher = (*PrefixLineMatcher)(nil)

// PrefixLineMatcher matches a phrase to the first line whose discriminator
// occurs in it. The discriminator is the first PrefixLength runes of the
// line name, except for lines whose name starts with SharedPrefix: those use
// the first SecondWordLength runes of their second word, since the shared
// first word does not tell them apart.
type PrefixLineMatcher struct {
	SharedPrefix     string
	SecondWordLength int
	PrefixLength     int
}

// NewPrefixLineMatcher returns a matcher with the default settings.
func NewPrefixLineMatcher() *PrefixLineMatcher {
	return &PrefixLineMatcher{
		SharedPrefix:     DefaultSharedPrefix,
		SecondWordLength: DefaultSecondWordLength,
		PrefixLength:     DefaultPrefixLength,
	}
}

// MatchLine returns the first candidate whose discriminator is a substring
// of phrase.
func (m *PrefixLineMatcher) MatchLine(phrase string, candidates []*metro.Line) (*metro.Line, bool) {
	for _, line := range candidates {
		d := m.Discriminator(line.Name)
		if d != "" && strings.Contains(phrase, d) {
			return line, true
		}
	}
	return nil, false
}

// Discriminator returns the substring used to recognize a line name.
func (m *PrefixLineMatcher) Discriminator(name string) string {
	if m.SharedPrefix != "" && strings.HasPrefix(name, m.SharedPrefix) {
		if words := strings.Fields(name); len(words) > 1 {
			return firstRunes(words[1], m.SecondWordLength)
		}
	}
	return firstRunes(name, m.PrefixLength)
}

// firstRunes returns at most n leading runes of s.
func firstRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

var _ metro.StationMatcher = (*ContainsStationMatcher)(nil)

// ContainsStationMatcher matches a phrase to the first station whose name
// occurs in it.
type ContainsStationMatcher struct{}

// MatchStation returns the first candidate whose name is a substring of phrase.
func (ContainsStationMatcher) MatchStation(phrase string, candidates []*metro.Station) (*metro.Station, bool) {
	for _, s := range candidates {
		if s.Name != "" && strings.Contains(phrase, s.Name) {
			return s, true
		}
	}
	return nil, false
}
