// Package matchr provides fuzzy station matching using matchr.
package matchr

import (
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/fwojciec/metro"
)

// DefaultThreshold is the lowest Jaro-Winkler similarity accepted as a match.
const DefaultThreshold = 0.9

var _ metro.StationMatcher = (*FuzzyStationMatcher)(nil)

// FuzzyStationMatcher tries Next first and falls back to comparing each
// candidate name with every run of the same number of words in the phrase.
// It catches inflected or misspelled station names that exact containment
// misses.
type FuzzyStationMatcher struct {
	Next      metro.StationMatcher
	Threshold float64
}

// NewFuzzyStationMatcher wraps next with a fuzzy fallback.
func NewFuzzyStationMatcher(next metro.StationMatcher, threshold float64) *FuzzyStationMatcher {
	return &FuzzyStationMatcher{Next: next, Threshold: threshold}
}

// MatchStation returns the match of Next if there is one, otherwise the
// candidate with the highest similarity at or above Threshold. Ties keep the
// earlier candidate.
func (m *FuzzyStationMatcher) MatchStation(phrase string, candidates []*metro.Station) (*metro.Station, bool) {
	if m.Next != nil {
		if s, ok := m.Next.MatchStation(phrase, candidates); ok {
			return s, true
		}
	}
	if m.Threshold <= 0 {
		return nil, false
	}

	words := strings.Fields(strings.ToLower(phrase))

	var best *metro.Station
	var bestScore float64
	for _, s := range candidates {
		score := Similarity(words, s.Name)
		if score >= m.Threshold && score > bestScore {
			best, bestScore = s, score
		}
	}
	return best, best != nil
}

// Similarity returns the best Jaro-Winkler similarity between name and any
// window of len(Fields(name)) consecutive words. words must be lowercase.
func Similarity(words []string, name string) float64 {
	target := strings.Fields(strings.ToLower(name))
	n := len(target)
	if n == 0 || n > len(words) {
		return 0
	}
	joined := strings.Join(target, " ")

	var best float64
	for i := 0; i+n <= len(words); i++ {
		window := strings.Join(words[i:i+n], " ")
		if sim := matchr.JaroWinkler(window, joined, false); sim > best {
			best = sim
		}
	}
	return best
}
