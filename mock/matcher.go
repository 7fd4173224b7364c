package mock

import "github.com/fwojciec/metro"

var _ metro.LineMatcher = (*LineMatcher)(nil)

// LineMatcher is a mock implementation of metro.LineMatcher.
type LineMatcher struct {
	MatchLineFn func(phrase string, candidates []*metro.Line) (*metro.Line, bool)
}

func (m *LineMatcher) MatchLine(phrase string, candidates []*metro.Line) (*metro.Line, bool) {
	return m.MatchLineFn(phrase, candidates)
}

var _ metro.StationMatcher = (*StationMatcher)(nil)

// StationMatcher is a mock implementation of metro.StationMatcher.
type StationMatcher struct {
	MatchStationFn func(phrase string, candidates []*metro.Station) (*metro.Station, bool)
}

func (m *StationMatcher) MatchStation(phrase string, candidates []*metro.Station) (*metro.Station, bool) {
	return m.MatchStationFn(phrase, candidates)
}
