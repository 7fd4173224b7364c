package metro

// LineMatcher picks the line an interchange phrase refers to.
type LineMatcher interface {
	// MatchLine returns the first candidate referenced by phrase.
	// Candidates are given in registry order.
	MatchLine(phrase string, candidates []*Line) (*Line, bool)
}

// StationMatcher picks the station an interchange phrase refers to.
type StationMatcher interface {
	// MatchStation returns the candidate referenced by phrase.
	// Candidates are given in the line's page order.
	MatchStation(phrase string, candidates []*Station) (*Station, bool)
}
