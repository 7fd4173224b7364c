package metro

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Line represents a named transit route identified by a short code.
// Two lines are the same line when both number and name are equal.
type Line struct {
	Number string `json:"number"`
	Name   string `json:"name"`

	stations []*Station
}

// NewLine returns a line with no stations.
func NewLine(number, name string) *Line {
	return &Line{Number: number, Name: name}
}

// Stations returns the stations of the line in page order.
func (l *Line) Stations() []*Station {
	stations := make([]*Station, len(l.stations))
	copy(stations, l.stations)
	return stations
}

// Equal reports whether l and other identify the same line.
func (l *Line) Equal(other *Line) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.Number == other.Number && l.Name == other.Name
}

func (l *Line) String() string {
	return l.Name + " (" + l.Number + ")"
}

// Station represents a stop bound to exactly one line. An interchange hub is
// represented by one Station per line it sits on.
type Station struct {
	Name string
	Line *Line
}

// NewStation returns a station on the given line.
func NewStation(name string, line *Line) *Station {
	return &Station{Name: name, Line: line}
}

// Equal reports whether s and other identify the same station. Names
// differing only in case name the same station.
func (s *Station) Equal(other *Station) bool {
	if s == nil || other == nil {
		return s == other
	}
	return strings.EqualFold(s.Name, other.Name) && s.Line.Equal(other.Line)
}

func (s *Station) String() string {
	if s.Line == nil {
		return s.Name
	}
	return s.Name + " (" + s.Line.Number + ")"
}

// RankFunc derives the sort rank of a line from its number.
type RankFunc func(number string) float64

var (
	digitsOnly = regexp.MustCompile(`^\d+$`)
	nonDigit   = regexp.MustCompile(`\D`)
)

// DefaultRank ranks purely numeric codes by their value. Any other code has
// every non-digit replaced with ".5" before parsing, so "3A" ranks 3.5 and
// sorts between "3" and "4". Codes that do not parse after the substitution
// rank +Inf.
func DefaultRank(number string) float64 {
	s := number
	if !digitsOnly.MatchString(number) {
		s = nonDigit.ReplaceAllString(number, ".5")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.Inf(1)
	}
	return f
}

// Ordering compares lines and stations for display and deduplication.
type Ordering struct {
	Rank RankFunc
}

// DefaultOrdering returns an Ordering using DefaultRank.
func DefaultOrdering() Ordering {
	return Ordering{Rank: DefaultRank}
}

// CompareLines orders lines by rank, then name, then number.
func (o Ordering) CompareLines(a, b *Line) int {
	rank := o.Rank
	if rank == nil {
		rank = DefaultRank
	}
	ra, rb := rank(a.Number), rank(b.Number)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.Number, b.Number)
}

// CompareStations orders stations by line, then by name ignoring case.
// Stations comparing equal are the same station.
func (o Ordering) CompareStations(a, b *Station) int {
	if c := o.CompareLines(a.Line, b.Line); c != 0 {
		return c
	}
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}
