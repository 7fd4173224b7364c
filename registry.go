package metro

import (
	"slices"
	"strings"
)

// Registry is the in-memory store of every line, station and interchange
// connection extracted from a page. It is not safe for concurrent writers;
// the pipeline populates it sequentially and it is read-only afterwards.
type Registry struct {
	ordering Ordering

	lines    []*Line    // sorted by ordering
	stations []*Station // sorted by ordering
	origins  []*Station // sorted keys of connections

	connections map[stationKey][]*Station
}

type stationKey struct {
	name, number, line string
}

func keyOf(s *Station) stationKey {
	return stationKey{name: strings.ToLower(s.Name), number: s.Line.Number, line: s.Line.Name}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRankFunc replaces DefaultRank as the line ranking rule.
func WithRankFunc(fn RankFunc) RegistryOption {
	return func(r *Registry) {
		r.ordering.Rank = fn
	}
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		ordering:    DefaultOrdering(),
		connections: make(map[stationKey][]*Station),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ordering returns the ordering used by the registry.
func (r *Registry) Ordering() Ordering {
	return r.ordering
}

// AddLine registers a line. It returns false without modifying the registry
// when a line with the same number is already registered.
func (r *Registry) AddLine(line *Line) bool {
	for _, l := range r.lines {
		if l.Number == line.Number {
			return false
		}
	}
	i, _ := slices.BinarySearchFunc(r.lines, line, r.ordering.CompareLines)
	r.lines = slices.Insert(r.lines, i, line)
	return true
}

// AddStation registers a station and appends it to its line. It returns
// false when the station is already registered. The station's line must be
// registered first.
func (r *Registry) AddStation(station *Station) (bool, error) {
	line := r.registeredLine(station.Line)
	if line == nil {
		return false, Errorf(EINVALID, "line %q of station %q is not registered", lineName(station.Line), station.Name)
	}
	station.Line = line
	i, found := slices.BinarySearchFunc(r.stations, station, r.ordering.CompareStations)
	if found {
		return false, nil
	}
	r.stations = slices.Insert(r.stations, i, station)
	line.stations = append(line.stations, station)
	return true, nil
}

// AddConnections sets the interchange partners of station, replacing any
// previous entry. Partners are deduplicated and sorted. Every station
// involved must be registered.
func (r *Registry) AddConnections(station *Station, connected []*Station) error {
	if !r.hasStation(station) {
		return Errorf(ENOTFOUND, "station %s is not registered", station)
	}

	var targets []*Station
	for _, s := range connected {
		if !r.hasStation(s) {
			return Errorf(ENOTFOUND, "connected station %s is not registered", s)
		}
		i, found := slices.BinarySearchFunc(targets, s, r.ordering.CompareStations)
		if !found {
			targets = slices.Insert(targets, i, s)
		}
	}

	key := keyOf(station)
	if _, ok := r.connections[key]; !ok {
		i, _ := slices.BinarySearchFunc(r.origins, station, r.ordering.CompareStations)
		r.origins = slices.Insert(r.origins, i, station)
	}
	r.connections[key] = targets
	return nil
}

// FindLineByName returns the line with the given name, ignoring case.
// Returns ENOTFOUND if no such line is registered.
func (r *Registry) FindLineByName(name string) (*Line, error) {
	for _, l := range r.lines {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return nil, Errorf(ENOTFOUND, "line with name %q not found", name)
}

// FindLineByNumber returns the line with the given number, ignoring case.
// Returns ENOTFOUND if no such line is registered.
func (r *Registry) FindLineByNumber(number string) (*Line, error) {
	for _, l := range r.lines {
		if strings.EqualFold(l.Number, number) {
			return l, nil
		}
	}
	return nil, Errorf(ENOTFOUND, "line with number %q not found", number)
}

// FindStation returns the station with the given name on line, ignoring case.
// Returns ENOTFOUND if the line has no such station.
func (r *Registry) FindStation(name string, line *Line) (*Station, error) {
	if l := r.registeredLine(line); l != nil {
		for _, s := range l.stations {
			if strings.EqualFold(s.Name, name) {
				return s, nil
			}
		}
	}
	return nil, Errorf(ENOTFOUND, "station %q on line %q not found", name, lineName(line))
}

// Lines returns all registered lines in display order.
func (r *Registry) Lines() []*Line {
	return slices.Clone(r.lines)
}

// Stations returns all registered stations in display order.
func (r *Registry) Stations() []*Station {
	return slices.Clone(r.stations)
}

// Connected returns the interchange partners of station, or nil.
func (r *Registry) Connected(station *Station) []*Station {
	return slices.Clone(r.connections[keyOf(station)])
}

// Connection is an origin station with its interchange partners.
type Connection struct {
	From *Station
	To   []*Station
}

// Connections returns every adjacency entry ordered by origin station.
func (r *Registry) Connections() []Connection {
	conns := make([]Connection, 0, len(r.origins))
	for _, s := range r.origins {
		conns = append(conns, Connection{From: s, To: slices.Clone(r.connections[keyOf(s)])})
	}
	return conns
}

// registeredLine returns the registered instance equal to line, or nil.
func (r *Registry) registeredLine(line *Line) *Line {
	if line == nil {
		return nil
	}
	for _, l := range r.lines {
		if l.Equal(line) {
			return l
		}
	}
	return nil
}

func (r *Registry) hasStation(s *Station) bool {
	if s == nil || s.Line == nil {
		return false
	}
	_, found := slices.BinarySearchFunc(r.stations, s, r.ordering.CompareStations)
	return found
}

func lineName(l *Line) string {
	if l == nil {
		return ""
	}
	return l.Name
}
