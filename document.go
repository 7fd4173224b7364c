package metro

import (
	"context"
	"fmt"
)

// Document is the flat, serializable form of a Registry.
type Document struct {
	Stations    map[string][]string  `json:"stations"`
	Lines       []DocumentLine       `json:"lines"`
	Connections []DocumentConnection `json:"connections"`
}

// DocumentLine is a line entry of a Document.
type DocumentLine struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// DocumentConnection lists the transfers available from one station.
type DocumentConnection struct {
	LineFrom    string     `json:"lineFrom"`
	StationFrom string     `json:"stationFrom"`
	Transfer    []Transfer `json:"transfer"`
}

// Transfer is a single interchange target of a DocumentConnection.
type Transfer struct {
	LineTo    string `json:"lineTo"`
	StationTo string `json:"stationTo"`
}

// NewDocument flattens the registry. Lines and connections keep registry
// order; station names keep each line's page order. Origins without
// partners are omitted.
func NewDocument(r *Registry) *Document {
	doc := &Document{
		Stations:    make(map[string][]string),
		Lines:       []DocumentLine{},
		Connections: []DocumentConnection{},
	}

	for _, line := range r.Lines() {
		names := make([]string, 0, len(line.stations))
		for _, s := range line.stations {
			names = append(names, s.Name)
		}
		doc.Stations[line.Number] = names
		doc.Lines = append(doc.Lines, DocumentLine{Number: line.Number, Name: line.Name})
	}

	for _, conn := range r.Connections() {
		if len(conn.To) == 0 {
			continue
		}
		transfers := make([]Transfer, 0, len(conn.To))
		for _, to := range conn.To {
			transfers = append(transfers, Transfer{LineTo: to.Line.Number, StationTo: to.Name})
		}
		doc.Connections = append(doc.Connections, DocumentConnection{
			LineFrom:    conn.From.Line.Number,
			StationFrom: conn.From.Name,
			Transfer:    transfers,
		})
	}

	return doc
}

// Load populates r from the document. Entries referring to unknown lines or
// stations are skipped and returned as ENOTFOUND errors; the rest of the
// document is still loaded.
func (d *Document) Load(r *Registry) []error {
	var errs []error

	for _, dl := range d.Lines {
		r.AddLine(NewLine(dl.Number, dl.Name))
	}

	for _, dl := range d.Lines {
		line, err := r.FindLineByNumber(dl.Number)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, name := range d.Stations[dl.Number] {
			if _, err := r.AddStation(NewStation(name, line)); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, dc := range d.Connections {
		from, err := d.findStation(r, dc.StationFrom, dc.LineFrom)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		var to []*Station
		for _, t := range dc.Transfer {
			s, err := d.findStation(r, t.StationTo, t.LineTo)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			to = append(to, s)
		}
		if len(to) == 0 {
			continue
		}
		if err := r.AddConnections(from, to); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

func (d *Document) findStation(r *Registry, name, number string) (*Station, error) {
	line, err := r.FindLineByNumber(number)
	if err != nil {
		return nil, err
	}
	return r.FindStation(name, line)
}

// StationCounts returns the number of stations per line number.
func (d *Document) StationCounts() map[string]int {
	counts := make(map[string]int, len(d.Stations))
	for number, names := range d.Stations {
		counts[number] = len(names)
	}
	return counts
}

// Validate returns an error if the document references lines it does not
// declare.
func (d *Document) Validate() error {
	declared := make(map[string]bool, len(d.Lines))
	for _, l := range d.Lines {
		if l.Number == "" {
			return Errorf(EINVALID, "document line number required")
		}
		declared[l.Number] = true
	}
	for number := range d.Stations {
		if !declared[number] {
			return Errorf(EINVALID, "stations listed for undeclared line %q", number)
		}
	}
	for _, c := range d.Connections {
		if !declared[c.LineFrom] {
			return Errorf(EINVALID, "connection from undeclared line %q", c.LineFrom)
		}
		for _, t := range c.Transfer {
			if !declared[t.LineTo] {
				return Errorf(EINVALID, "transfer to undeclared line %q", t.LineTo)
			}
		}
	}
	return nil
}

// DocumentStore persists documents.
type DocumentStore interface {
	// WriteDocument stores the document, replacing any previous one.
	WriteDocument(ctx context.Context, doc *Document) error

	// ReadDocument loads the stored document.
	// Returns ENOTFOUND if no document has been stored.
	ReadDocument(ctx context.Context) (*Document, error)
}

// Summary is a one-line description of a document's size.
func (d *Document) Summary() string {
	stations := 0
	for _, names := range d.Stations {
		stations += len(names)
	}
	return fmt.Sprintf("%d lines, %d stations, %d connections", len(d.Lines), stations, len(d.Connections))
}
