// Package etree exports the interchange graph as GraphML using etree.
package etree

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/fwojciec/metro"
)

const graphMLNamespace = "http://graphml.graphdrawing.org/xmlns"

// NodeID returns the GraphML node id of a station.
func NodeID(lineNumber, stationName string) string {
	return lineNumber + ":" + stationName
}

// NewGraphML builds a GraphML document with one node per station and one
// directed edge per transfer. Nodes carry the station name, line number and
// line name; edges whose endpoints are not stations of the document are
// left out.
func NewGraphML(doc *metro.Document) *etree.Document {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("graphml")
	root.CreateAttr("xmlns", graphMLNamespace)
	for _, key := range []struct{ id, name string }{
		{"d0", "station"},
		{"d1", "line"},
		{"d2", "lineName"},
	} {
		k := root.CreateElement("key")
		k.CreateAttr("id", key.id)
		k.CreateAttr("for", "node")
		k.CreateAttr("attr.name", key.name)
		k.CreateAttr("attr.type", "string")
	}

	graph := root.CreateElement("graph")
	graph.CreateAttr("id", "metro")
	graph.CreateAttr("edgedefault", "directed")

	nodes := make(map[string]bool)
	for _, line := range doc.Lines {
		for _, name := range doc.Stations[line.Number] {
			id := NodeID(line.Number, name)
			if nodes[id] {
				continue
			}
			nodes[id] = true

			n := graph.CreateElement("node")
			n.CreateAttr("id", id)
			createData(n, "d0", name)
			createData(n, "d1", line.Number)
			createData(n, "d2", line.Name)
		}
	}

	edge := 0
	for _, c := range doc.Connections {
		source := NodeID(c.LineFrom, c.StationFrom)
		if !nodes[source] {
			continue
		}
		for _, t := range c.Transfer {
			target := NodeID(t.LineTo, t.StationTo)
			if !nodes[target] {
				continue
			}
			e := graph.CreateElement("edge")
			e.CreateAttr("id", fmt.Sprintf("e%d", edge))
			e.CreateAttr("source", source)
			e.CreateAttr("target", target)
			edge++
		}
	}

	return x
}

func createData(parent *etree.Element, key, value string) {
	d := parent.CreateElement("data")
	d.CreateAttr("key", key)
	d.SetText(value)
}

// WriteGraphML writes the GraphML form of doc to w.
func WriteGraphML(w io.Writer, doc *metro.Document) error {
	x := NewGraphML(doc)
	x.Indent(2)
	if _, err := x.WriteTo(w); err != nil {
		return fmt.Errorf("writing GraphML: %w", err)
	}
	return nil
}
