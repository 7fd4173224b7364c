// Package metro extracts a transit network (lines, stations and
// interchange connections) from the tables of a single web page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, etree/).
package metro
