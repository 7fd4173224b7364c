package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/metro"
	metroetree "github.com/fwojciec/metro/etree"
)

// Run executes the graph command.
func (c *GraphCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.ReadDocument(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", metro.ErrorMessage(err))
		return err
	}

	// Reload through a registry so the graph only holds consistent entries
	// in display order.
	registry := metro.NewRegistry()
	for _, err := range doc.Load(registry) {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", metro.ErrorMessage(err))
	}
	doc = metro.NewDocument(registry)

	var w io.Writer = deps.Stdout
	if c.Out != "-" {
		f, err := os.Create(c.Out)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		defer f.Close()
		w = f
	}

	if err := metroetree.WriteGraphML(w, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	if c.Out != "-" {
		fmt.Fprintf(deps.Stdout, "Wrote %s (%s)\n", c.Out, doc.Summary())
	}
	return nil
}
