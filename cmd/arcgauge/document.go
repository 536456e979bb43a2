package main

import (
	"errors"
	"fmt"

	"github.com/garrettladley/arcgauge/internal/document"
	"github.com/garrettladley/arcgauge/internal/paths"
)

// loadDocument reads the gauge document at path, falling back to the one
// in the config directory.
func loadDocument(path string) (document.File, error) {
	if path == "" {
		p, err := paths.Document()
		if err != nil {
			return document.File{}, err
		}
		path = p
	}

	f, err := document.Load(path)
	if err != nil {
		return document.File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// selectGauges keeps only the named gauge when name is set.
func selectGauges(f document.File, name string) ([]document.Spec, error) {
	if name == "" {
		return f.Gauges, nil
	}
	for _, s := range f.Gauges {
		if s.Name == name {
			return []document.Spec{s}, nil
		}
	}
	return nil, errors.New("no gauge named " + name)
}

func documentArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
