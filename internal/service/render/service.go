// Package render turns gauge specs into SVG documents, caching the output
// by content.
package render

import (
	"context"

	"github.com/garrettladley/arcgauge/internal/document"
)

type Result struct {
	SVG []byte
	// Key identifies the rendered content and doubles as an ETag.
	Key    string
	Cached bool
}

type Service interface {
	// Render validates spec and returns its SVG. Invalid specs yield an
	// *xerrors.Error carrying per-field messages.
	Render(ctx context.Context, spec document.Spec) (Result, error)
}
