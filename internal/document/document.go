// Package document loads gauge definitions from TOML files and turns them
// into renderers.
package document

import (
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/gauge"
	"github.com/garrettladley/arcgauge/internal/palette"
	"github.com/garrettladley/arcgauge/internal/validator"
	"github.com/garrettladley/arcgauge/internal/xerrors"
)

type Kind string

const (
	KindSingle   Kind = "single"
	KindSegments Kind = "segments"
	KindLegend   Kind = "legend"
)

const (
	DefaultCategoryKey = "name"
	DefaultValueKey    = "value"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// File is a TOML document with one [[gauge]] table per gauge.
type File struct {
	Gauges []Spec `toml:"gauge" json:"gauges"`
}

// Spec describes one gauge. Fields that do not apply to its kind are ignored.
type Spec struct {
	Name        string            `toml:"name" json:"name,omitempty"`
	Kind        Kind              `toml:"kind" json:"kind,omitempty"`
	Span        float64           `toml:"span" json:"span,omitempty"`
	Label       string            `toml:"label" json:"label,omitempty"`
	Size        float64           `toml:"size" json:"size,omitempty"`
	Stroke      float64           `toml:"stroke" json:"stroke,omitempty"`
	Value       *float64          `toml:"value" json:"value,omitempty"`
	Min         *float64          `toml:"min" json:"min,omitempty"`
	Max         *float64          `toml:"max" json:"max,omitempty"`
	Color       palette.Token     `toml:"color" json:"color,omitempty"`
	Thresholds  []gauge.Threshold `toml:"thresholds" json:"thresholds,omitempty"`
	Gradient    bool              `toml:"gradient" json:"gradient,omitempty"`
	Needle      bool              `toml:"needle" json:"needle,omitempty"`
	RangeLabels bool              `toml:"range_labels" json:"range_labels,omitempty"`
	CategoryKey string            `toml:"category_key" json:"category_key,omitempty"`
	ValueKey    string            `toml:"value_key" json:"value_key,omitempty"`
	Data        []map[string]any  `toml:"data" json:"data,omitempty"`
	Colors      []palette.Token   `toml:"colors" json:"colors,omitempty"`
	Active      string            `toml:"active" json:"active,omitempty"`
	ShowValues  bool              `toml:"show_values" json:"show_values,omitempty"`
}

var (
	_ validator.Validator = (*Spec)(nil)
	_ validator.Validator = (*File)(nil)
)

// Load reads and validates the document at path.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode parses a document, rejecting unknown keys, and validates it.
func Decode(r io.Reader) (File, error) {
	var file File
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return File{}, fmt.Errorf("failed to decode document: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, fmt.Errorf("unknown keys in document: %s", strings.Join(keys, ", "))
	}
	if fields := file.Validate(); fields != nil {
		return File{}, xerrors.Validation(fields, xerrors.WithMessage("invalid document: "+Describe(fields)))
	}
	return file, nil
}

// Describe flattens validation fields into one sorted line.
func Describe(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}

// ResolvedKind is the kind, defaulting to a single gauge.
func (s *Spec) ResolvedKind() Kind {
	if s.Kind == "" {
		return KindSingle
	}
	return s.Kind
}

// ResolvedSpan is the span, defaulting to a half circle.
func (s *Spec) ResolvedSpan() arc.Span {
	if s.Span == 0 {
		return arc.DefaultSpan
	}
	return arc.Span(s.Span)
}

// Range returns the value range, defaulting to 0-100.
func (s *Spec) Range() arc.Range {
	r := arc.Percent
	if s.Min != nil {
		r.Min = *s.Min
	}
	if s.Max != nil {
		r.Max = *s.Max
	}
	return r
}

func (s *Spec) keys() (category, value string) {
	category, value = s.CategoryKey, s.ValueKey
	if category == "" {
		category = DefaultCategoryKey
	}
	if value == "" {
		value = DefaultValueKey
	}
	return category, value
}

func (s *Spec) Validate() map[string]string {
	errs := make(map[string]string)

	if s.Name != "" && !namePattern.MatchString(s.Name) {
		errs["name"] = "must contain only letters, digits, '-' and '_'"
	}
	switch s.ResolvedKind() {
	case KindSingle, KindSegments, KindLegend:
	default:
		errs["kind"] = fmt.Sprintf("unknown kind %q (valid: single, segments, legend)", s.Kind)
	}
	if s.Span != 0 && !arc.Span(s.Span).Valid() {
		errs["span"] = "must be 180, 240 or 270"
	}
	for field, v := range map[string]*float64{"value": s.Value, "min": s.Min, "max": s.Max, "size": &s.Size, "stroke": &s.Stroke} {
		if v != nil && !finite(*v) {
			errs[field] = "must be a finite number"
		}
	}
	if s.Size < 0 {
		errs["size"] = "must not be negative"
	}
	if s.Stroke < 0 || (s.Size > 0 && s.Stroke >= s.Size) {
		errs["stroke"] = "must be between 0 and size"
	}
	if s.Color != "" && !palette.Valid(s.Color) {
		errs["color"] = fmt.Sprintf("unknown color %q", s.Color)
	}
	for i, c := range s.Colors {
		if !palette.Valid(c) {
			errs[fmt.Sprintf("colors[%d]", i)] = fmt.Sprintf("unknown color %q", c)
		}
	}
	for i, t := range s.Thresholds {
		if !finite(t.Value) {
			errs[fmt.Sprintf("thresholds[%d].value", i)] = "must be a finite number"
		}
		if !palette.Valid(t.Color) {
			errs[fmt.Sprintf("thresholds[%d].color", i)] = fmt.Sprintf("unknown color %q", t.Color)
		}
	}

	switch s.ResolvedKind() {
	case KindSingle:
		if r := s.Range(); r.Min > r.Max {
			errs["min"] = "must not exceed max"
		}
	case KindSegments, KindLegend:
		if len(s.Data) == 0 {
			errs["data"] = "must not be empty"
		} else {
			category, value := s.keys()
			if _, err := gauge.Extract(s.Data, category, value); err != nil {
				errs["data"] = err.Error()
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f *File) Validate() map[string]string {
	errs := make(map[string]string)
	if len(f.Gauges) == 0 {
		errs["gauge"] = "document defines no gauges"
	}
	seen := make(map[string]int)
	for i, s := range f.Gauges {
		for field, msg := range s.Validate() {
			errs[fmt.Sprintf("gauge[%d].%s", i, field)] = msg
		}
		if s.Name == "" && len(f.Gauges) > 1 {
			errs[fmt.Sprintf("gauge[%d].name", i)] = "required when a document has several gauges"
			continue
		}
		if j, dup := seen[s.Name]; dup && s.Name != "" {
			errs[fmt.Sprintf("gauge[%d].name", i)] = fmt.Sprintf("duplicates gauge[%d]", j)
			continue
		}
		seen[s.Name] = i
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Datums extracts the spec's records under its category and value keys.
func (s *Spec) Datums() ([]gauge.Datum, error) {
	category, value := s.keys()
	return gauge.Extract(s.Data, category, value)
}

// Build turns the spec into a renderer. The spec must be valid.
func (s *Spec) Build() (gauge.Renderer, error) {
	switch s.ResolvedKind() {
	case KindSingle:
		return s.Gauge(), nil
	case KindSegments:
		data, err := s.Datums()
		if err != nil {
			return nil, fmt.Errorf("failed to extract data: %w", err)
		}
		return gauge.SegmentGauge{
			Data:        data,
			Span:        s.ResolvedSpan(),
			Colors:      s.Colors,
			Active:      s.Active,
			Label:       s.Label,
			Size:        s.Size,
			StrokeWidth: s.Stroke,
		}, nil
	case KindLegend:
		data, err := s.Datums()
		if err != nil {
			return nil, fmt.Errorf("failed to extract data: %w", err)
		}
		return gauge.Legend{
			Data:       data,
			Colors:     s.Colors,
			Active:     s.Active,
			ShowValues: s.ShowValues,
			Width:      s.Size,
		}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", s.Kind)
	}
}

// Gauge builds the single-value gauge described by the spec.
func (s *Spec) Gauge() gauge.Gauge {
	color := s.Color
	if color == "" {
		color = palette.Default
	}
	opts := []gauge.Option{
		gauge.WithSpan(s.ResolvedSpan()),
		gauge.WithThresholds(s.Thresholds...),
	}
	if s.Name != "" {
		opts = append(opts, gauge.WithID(s.Name))
	}
	if s.Size > 0 {
		opts = append(opts, gauge.WithSize(s.Size))
	}
	if s.Stroke > 0 {
		opts = append(opts, gauge.WithStrokeWidth(s.Stroke))
	}
	if s.Gradient {
		opts = append(opts, gauge.WithGradient())
	}
	if s.Needle {
		opts = append(opts, gauge.WithNeedle())
	}
	if s.RangeLabels {
		opts = append(opts, gauge.WithRangeLabels())
	}
	return gauge.New(s.Value, s.Range(), s.Label, color, opts...)
}
