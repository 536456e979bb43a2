package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/garrettladley/arcgauge/internal/document"
	"github.com/garrettladley/arcgauge/internal/palette"
	"github.com/garrettladley/arcgauge/internal/service/render"
	"github.com/garrettladley/arcgauge/internal/xerrors"
	"github.com/garrettladley/arcgauge/internal/xhttp"
)

const etagLength = 32

type Gauges struct {
	service      render.Service
	maxAge       time.Duration
	maxBodyBytes int64
}

func NewGauges(service render.Service, maxAge time.Duration, maxBodyBytes int64) *Gauges {
	return &Gauges{service: service, maxAge: maxAge, maxBodyBytes: maxBodyBytes}
}

// HandleGauge handles GET /gauge.svg.
// Query params: value, min, max, span, color, size, stroke, label, name,
// needle, gradient, range_labels, threshold=<value>:<color> (repeatable).
func (h *Gauges) HandleGauge(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	spec := document.Spec{
		Kind:        document.KindSingle,
		Name:        r.URL.Query().Get("name"),
		Label:       r.URL.Query().Get("label"),
		Value:       q.float("value"),
		Min:         q.float("min"),
		Max:         q.float("max"),
		Span:        q.span().Degrees(),
		Color:       q.color("color"),
		Size:        q.floatOr("size", 0),
		Stroke:      q.floatOr("stroke", 0),
		Needle:      q.boolean("needle"),
		Gradient:    q.boolean("gradient"),
		RangeLabels: q.boolean("range_labels"),
		Thresholds:  q.thresholds(),
	}
	if err := q.err(); err != nil {
		xerrors.WriteError(r.Context(), w, err)
		return
	}
	h.render(w, r, spec)
}

type segmentsRequest struct {
	Name        string           `json:"name"`
	Data        []map[string]any `json:"data"`
	CategoryKey string           `json:"category_key"`
	ValueKey    string           `json:"value_key"`
	Span        float64          `json:"span"`
	Colors      []palette.Token  `json:"colors"`
	Active      string           `json:"active"`
	Size        float64          `json:"size"`
	Stroke      float64          `json:"stroke"`
	Label       string           `json:"label"`
}

// HandleSegments handles POST /segments.svg.
func (h *Gauges) HandleSegments(w http.ResponseWriter, r *http.Request) {
	var req segmentsRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		xerrors.WriteError(r.Context(), w, err)
		return
	}
	h.render(w, r, document.Spec{
		Kind:        document.KindSegments,
		Name:        req.Name,
		Data:        req.Data,
		CategoryKey: req.CategoryKey,
		ValueKey:    req.ValueKey,
		Span:        req.Span,
		Colors:      req.Colors,
		Active:      req.Active,
		Size:        req.Size,
		Stroke:      req.Stroke,
		Label:       req.Label,
	})
}

type legendRequest struct {
	Data        []map[string]any `json:"data"`
	CategoryKey string           `json:"category_key"`
	ValueKey    string           `json:"value_key"`
	Colors      []palette.Token  `json:"colors"`
	Active      string           `json:"active"`
	ShowValues  bool             `json:"show_values"`
	Width       float64          `json:"width"`
}

// HandleLegend handles POST /legend.svg.
func (h *Gauges) HandleLegend(w http.ResponseWriter, r *http.Request) {
	var req legendRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		xerrors.WriteError(r.Context(), w, err)
		return
	}
	h.render(w, r, document.Spec{
		Kind:        document.KindLegend,
		Data:        req.Data,
		CategoryKey: req.CategoryKey,
		ValueKey:    req.ValueKey,
		Colors:      req.Colors,
		Active:      req.Active,
		ShowValues:  req.ShowValues,
		Size:        req.Width,
	})
}

func (h *Gauges) render(w http.ResponseWriter, r *http.Request, spec document.Spec) {
	res, err := h.service.Render(r.Context(), spec)
	if err != nil {
		xerrors.WriteError(r.Context(), w, err)
		return
	}

	tag := res.Key
	if len(tag) > etagLength {
		tag = tag[:etagLength]
	}
	xhttp.SetHeaderETag(w, tag)
	xhttp.SetHeaderCacheStatus(w, res.Cached)
	if h.maxAge > 0 {
		xhttp.SetHeaderCacheMaxAge(w, h.maxAge)
	}

	if etagMatches(r.Header.Get(xhttp.IfNoneMatch), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	xhttp.WriteSVG(w, http.StatusOK, res.SVG)
}

func etagMatches(header, tag string) bool {
	if header == "" {
		return false
	}
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == `"`+tag+`"` {
			return true
		}
	}
	return false
}
