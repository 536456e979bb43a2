package handler

import (
	"net/http"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/xerrors"
	"github.com/garrettladley/arcgauge/internal/xhttp"
	"github.com/garrettladley/arcgauge/internal/xslog"
)

// overfillTolerance absorbs float error when fractions are meant to sum to 1.
const overfillTolerance = 1e-9

type Geometry struct {
	engine       arc.Engine
	maxBodyBytes int64
}

func NewGeometry(engine arc.Engine, maxBodyBytes int64) *Geometry {
	if engine == nil {
		engine = arc.Default
	}
	return &Geometry{engine: engine, maxBodyBytes: maxBodyBytes}
}

type arcResponse struct {
	arc.Descriptor
	DashArray string `json:"dasharray"`
}

func newArcResponse(d arc.Descriptor) arcResponse {
	return arcResponse{Descriptor: d, DashArray: d.DashArray()}
}

// HandleArc handles GET /api/arc.
// Query params: radius (required), span (default 180), fraction (default 0).
func (h *Geometry) HandleArc(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	radius := q.float("radius")
	switch {
	case radius == nil && q.fields["radius"] == "":
		q.fail("radius", "is required")
	case radius != nil && *radius <= 0:
		q.fail("radius", "must be positive")
	}
	span := q.span()
	fraction := q.floatOr("fraction", 0)
	if err := q.err(); err != nil {
		xerrors.WriteError(r.Context(), w, err)
		return
	}

	xhttp.WriteOK(w, newArcResponse(h.engine.Dash(*radius, span, fraction)))
}

type needleResponse struct {
	Angle float64   `json:"angle"`
	Value float64   `json:"value"`
	Range arc.Range `json:"range"`
	Span  arc.Span  `json:"span"`
}

// HandleNeedle handles GET /api/needle.
// Query params: value (required), min (default 0), max (default 100), span.
func (h *Geometry) HandleNeedle(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	value := q.float("value")
	if value == nil && q.fields["value"] == "" {
		q.fail("value", "is required")
	}
	rng := arc.Range{Min: q.floatOr("min", arc.Percent.Min), Max: q.floatOr("max", arc.Percent.Max)}
	if rng.Min > rng.Max {
		q.fail("min", "must not exceed max")
	}
	span := q.span()
	if err := q.err(); err != nil {
		xerrors.WriteError(r.Context(), w, err)
		return
	}

	xhttp.WriteOK(w, needleResponse{
		Angle: h.engine.NeedleAngle(*value, rng, span),
		Value: *value,
		Range: rng,
		Span:  span,
	})
}

type segmentsGeometryRequest struct {
	Radius    float64   `json:"radius"`
	Span      float64   `json:"span"`
	Fractions []float64 `json:"fractions"`
}

func (req segmentsGeometryRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if req.Radius <= 0 {
		errs["radius"] = "must be positive"
	}
	if req.Span != 0 && !arc.Span(req.Span).Valid() {
		errs["span"] = "must be 180, 240 or 270"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type segmentsGeometryResponse struct {
	Segments   []arcResponse `json:"segments"`
	Sum        float64       `json:"sum"`
	Overfilled bool          `json:"overfilled"`
}

// HandleSegments handles POST /api/segments. Fractions are used as given:
// a sum above 1 is reported, not rescaled.
func (h *Geometry) HandleSegments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req segmentsGeometryRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		xerrors.WriteError(ctx, w, err)
		return
	}
	if fields := req.Validate(); fields != nil {
		xerrors.WriteError(ctx, w, xerrors.Validation(fields))
		return
	}

	span := arc.Span(req.Span)
	if span == 0 {
		span = arc.DefaultSpan
	}

	descriptors := h.engine.Segments(req.Radius, span, req.Fractions)
	resp := segmentsGeometryResponse{
		Segments: make([]arcResponse, len(descriptors)),
		Sum:      arc.Sum(req.Fractions),
	}
	for i, d := range descriptors {
		resp.Segments[i] = newArcResponse(d)
	}
	if resp.Sum > 1+overfillTolerance {
		resp.Overfilled = true
		xslog.FromContext(ctx).WarnContext(ctx, "segment fractions exceed the span",
			xslog.FractionSum(resp.Sum),
			xslog.Count(len(req.Fractions)),
		)
	}

	xhttp.WriteOK(w, resp)
}
