package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/gauge"
	"github.com/garrettladley/arcgauge/internal/palette"
	"github.com/garrettladley/arcgauge/internal/xerrors"
	"github.com/garrettladley/arcgauge/internal/xhttp"
)

// decodeJSON reads a single JSON object of at most maxBytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return xerrors.RequestTooLarge(xerrors.WithMessage(
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
		}
		return xerrors.BadRequest(xerrors.WithMessage("failed to read body"), xerrors.WithCause(err))
	}

	dec := go_json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return xerrors.BadRequest(xerrors.WithMessage("invalid JSON body"), xerrors.WithCause(err))
	}
	if dec.More() {
		return xerrors.BadRequest(xerrors.WithMessage("invalid JSON body: trailing data"))
	}
	return nil
}

// query collects typed query parameters, recording one message per bad field.
type query struct {
	r      *http.Request
	fields map[string]string
}

func newQuery(r *http.Request) *query {
	return &query{r: r, fields: make(map[string]string)}
}

func (q *query) fail(key, msg string) {
	q.fields[key] = msg
}

func (q *query) float(key string) *float64 {
	v, ok, err := xhttp.QueryFloat(q.r, key)
	switch {
	case errors.Is(err, xhttp.ErrNotFinite):
		q.fail(key, "must be a finite number")
		return nil
	case err != nil:
		q.fail(key, "must be a number")
		return nil
	}
	if !ok {
		return nil
	}
	return &v
}

func (q *query) floatOr(key string, def float64) float64 {
	if v := q.float(key); v != nil {
		return *v
	}
	return def
}

func (q *query) boolean(key string) bool {
	v, _, err := xhttp.QueryBool(q.r, key)
	if err != nil {
		q.fail(key, "must be a boolean")
	}
	return v
}

func (q *query) span() arc.Span {
	raw := q.r.URL.Query().Get("span")
	if raw == "" {
		return arc.DefaultSpan
	}
	s, err := arc.ParseSpan(raw)
	if err != nil {
		q.fail("span", "must be 180, 240 or 270")
		return arc.DefaultSpan
	}
	return s
}

func (q *query) color(key string) palette.Token {
	raw := q.r.URL.Query().Get(key)
	if raw == "" {
		return ""
	}
	t := palette.Token(raw)
	if !palette.Valid(t) {
		q.fail(key, fmt.Sprintf("unknown color %q", raw))
	}
	return t
}

// thresholds parses repeated "threshold=<value>:<color>" parameters.
func (q *query) thresholds() []gauge.Threshold {
	raws := q.r.URL.Query()["threshold"]
	out := make([]gauge.Threshold, 0, len(raws))
	for i, raw := range raws {
		key := fmt.Sprintf("threshold[%d]", i)
		value, color, ok := strings.Cut(raw, ":")
		if !ok {
			q.fail(key, `must look like "<value>:<color>"`)
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			q.fail(key, "value must be a number")
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			q.fail(key, "value must be a finite number")
			continue
		}
		out = append(out, gauge.Threshold{Value: v, Color: palette.Token(color)})
	}
	return out
}

func (q *query) err() error {
	if len(q.fields) == 0 {
		return nil
	}
	return xerrors.Validation(q.fields)
}
