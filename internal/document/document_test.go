package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/gauge"
	"github.com/garrettladley/arcgauge/internal/palette"
	"github.com/garrettladley/arcgauge/internal/xerrors"
)

const sample = `
[[gauge]]
name = "cpu"
value = 72
span = 240
color = "violet"
needle = true
thresholds = [
  { value = 80, color = "pink" },
]

[[gauge]]
name = "traffic"
kind = "segments"
span = 270
category_key = "region"
value_key = "requests"
colors = ["emerald", "amber"]
active = "eu"
data = [
  { region = "eu", requests = 50 },
  { region = "us", requests = 30 },
  { region = "apac", requests = 20 },
]

[[gauge]]
name = "traffic-legend"
kind = "legend"
category_key = "region"
value_key = "requests"
show_values = true
data = [
  { region = "eu", requests = 50 },
]
`

func TestDecode(t *testing.T) {
	t.Parallel()

	file, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(file.Gauges) != 3 {
		t.Fatalf("got %d gauges, want 3", len(file.Gauges))
	}

	cpu := file.Gauges[0]
	g, ok := mustBuild(t, &cpu).(gauge.Gauge)
	if !ok {
		t.Fatalf("cpu built %T, want gauge.Gauge", mustBuild(t, &cpu))
	}
	if g.Span != arc.Span240 || g.Color != palette.Violet || !g.ShowNeedle || g.ID != "cpu" {
		t.Errorf("cpu gauge = span %v color %q needle %v id %q", g.Span, g.Color, g.ShowNeedle, g.ID)
	}
	if diff := cmp.Diff(arc.Percent, g.Range); diff != "" {
		t.Errorf("default range mismatch (-want +got):\n%s", diff)
	}
	if g.FillColor() != palette.Violet {
		t.Errorf("FillColor() = %q, want %q", g.FillColor(), palette.Violet)
	}

	traffic := file.Gauges[1]
	seg, ok := mustBuild(t, &traffic).(gauge.SegmentGauge)
	if !ok {
		t.Fatal("traffic did not build a segment gauge")
	}
	want := []gauge.Datum{{Name: "eu", Value: 50}, {Name: "us", Value: 30}, {Name: "apac", Value: 20}}
	if diff := cmp.Diff(want, seg.Data); diff != "" {
		t.Errorf("segment data mismatch (-want +got):\n%s", diff)
	}
	if seg.Active != "eu" || seg.Span != arc.Span270 {
		t.Errorf("segment gauge active %q span %v", seg.Active, seg.Span)
	}

	legendSpec := file.Gauges[2]
	legend, ok := mustBuild(t, &legendSpec).(gauge.Legend)
	if !ok {
		t.Fatal("traffic-legend did not build a legend")
	}
	if !legend.ShowValues || len(legend.Data) != 1 {
		t.Errorf("legend = %+v", legend)
	}
}

func mustBuild(t *testing.T, s *Spec) gauge.Renderer {
	t.Helper()
	r, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return r
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		doc        string
		wantFields []string
		wantSubstr string
	}{
		{
			name:       "unknown key",
			doc:        "[[gauge]]\nvalue = 1\nwobble = true\n",
			wantSubstr: "unknown keys in document: gauge.wobble",
		},
		{
			name:       "syntax error",
			doc:        "[[gauge]\n",
			wantSubstr: "failed to decode document",
		},
		{
			name:       "empty",
			doc:        "",
			wantFields: []string{"gauge"},
		},
		{
			name:       "bad span and color",
			doc:        "[[gauge]]\nspan = 90\ncolor = \"mauve\"\n",
			wantFields: []string{"gauge[0].color", "gauge[0].span"},
		},
		{
			name:       "names required with several gauges",
			doc:        "[[gauge]]\nvalue = 1\n[[gauge]]\nvalue = 2\n",
			wantFields: []string{"gauge[0].name", "gauge[1].name"},
		},
		{
			name:       "duplicate names",
			doc:        "[[gauge]]\nname = \"a\"\n[[gauge]]\nname = \"a\"\n",
			wantFields: []string{"gauge[1].name"},
		},
		{
			name:       "segments without data",
			doc:        "[[gauge]]\nkind = \"segments\"\n",
			wantFields: []string{"gauge[0].data"},
		},
		{
			name:       "segments with bad record",
			doc:        "[[gauge]]\nkind = \"segments\"\ndata = [{ name = \"a\" }]\n",
			wantFields: []string{"gauge[0].data"},
		},
		{
			name:       "inverted range",
			doc:        "[[gauge]]\nmin = 10\nmax = 5\n",
			wantFields: []string{"gauge[0].min"},
		},
		{
			name:       "non-finite numbers",
			doc:        "[[gauge]]\nvalue = nan\nsize = inf\nthresholds = [{ value = -inf, color = \"pink\" }]\n",
			wantFields: []string{"gauge[0].size", "gauge[0].thresholds[0].value", "gauge[0].value"},
		},
		{
			name:       "unknown kind",
			doc:        "[[gauge]]\nkind = \"radar\"\n",
			wantFields: []string{"gauge[0].kind"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
			if tt.wantSubstr != "" && !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error %q does not contain %q", err, tt.wantSubstr)
			}
			if tt.wantFields == nil {
				return
			}
			verr := xerrors.As(err)
			if verr == nil || verr.Validation == nil {
				t.Fatalf("error %v is not a validation error", err)
			}
			var got []string
			for k := range verr.Validation.Fields {
				got = append(got, k)
			}
			if diff := cmp.Diff(tt.wantFields, got, sortStrings); diff != "" {
				t.Errorf("invalid fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

var sortStrings = cmpopts.SortSlices(func(a, b string) bool { return a < b })

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "gauges.toml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(file.Gauges) != 3 {
		t.Errorf("got %d gauges, want 3", len(file.Gauges))
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	got := Describe(map[string]string{"b": "two", "a": "one"})
	if want := "a: one; b: two"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
