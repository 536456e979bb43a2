package main

import (
	"errors"
	"fmt"
	"log/slog"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/xslog"
)

// overfillTolerance absorbs float error when fractions sum to exactly 1.
const overfillTolerance = 1e-9

type dashOutput struct {
	arc.Descriptor
	DashArray  string `json:"dasharray"`
	DashOffset string `json:"dashoffset"`
}

type needleOutput struct {
	Angle float64   `json:"angle"`
	Value float64   `json:"value"`
	Range arc.Range `json:"range"`
	Span  arc.Span  `json:"span"`
}

type segmentsOutput struct {
	Segments   []dashOutput `json:"segments"`
	Sum        float64      `json:"sum"`
	Overfilled bool         `json:"overfilled"`
}

func arcCmd() *cobra.Command {
	var (
		radius    float64
		spanFlag  string
		fraction  float64
		fractions []float64
		needle    float64
		minValue  float64
		maxValue  float64
	)

	cmd := &cobra.Command{
		Use:   "arc",
		Short: "Print arc geometry as JSON",
		Long: "Prints the dash descriptor of an arc filled to --fraction, the descriptors of " +
			"--segments laid end to end, or the rotation of a needle pointing at --needle.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			span, err := arc.ParseSpan(spanFlag)
			if err != nil {
				return err
			}

			var (
				flags  = cmd.Flags()
				engine = arc.Default
				out    any
			)
			switch {
			case flags.Changed("needle"):
				r := arc.Range{Min: minValue, Max: maxValue}
				if r.Min > r.Max {
					return errors.New("--min must not exceed --max")
				}
				out = needleOutput{
					Angle: engine.NeedleAngle(needle, r, span),
					Value: needle,
					Range: r,
					Span:  span,
				}
			case flags.Changed("segments"):
				if radius <= 0 {
					return errors.New("--radius must be positive")
				}
				sum := arc.Sum(fractions)
				res := segmentsOutput{
					Segments:   make([]dashOutput, 0, len(fractions)),
					Sum:        sum,
					Overfilled: sum > 1+overfillTolerance,
				}
				for _, d := range engine.Segments(radius, span, fractions) {
					res.Segments = append(res.Segments, newDashOutput(d))
				}
				if res.Overfilled {
					slog.WarnContext(cmd.Context(), "segment fractions exceed the track",
						xslog.FractionSum(sum))
				}
				out = res
			default:
				if radius <= 0 {
					return errors.New("--radius must be positive")
				}
				out = newDashOutput(engine.Dash(radius, span, fraction))
			}

			enc := go_json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("failed to encode geometry: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64VarP(&radius, "radius", "r", 40, "circle radius")
	flags.StringVarP(&spanFlag, "span", "s", arc.DefaultSpan.String(), "arc span in degrees (180, 240 or 270)")
	flags.Float64VarP(&fraction, "fraction", "f", 1, "filled fraction of the span")
	flags.Float64SliceVar(&fractions, "segments", nil, "comma-separated segment fractions")
	flags.Float64Var(&needle, "needle", 0, "value the needle points at")
	flags.Float64Var(&minValue, "min", 0, "needle range minimum")
	flags.Float64Var(&maxValue, "max", 100, "needle range maximum")
	cmd.MarkFlagsMutuallyExclusive("needle", "segments", "fraction")

	return cmd
}

func newDashOutput(d arc.Descriptor) dashOutput {
	return dashOutput{
		Descriptor: d,
		DashArray:  d.DashArray(),
		DashOffset: d.DashOffset(),
	}
}
