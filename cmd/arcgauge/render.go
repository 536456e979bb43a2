package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/garrettladley/arcgauge/internal/document"
)

func renderCmd() *cobra.Command {
	var (
		outDir string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render gauges from a TOML document to SVG",
		Long: "Renders every gauge in the document. A single gauge is written to stdout; " +
			"several gauges need --out, where each lands in <name>.svg.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadDocument(documentArg(args))
			if err != nil {
				return err
			}
			specs, err := selectGauges(f, name)
			if err != nil {
				return err
			}

			if outDir == "" {
				if len(specs) != 1 {
					return fmt.Errorf("document has %d gauges; use --out or --name", len(specs))
				}
				r, err := specs[0].Build()
				if err != nil {
					return err
				}
				return r.Render(cmd.OutOrStdout())
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			for i, spec := range specs {
				path := filepath.Join(outDir, fileName(spec, i))
				if err := writeSVG(path, spec); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to write one SVG per gauge")
	cmd.Flags().StringVarP(&name, "name", "n", "", "render only the named gauge")

	return cmd
}

func fileName(spec document.Spec, i int) string {
	if spec.Name != "" {
		return spec.Name + ".svg"
	}
	return fmt.Sprintf("gauge-%d.svg", i+1)
}

func writeSVG(path string, spec document.Spec) (err error) {
	r, err := spec.Build()
	if err != nil {
		return fmt.Errorf("failed to build %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := r.Render(f); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}
