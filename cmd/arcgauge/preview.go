package main

import (
	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/arcgauge/internal/tui"
)

func previewCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Preview gauges in the terminal",
		Long:  "Opens a full-screen terminal view of the document's gauges for adjusting values, spans and selections.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadDocument(documentArg(args))
			if err != nil {
				return err
			}
			specs, err := selectGauges(f, name)
			if err != nil {
				return err
			}

			model := tui.New(specs)
			p := tea.NewProgram(&model, tea.WithContext(cmd.Context()))

			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "preview only the named gauge")

	return cmd
}
