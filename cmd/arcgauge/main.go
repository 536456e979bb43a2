package main

import (
	"context"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/arcgauge/internal/version"
	"github.com/garrettladley/arcgauge/internal/xslog"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(xslog.NewLoggerFromEnv(os.Stderr))

	rootCmd := &cobra.Command{
		Use:     "arcgauge",
		Short:   "Arc gauges as SVG, JSON geometry or terminal previews",
		Version: version.Get(),
	}

	rootCmd.AddCommand(
		renderCmd(),
		arcCmd(),
		previewCmd(),
		serveCmd(),
	)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
