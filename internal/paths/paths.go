package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dotConfig    = ".config"
	appName      = "arcgauge"
	documentName = "gauges.toml"
	xdgConfig    = "XDG_CONFIG_HOME"
)

// Dir is $XDG_CONFIG_HOME/arcgauge, falling back to ~/.config/arcgauge.
func Dir() (string, error) {
	if xdg := os.Getenv(xdgConfig); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dotConfig, appName), nil
}

func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", appName, err)
	}
	return dir, nil
}

// Document is the gauge document used when no file is given on the command line.
func Document() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, documentName), nil
}
