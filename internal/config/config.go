// Package config reads stamp-mcp settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvLogLevel    = "STAMP_MCP_LOG_LEVEL"
	EnvLogFile     = "STAMP_MCP_LOG_FILE"
	EnvCanvasSize  = "STAMP_MCP_CANVAS_SIZE"
	EnvStrokeWidth = "STAMP_MCP_STROKE_WIDTH"
	EnvStrokeColor = "STAMP_MCP_STROKE_COLOR"
	EnvExportDir   = "STAMP_MCP_EXPORT_DIR"
)

// Defaults.
const (
	DefaultCanvasSize  = 400
	DefaultStrokeWidth = 10.0
	DefaultStrokeColor = "#111111"
	DefaultExportDir   = "."
)

// Config holds the process settings.
type Config struct {
	// Debug enables debug logging.
	Debug bool
	// LogFile, when set, sends logs to a rotating file instead of stderr.
	LogFile string

	// CanvasSize is the side D of the square working canvas and of every stamp.
	CanvasSize int
	// StrokeWidth and StrokeColor style the ring drawn around each stamp.
	StrokeWidth float64
	StrokeColor string

	// ExportDir is where exported stamps go unless the filename is absolute.
	ExportDir string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CanvasSize:  DefaultCanvasSize,
		StrokeWidth: DefaultStrokeWidth,
		StrokeColor: DefaultStrokeColor,
		ExportDir:   DefaultExportDir,
	}
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from a lookup function shaped like os.LookupEnv.
// Unset or empty variables keep their defaults; malformed ones are errors.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvLogLevel); ok {
		switch strings.ToLower(v) {
		case "debug":
			cfg.Debug = true
		case "info", "warn", "error":
		default:
			return Config{}, fmt.Errorf("%s: unknown level %q", EnvLogLevel, v)
		}
	}
	if v, ok := get(EnvLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := get(EnvCanvasSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 3 {
			return Config{}, fmt.Errorf("%s: want an integer >= 3, got %q", EnvCanvasSize, v)
		}
		cfg.CanvasSize = n
	}
	if v, ok := get(EnvStrokeWidth); ok {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil || w < 0 {
			return Config{}, fmt.Errorf("%s: want a non-negative number, got %q", EnvStrokeWidth, v)
		}
		cfg.StrokeWidth = w
	}
	if v, ok := get(EnvStrokeColor); ok {
		cfg.StrokeColor = v
	}
	if v, ok := get(EnvExportDir); ok {
		cfg.ExportDir = v
	}

	return cfg, nil
}
