package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/1broseidon/seamless/internal/logger"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig overlays raw onto the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = strings.TrimSpace(*raw.Display)
	}
	if raw.MaxRects != nil {
		cfg.MaxRects = *raw.MaxRects
	}
	if raw.ReconcileInterval != nil {
		d, err := parseInterval(*raw.ReconcileInterval)
		if err != nil {
			return nil, &ValidationError{Path: "reconcile_interval", Err: err}
		}
		cfg.ReconcileInterval = d
	}

	if raw.Log != nil {
		if raw.Log.Level != nil {
			cfg.Log.Level = strings.ToLower(strings.TrimSpace(*raw.Log.Level))
		}
		if raw.Log.Format != nil {
			cfg.Log.Format = logger.Format(strings.ToLower(strings.TrimSpace(*raw.Log.Format)))
		}
		if raw.Log.File != nil {
			file, err := expandHome(*raw.Log.File)
			if err != nil {
				return nil, &ValidationError{Path: "log.file", Err: err}
			}
			cfg.Log.File = file
		}
	}

	if raw.IPC != nil {
		if raw.IPC.Enabled != nil {
			cfg.IPC.Enabled = *raw.IPC.Enabled
		}
		if raw.IPC.Socket != nil {
			socket, err := expandHome(*raw.IPC.Socket)
			if err != nil {
				return nil, &ValidationError{Path: "ipc.socket", Err: err}
			}
			cfg.IPC.Socket = socket
		}
	}

	return cfg, nil
}

// parseInterval accepts Go duration strings; "0" and "" disable.
func parseInterval(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return d, nil
}

func expandHome(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
