package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/1broseidon/seamless/internal/logger"
)

const (
	DefaultLogLevel          = "info"
	DefaultReconcileInterval = 30 * time.Second
)

// Config is the effective configuration used by the daemon and CLI.
type Config struct {
	// Display is the X display to track; empty means $DISPLAY.
	Display string `yaml:"display"`
	// MaxRects caps the published rectangle list; 0 means unlimited.
	MaxRects int `yaml:"max_rects"`
	// ReconcileInterval schedules periodic full rebuilds; 0 disables them.
	ReconcileInterval time.Duration `yaml:"reconcile_interval"`

	Log LogConfig `yaml:"log"`
	IPC IPCConfig `yaml:"ipc"`
}

type LogConfig struct {
	Level  string        `yaml:"level"`
	Format logger.Format `yaml:"format"`
	// File is the log destination; empty means stderr.
	File string `yaml:"file"`
}

type IPCConfig struct {
	Enabled bool `yaml:"enabled"`
	// Socket overrides the runtime-directory socket path.
	Socket string `yaml:"socket"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		ReconcileInterval: DefaultReconcileInterval,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: logger.FormatConsole,
		},
		IPC: IPCConfig{
			Enabled: true,
		},
	}
}

var validLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// Validate checks semantic constraints the YAML decoder cannot express.
func (c *Config) Validate() error {
	if c.MaxRects < 0 {
		return &ValidationError{Path: "max_rects", Err: fmt.Errorf("must be >= 0, got %d", c.MaxRects)}
	}
	if c.ReconcileInterval < 0 {
		return &ValidationError{Path: "reconcile_interval", Err: fmt.Errorf("must not be negative, got %s", c.ReconcileInterval)}
	}
	if c.ReconcileInterval > 0 && c.ReconcileInterval < time.Second {
		return &ValidationError{Path: "reconcile_interval", Err: fmt.Errorf("must be at least 1s or 0 to disable, got %s", c.ReconcileInterval)}
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	valid := false
	for _, l := range validLogLevels {
		if level == l {
			valid = true
			break
		}
	}
	if !valid {
		return &ValidationError{Path: "log.level", Err: fmt.Errorf("must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.Log.Level)}
	}

	switch c.Log.Format {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return &ValidationError{Path: "log.format", Err: fmt.Errorf("must be %q or %q, got %q", logger.FormatConsole, logger.FormatJSON, c.Log.Format)}
	}

	if c.IPC.Socket != "" && !strings.HasPrefix(c.IPC.Socket, "/") {
		return &ValidationError{Path: "ipc.socket", Err: fmt.Errorf("must be an absolute path, got %q", c.IPC.Socket)}
	}
	return nil
}
