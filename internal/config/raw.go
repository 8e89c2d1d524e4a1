package config

// RawConfig mirrors the YAML file. Nil fields were not set and take their
// defaults in BuildEffectiveConfig.
type RawConfig struct {
	Display           *string `yaml:"display"`
	MaxRects          *int    `yaml:"max_rects"`
	ReconcileInterval *string `yaml:"reconcile_interval"`
	Log               *RawLog `yaml:"log"`
	IPC               *RawIPC `yaml:"ipc"`
}

type RawLog struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
	File   *string `yaml:"file"`
}

type RawIPC struct {
	Enabled *bool   `yaml:"enabled"`
	Socket  *string `yaml:"socket"`
}
