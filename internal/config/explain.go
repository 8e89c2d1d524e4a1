package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and where
// it came from.
//
// Supported paths:
//
//	display
//	max_rects
//	reconcile_interval
//	log.level
//	log.format
//	log.file
//	ipc.enabled
//	ipc.socket
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

// Paths lists every path Explain accepts, in file order.
func Paths() []string {
	return []string{
		"display",
		"max_rects",
		"reconcile_interval",
		"log.level",
		"log.format",
		"log.file",
		"ipc.enabled",
		"ipc.socket",
	}
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch path {
	case "display":
		return cfg.Display, nil
	case "max_rects":
		return cfg.MaxRects, nil
	case "reconcile_interval":
		return cfg.ReconcileInterval.String(), nil
	case "log.level":
		return cfg.Log.Level, nil
	case "log.format":
		return string(cfg.Log.Format), nil
	case "log.file":
		return cfg.Log.File, nil
	case "ipc.enabled":
		return cfg.IPC.Enabled, nil
	case "ipc.socket":
		return cfg.IPC.Socket, nil
	default:
		return nil, fmt.Errorf("unknown config path %q", path)
	}
}
