package runtimepath

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

const socketName = "seamless.sock"

// Dir returns the runtime directory holding the daemon socket. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/seamless-runtime-<uid> (created)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := strconv.Itoa(os.Getuid())
	runUserDir := filepath.Join("/run/user", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := filepath.Join(os.TempDir(), "seamless-runtime-"+uid)
	if err := os.MkdirAll(tmpDir, 0o700); err != nil {
		return "", errors.Wrap(err, "failed to create runtime dir")
	}
	return tmpDir, nil
}

// SocketPath returns the daemon IPC socket path. A non-empty override, as
// set by ipc.socket in the config, wins over the runtime directory.
func SocketPath(override string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, socketName), nil
}
