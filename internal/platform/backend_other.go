//go:build !linux

package platform

import (
	"runtime"

	"github.com/pkg/errors"
)

// OpenDisplay is only implemented for X11 on Linux.
func OpenDisplay(display string) (WindowSystem, error) {
	return nil, errors.Errorf("seamless tracking is not supported on %s", runtime.GOOS)
}
