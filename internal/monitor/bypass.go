package monitor

import (
	"fmt"
	"strings"

	"github.com/pranshuparmar/renderwatch/internal/platform"
)

// BypassMode controls whether the process table is read at all. Reading
// it is known to hang on some macOS host versions.
type BypassMode string

const (
	BypassAuto BypassMode = "auto"
	BypassOn   BypassMode = "on"
	BypassOff  BypassMode = "off"
)

// ParseBypassMode accepts auto, on or off; an empty string means auto.
func ParseBypassMode(s string) (BypassMode, error) {
	switch m := BypassMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return BypassAuto, nil
	case BypassAuto, BypassOn, BypassOff:
		return m, nil
	default:
		return "", fmt.Errorf("invalid bypass mode %q (want auto, on or off)", s)
	}
}

// Enabled resolves the mode for a profile. Auto turns bypass on for macOS only.
func (m BypassMode) Enabled(p platform.Profile) bool {
	switch m {
	case BypassOn:
		return true
	case BypassOff:
		return false
	default:
		return p.IsDarwin()
	}
}
