package output

import (
	"fmt"
	"io"
)

// PlatformInfo is what `renderwatch platform` reports.
type PlatformInfo struct {
	OS            string `json:"os"`
	Dialect       string `json:"dialect"`
	PathSeparator string `json:"path_separator"`
	ExeSuffix     string `json:"exe_suffix"`
	Shell         string `json:"shell"`
	WorkerPath    string `json:"worker_path"`
	Bypass        bool   `json:"bypass"`
}

var platformLabels = []string{"OS", "Dialect", "Separator", "Exe suffix", "Shell", "Worker", "Bypass"}

// RenderPlatform prints info as aligned label/value lines.
func RenderPlatform(w io.Writer, info PlatformInfo, colorEnabled bool) {
	values := []string{
		info.OS,
		info.Dialect,
		info.PathSeparator,
		info.ExeSuffix,
		info.Shell,
		info.WorkerPath,
		fmt.Sprintf("%t", info.Bypass),
	}
	for i, label := range platformLabels {
		value := values[i]
		if value == "" {
			value = "(none)"
		}
		fmt.Fprintf(w, "%s %s\n", paint(colorEnabled, colorMagentaShort, fmt.Sprintf("%10s:", label)), value)
	}
}
