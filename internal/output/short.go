package output

import (
	"fmt"
	"io"
)

var (
	colorResetShort   = "\033[0m"
	colorGreenShort   = "\033[32m"
	colorYellowShort  = "\033[33m"
	colorMagentaShort = "\033[35m"
	colorRedShort     = "\033[31m"
)

func paint(colorEnabled bool, code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorResetShort
}

// RenderValidate prints one line saying whether pid is a live render process.
func RenderValidate(w io.Writer, pid string, valid bool, colorEnabled bool) {
	if valid {
		fmt.Fprintf(w, "%s %s\n", paint(colorEnabled, colorMagentaShort, "pid "+pid), paint(colorEnabled, colorGreenShort, "valid"))
		return
	}
	fmt.Fprintf(w, "%s %s\n", paint(colorEnabled, colorMagentaShort, "pid "+pid), paint(colorEnabled, colorYellowShort, "not a render process"))
}

// RenderKill prints the outcome of one kill request.
func RenderKill(w io.Writer, pid string, killed bool, colorEnabled bool) {
	if killed {
		fmt.Fprintf(w, "%s %s\n", paint(colorEnabled, colorMagentaShort, "pid "+pid), paint(colorEnabled, colorGreenShort, "killed"))
		return
	}
	fmt.Fprintf(w, "%s %s\n", paint(colorEnabled, colorMagentaShort, "pid "+pid), paint(colorEnabled, colorYellowShort, "skipped"))
}

// RenderKillFailed prints a kill whose command ran but did not terminate
// pid, followed by what the command printed.
func RenderKillFailed(w io.Writer, pid, output string, colorEnabled bool) {
	fmt.Fprintf(w, "%s %s %s\n", paint(colorEnabled, colorMagentaShort, "pid "+pid), paint(colorEnabled, colorRedShort, "failed:"), output)
}
