// Package platform resolves the host OS family into an immutable Profile
// holding the command templates and parsing dialect used by the directory
// enumerator and the process monitor.
package platform

import "runtime"

// Family is the operating system family.
type Family int

const (
	Linux Family = iota
	Darwin
	Windows
)

func (f Family) String() string {
	switch f {
	case Windows:
		return "windows"
	case Darwin:
		return "darwin"
	default:
		return "linux"
	}
}

// Dialect selects how command output is parsed.
type Dialect int

const (
	DialectUnix Dialect = iota
	DialectWindows
)

func (d Dialect) String() string {
	if d == DialectWindows {
		return "windows"
	}
	return "unix"
}

// Profile is resolved once and shared read-only. Build it with Detect or ForFamily.
type Profile struct {
	Family        Family
	Dialect       Dialect
	PathSeparator string
	ExeSuffix     string
}

// Detect returns the profile of the running OS.
func Detect() Profile {
	switch runtime.GOOS {
	case "windows":
		return ForFamily(Windows)
	case "darwin":
		return ForFamily(Darwin)
	default:
		return ForFamily(Linux)
	}
}

// ForFamily returns the profile for f regardless of the host OS.
func ForFamily(f Family) Profile {
	if f == Windows {
		return Profile{
			Family:        Windows,
			Dialect:       DialectWindows,
			PathSeparator: `\`,
			ExeSuffix:     ".exe",
		}
	}
	return Profile{
		Family:        f,
		Dialect:       DialectUnix,
		PathSeparator: "/",
		ExeSuffix:     "",
	}
}

func (p Profile) IsWindows() bool { return p.Family == Windows }

func (p Profile) IsDarwin() bool { return p.Family == Darwin }

// IsUnix reports whether the profile speaks the Unix shell dialect.
func (p Profile) IsUnix() bool { return p.Dialect == DialectUnix }

// ShellPrefix is the interpreter commands are handed to.
func (p Profile) ShellPrefix() string {
	if p.IsWindows() {
		return "cmd /c"
	}
	return "sh -c"
}

// WorkerExecutableName is the render worker binary name for this OS.
func (p Profile) WorkerExecutableName() string {
	return "aerender" + p.ExeSuffix
}

// Join joins path elements with the profile's separator.
func (p Profile) Join(elem ...string) string {
	out := ""
	for _, e := range elem {
		if e == "" {
			continue
		}
		if out == "" {
			out = e
			continue
		}
		if !hasSuffixAny(out, `\`, "/") {
			out += p.PathSeparator
		}
		out += e
	}
	return out
}

func hasSuffixAny(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if len(s) >= len(suf) && s[len(s)-len(suf):] == suf {
			return true
		}
	}
	return false
}
