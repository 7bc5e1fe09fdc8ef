package platform

import (
	"fmt"
	"strings"

	"github.com/pranshuparmar/renderwatch/pkg/model"
)

// windowsListFlags maps each list kind to the dir switches that select it.
var windowsListFlags = map[model.ListKind]string{
	model.ListAll:           "/o:n",
	model.ListFiles:         "/o:n /a:-d-h",
	model.ListFolders:       "/o:n /a:d-h",
	model.ListHiddenFiles:   "/o:n /a:h-d",
	model.ListHiddenFolders: "/o:n /a:hd",
	model.ListAllHidden:     "/o:n /a:h",
}

// unixListCommands maps each list kind to the ls pipeline run inside the
// target directory. Glob based kinds silence ls so an empty match reads
// as an empty listing rather than a bad path.
var unixListCommands = map[model.ListKind]string{
	model.ListAll:           "ls -la",
	model.ListFiles:         "ls -l | grep '^-'",
	model.ListFolders:       "ls -ld */ 2>/dev/null",
	model.ListHiddenFiles:   "ls -ld .[!.]* 2>/dev/null | grep '^-'",
	model.ListHiddenFolders: "ls -ld .[!.]*/ 2>/dev/null",
	model.ListAllHidden:     "ls -ld .[!.]* 2>/dev/null",
}

// ListCommand returns the directory listing command for path.
// On Windows a non-empty mask is appended to the path so dir narrows the
// listing itself; the Unix commands never embed the mask and the caller
// filters by extension while parsing.
func (p Profile) ListCommand(path string, kind model.ListKind, mask string) string {
	if p.IsWindows() {
		flags, ok := windowsListFlags[kind]
		if !ok {
			flags = windowsListFlags[model.ListAll]
		}
		target := path
		if mask != "" {
			target = p.Join(path, mask)
		}
		return "dir " + QuoteWindows(target) + " " + flags
	}

	ls, ok := unixListCommands[kind]
	if !ok {
		ls = unixListCommands[model.ListAll]
	}
	return "cd " + QuoteUnix(path) + " && " + ls
}

// ProcessListCommand returns the command that prints the process table.
func (p Profile) ProcessListCommand() string {
	if p.IsWindows() {
		return "tasklist"
	}
	return "ps aux"
}

// KillCommand returns the command that force-terminates pid.
func (p Profile) KillCommand(pid string) string {
	if p.IsWindows() {
		return "taskkill /f /t /pid " + pid
	}
	return "kill -9 " + pid
}

// ValidateCommand returns the command that prints the process table row for
// pid. On Unix it prints the full argument list, the same text ps aux shows,
// so a pid matched in a snapshot matches again here.
func (p Profile) ValidateCommand(pid string) string {
	if p.IsWindows() {
		return fmt.Sprintf(`tasklist /fi "pid eq %s"`, pid)
	}
	return "ps -ww -p " + pid + " -o pid=,args="
}

// Redirect wraps command so both of its output streams land in file.
func (p Profile) Redirect(command, file string) string {
	if p.IsWindows() {
		return command + " > " + QuoteWindows(file) + " 2>&1"
	}
	return "{ " + command + "; } > " + QuoteUnix(file) + " 2>&1"
}

// QuoteWindows wraps s in double quotes. Windows paths cannot contain a
// double quote, so no escaping is needed.
func QuoteWindows(s string) string {
	return `"` + s + `"`
}

// QuoteUnix single-quotes s for sh.
func QuoteUnix(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
