package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/pranshuparmar/renderwatch/pkg/model"
)

var (
	tableColorReset  = "\033[0m"
	tableColorRed    = "\033[31m"
	tableColorGreen  = "\033[32m"
	tableColorBlue   = "\033[34m"
	tableColorYellow = "\033[33m"
)

// TableRenderer writes aligned, optionally colored tables.
type TableRenderer struct {
	writer       *tabwriter.Writer
	colorEnabled bool
}

// NewTableRenderer creates a renderer writing to w.
func NewTableRenderer(w io.Writer, colorEnabled bool) *TableRenderer {
	return &TableRenderer{
		writer:       tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		colorEnabled: colorEnabled,
	}
}

func (t *TableRenderer) color(code, s string) string {
	if !t.colorEnabled {
		return s
	}
	return code + s + tableColorReset
}

func (t *TableRenderer) header(columns, separator string) {
	fmt.Fprintln(t.writer, t.color(tableColorBlue, columns))
	fmt.Fprintln(t.writer, separator)
}

// RenderListing prints a listing in index order. A sentinel listing is
// printed as a single highlighted line.
func (t *TableRenderer) RenderListing(path string, listing model.Listing) {
	defer t.writer.Flush()

	if name, ok := listing.Sentinel(); ok {
		code := tableColorYellow
		if name == model.SentinelInvalidPath {
			code = tableColorRed
		}
		fmt.Fprintf(t.writer, "%s %s\n", t.color(code, name), path)
		return
	}

	t.header(" #\tNAME\tSIZE\tDATE\tTIME", " ─\t────\t────\t────\t────")
	for _, r := range listing.Ordered() {
		fmt.Fprintf(t.writer, " %d\t%s\t%s\t%s\t%s\n", r.Index, r.Name, FormatSize(r.Size), r.Date, r.Time)
	}
	t.writer.Flush()
	t.footer(fmt.Sprintf("%d entries in %s", len(listing), path))
}

// RenderProcesses prints the recognized render processes of a snapshot.
func (t *TableRenderer) RenderProcesses(records []model.ProcessRecord, bypassed bool) {
	defer t.writer.Flush()

	if bypassed {
		fmt.Fprintln(t.writer, t.color(tableColorYellow, "Process check skipped (bypass enabled)"))
		return
	}
	if len(records) == 0 {
		fmt.Fprintln(t.writer, "No render processes running")
		return
	}

	t.header(" PID\tNAME", " ───\t────")
	for _, r := range records {
		fmt.Fprintf(t.writer, " %s\t%s\n", r.PID, r.Name)
	}
	t.writer.Flush()
	t.footer(fmt.Sprintf("Found %d render processes", len(records)))
}

func (t *TableRenderer) footer(msg string) {
	fmt.Fprintln(t.writer)
	fmt.Fprintln(t.writer, t.color(tableColorGreen, msg))
}

// FormatSize renders a byte count like "1.0 MiB", or "-" when unknown.
func FormatSize(size int64) string {
	if size < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(size))
}
