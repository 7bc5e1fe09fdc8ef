package monitor

import (
	"strings"

	"github.com/pranshuparmar/renderwatch/internal/platform"
	"github.com/pranshuparmar/renderwatch/pkg/model"
)

// processFormat describes where a dialect's process-table rows keep the
// name and PID, and how its kill command reports failure.
type processFormat struct {
	pidField   int
	name       func(fields []string, sig Signature) string
	killFailed func(output string) bool
}

var processFormats = map[platform.Dialect]processFormat{
	// aerender.exe   4242 Console   1   81,234 K
	platform.DialectWindows: {
		pidField: 1,
		name:     func(fields []string, _ Signature) string { return fields[0] },
		// ERROR: The process "4242" not found.
		killFailed: func(out string) bool {
			return strings.HasPrefix(strings.TrimSpace(out), "ERROR:")
		},
	},
	// artist  4242  12.0  1.3 ... /Applications/.../aerender -project x.aep
	platform.DialectUnix: {
		pidField: 1,
		name:     func(_ []string, sig Signature) string { return sig.Name },
		// kill -9 is silent unless it failed.
		killFailed: func(out string) bool {
			return strings.TrimSpace(out) != ""
		},
	},
}

// records turns matched lines into process records, skipping lines too
// short to hold a PID.
func (f processFormat) records(lines []string, sig Signature) []model.ProcessRecord {
	out := make([]model.ProcessRecord, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) <= f.pidField {
			continue
		}
		out = append(out, model.ProcessRecord{
			Name: f.name(fields, sig),
			PID:  fields[f.pidField],
		})
	}
	return out
}
