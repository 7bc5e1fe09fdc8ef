// Package completion produces shell completion candidates from a process
// snapshot.
package completion

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pranshuparmar/renderwatch/pkg/model"
)

// CompleteType represents what kind of completion is requested
type CompleteType string

const (
	CompletePIDs  CompleteType = "pids"
	CompleteNames CompleteType = "names"
	CompleteKinds CompleteType = "kinds"
)

// Source supplies process records, typically a *monitor.Monitor.
type Source interface {
	Records() []model.ProcessRecord
}

// Candidates returns the completion candidates for completeType. src may be
// nil for types that do not need a snapshot.
func Candidates(completeType CompleteType, src Source) []string {
	switch completeType {
	case CompleteKinds:
		kinds := model.ListKinds()
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}
		return names
	case CompletePIDs, CompleteNames:
		if src == nil {
			return nil
		}
		var items []string
		for _, r := range src.Records() {
			if completeType == CompletePIDs {
				items = append(items, r.PID)
			} else {
				items = append(items, r.Name)
			}
		}
		if completeType == CompletePIDs {
			return uniqueSortedPIDs(items)
		}
		return uniqueSorted(items)
	default:
		return nil
	}
}

// shellMetaChars contains characters that are unsafe in shell completion contexts.
// Candidates containing these characters are filtered out to prevent command injection.
const shellMetaChars = " \t\n$`\\\"';&|<>(){}[]!*?~"

// isShellSafe returns true if the string contains no shell metacharacters
func isShellSafe(s string) bool {
	return !strings.ContainsAny(s, shellMetaChars)
}

// uniqueSorted returns a sorted slice with duplicates and unsafe items removed
func uniqueSorted(items []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" && !seen[item] && isShellSafe(item) {
			seen[item] = true
			result = append(result, item)
		}
	}
	sort.Strings(result)
	return result
}

// uniqueSortedPIDs is uniqueSorted with numeric PIDs ordered by value
func uniqueSortedPIDs(items []string) []string {
	result := uniqueSorted(items)
	sort.SliceStable(result, func(i, j int) bool {
		a, errA := strconv.Atoi(result[i])
		b, errB := strconv.Atoi(result[j])
		if errA == nil && errB == nil {
			return a < b
		}
		if (errA == nil) != (errB == nil) {
			return errA == nil
		}
		return result[i] < result[j]
	})
	return result
}
