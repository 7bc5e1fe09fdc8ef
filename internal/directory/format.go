package directory

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pranshuparmar/renderwatch/internal/platform"
	"github.com/pranshuparmar/renderwatch/pkg/model"
)

// listingFormat describes how one dialect's listing text becomes records.
// Adding a dialect means adding one entry to formats.
type listingFormat struct {
	// errorMarkers are substrings the OS prints for a missing or unreadable path.
	errorMarkers []string
	// row matches lines that describe an entry.
	row *regexp.Regexp
	// minFields is the fewest whitespace tokens an entry line can have.
	minFields int
	// extract turns an entry line's tokens into a record, minus its index.
	extract func(fields []string) (model.FileRecord, bool)
	// extFilter builds, once per listing, the check that an entry line (or
	// the record it yielded) carries ext.
	extFilter func(ext string) func(line string, rec model.FileRecord) bool
}

var formats = map[platform.Dialect]listingFormat{
	platform.DialectWindows: {
		errorMarkers: []string{
			"The system cannot find the file specified.",
			"Logon failure: unknown user name or bad password.",
			"The system cannot find the path specified.",
			"File Not Found",
			"Access is denied.",
		},
		// 01/02/2024  10:00 ...   2024-01-02  10:00 ...   02.01.2024  10:00 ...
		row:       regexp.MustCompile(`^\s*\d{1,4}[./-]\d{1,2}[./-]\d{1,4}\s+\d{1,2}:\d{2}`),
		minFields: 4,
		extract:   extractWindows,
		extFilter: func(ext string) func(string, model.FileRecord) bool {
			re := extRegexp(ext)
			return func(line string, _ model.FileRecord) bool {
				return re.MatchString(line)
			}
		},
	},
	platform.DialectUnix: {
		errorMarkers: []string{
			"No such file or directory",
			"Permission denied",
			"cannot access",
			"can't cd",
			"Not a directory",
		},
		// drwxr-xr-x  -rw-r--r--@  lrwxrwxrwx+
		row:       regexp.MustCompile(`^[-dlbcpsD][-rwxsStTl]{9}[@+.]?\s`),
		minFields: 9,
		extract:   extractUnix,
		extFilter: func(ext string) func(string, model.FileRecord) bool {
			want := "." + strings.ToLower(ext)
			return func(_ string, rec model.FileRecord) bool {
				return strings.Contains(strings.ToLower(rec.Name), want)
			}
		},
	},
}

// reportsError reports whether a line outside the entry rows carries one of
// the OS error messages. Entry rows are skipped so a file named after an
// error message stays a file.
func (f listingFormat) reportsError(raw string) bool {
	for line := range strings.Lines(raw) {
		if f.row.MatchString(line) {
			continue
		}
		for _, marker := range f.errorMarkers {
			if strings.Contains(line, marker) {
				return true
			}
		}
	}
	return false
}

// extRegexp builds the line filter for a requested extension.
func extRegexp(ext string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^.*(\.` + regexp.QuoteMeta(ext) + `).*$`)
}

var meridiem = map[string]bool{"AM": true, "PM": true}

// extractWindows reads "date time [AM|PM] size name..." from a dir row.
func extractWindows(fields []string) (model.FileRecord, bool) {
	date, clock := fields[0], fields[1]
	rest := fields[2:]
	if meridiem[strings.ToUpper(rest[0])] {
		clock += " " + rest[0]
		rest = rest[1:]
	}
	if len(rest) < 2 {
		return model.FileRecord{}, false
	}

	size, ok := parseWindowsSize(rest[0])
	if !ok {
		return model.FileRecord{}, false
	}

	return model.FileRecord{
		Name: strings.Join(rest[1:], " "),
		Date: date,
		Time: clock,
		Size: size,
	}, true
}

// parseWindowsSize strips thousands separators; <DIR> and other bracketed
// markers have no size.
func parseWindowsSize(token string) (int64, bool) {
	if strings.HasPrefix(token, "<") {
		return model.SizeUnavailable, true
	}
	cleaned := strings.NewReplacer(",", "", ".", "", " ", "").Replace(token)
	size, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return size, true
}

// extractUnix reads an ls -l row:
// perms links owner group size month day time|year name...
func extractUnix(fields []string) (model.FileRecord, bool) {
	// Device files print "major, minor" in place of the size.
	if strings.HasSuffix(fields[4], ",") {
		fields = append(fields[:4:4], fields[5:]...)
		fields[4] = "-"
	}
	if len(fields) < 9 {
		return model.FileRecord{}, false
	}

	size, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		size = model.SizeUnavailable
	}

	name := strings.Join(fields[8:], " ")
	if strings.HasPrefix(fields[0], "l") {
		if i := strings.Index(name, " -> "); i >= 0 {
			name = name[:i]
		}
	}
	if len(name) > 1 {
		name = strings.TrimSuffix(name, "/")
	}

	return model.FileRecord{
		Name: name,
		Date: fields[5] + " " + fields[6],
		Time: fields[7],
		Size: size,
	}, true
}

var extPattern = regexp.MustCompile(`(?:\.([^.]+))?$`)

// extensionOf returns the extension named by a mask such as "*.png".
// Masks without a concrete extension ("*", "*.*", "") disable filtering.
func extensionOf(mask string) string {
	if mask == "" {
		return ""
	}
	m := extPattern.FindStringSubmatch(mask)
	if len(m) < 2 {
		return ""
	}
	ext := m[1]
	if strings.ContainsAny(ext, `*?[]\/`) {
		return ""
	}
	return ext
}
