package model

import (
	"fmt"
	"sort"
	"strings"
)

// SizeUnavailable marks a record whose size could not be read from the listing.
const SizeUnavailable int64 = -1

// Sentinel record names. A listing holding one of these holds nothing else.
const (
	SentinelError       = "Error."
	SentinelInvalidPath = "Invalid path."
)

// FileRecord is one directory entry scraped from a listing command.
// Date and Time keep the OS-specific format of the listing.
type FileRecord struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Size  int64  `json:"size"`
}

// SentinelRecord builds the single record returned in place of real entries.
func SentinelRecord(name string) FileRecord {
	return FileRecord{
		Name:  name,
		Index: 0,
		Date:  "n/a",
		Time:  "n/a",
		Size:  SizeUnavailable,
	}
}

// Listing maps entry names to records.
type Listing map[string]FileRecord

// NewSentinelListing returns a listing holding only the named sentinel.
func NewSentinelListing(name string) Listing {
	return Listing{name: SentinelRecord(name)}
}

// Sentinel reports the sentinel name if the listing is a sentinel listing.
func (l Listing) Sentinel() (string, bool) {
	if len(l) != 1 {
		return "", false
	}
	for _, name := range []string{SentinelError, SentinelInvalidPath} {
		if _, ok := l[name]; ok {
			return name, true
		}
	}
	return "", false
}

// Ordered returns the records sorted by their listing index.
func (l Listing) Ordered() []FileRecord {
	records := make([]FileRecord, 0, len(l))
	for _, r := range l {
		records = append(records, r)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Index == records[j].Index {
			return records[i].Name < records[j].Name
		}
		return records[i].Index < records[j].Index
	})
	return records
}

// ListKind selects which entries a listing command returns.
type ListKind int

const (
	ListAll ListKind = iota
	ListFiles
	ListFolders
	ListHiddenFiles
	ListHiddenFolders
	ListAllHidden
)

var listKindNames = map[ListKind]string{
	ListAll:           "all",
	ListFiles:         "files",
	ListFolders:       "folders",
	ListHiddenFiles:   "hidden-files",
	ListHiddenFolders: "hidden-folders",
	ListAllHidden:     "all-hidden",
}

func (k ListKind) String() string {
	if name, ok := listKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ListKind(%d)", int(k))
}

// ListKinds returns every kind in declaration order.
func ListKinds() []ListKind {
	return []ListKind{ListAll, ListFiles, ListFolders, ListHiddenFiles, ListHiddenFolders, ListAllHidden}
}

// ParseListKind parses the name produced by ListKind.String.
func ParseListKind(s string) (ListKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ListAll, nil
	}
	for k, name := range listKindNames {
		if name == s {
			return k, nil
		}
	}
	return ListAll, fmt.Errorf("unknown list kind %q", s)
}
