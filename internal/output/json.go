package output

import (
	"encoding/json"

	"github.com/pranshuparmar/renderwatch/pkg/model"
)

// Snapshot is the JSON shape of a process snapshot.
type Snapshot struct {
	Active    bool                  `json:"active"`
	Bypassed  bool                  `json:"bypassed"`
	Processes []model.ProcessRecord `json:"processes"`
}

// ListingJSON is the JSON shape of a listing: records in index order.
type ListingJSON struct {
	Path     string             `json:"path"`
	Kind     string             `json:"kind"`
	Sentinel string             `json:"sentinel,omitempty"`
	Records  []model.FileRecord `json:"records"`
}

// NewListingJSON flattens listing for encoding.
func NewListingJSON(path string, kind model.ListKind, listing model.Listing) ListingJSON {
	out := ListingJSON{Path: path, Kind: kind.String(), Records: listing.Ordered()}
	if name, ok := listing.Sentinel(); ok {
		out.Sentinel = name
	}
	return out
}

func ToJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}
