package model

import "testing"

func TestListingSentinel(t *testing.T) {
	tests := []struct {
		name     string
		listing  Listing
		wantName string
		wantOK   bool
	}{
		{"error sentinel", NewSentinelListing(SentinelError), SentinelError, true},
		{"invalid path sentinel", NewSentinelListing(SentinelInvalidPath), SentinelInvalidPath, true},
		{"real record", Listing{"a.png": {Name: "a.png"}}, "", false},
		{"empty", Listing{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.listing.Sentinel()
			if got != tt.wantName || ok != tt.wantOK {
				t.Errorf("Sentinel() = (%q, %v), want (%q, %v)", got, ok, tt.wantName, tt.wantOK)
			}
		})
	}
}

func TestSentinelRecordFields(t *testing.T) {
	r := SentinelRecord(SentinelError)
	if r.Index != 0 || r.Date != "n/a" || r.Time != "n/a" || r.Size != SizeUnavailable {
		t.Errorf("SentinelRecord() = %+v", r)
	}
}

func TestListingOrdered(t *testing.T) {
	l := Listing{
		"c.png": {Name: "c.png", Index: 2},
		"a.png": {Name: "a.png", Index: 0},
		"b.png": {Name: "b.png", Index: 1},
	}
	got := l.Ordered()
	want := []string{"a.png", "b.png", "c.png"}
	for i, r := range got {
		if r.Name != want[i] {
			t.Errorf("Ordered()[%d] = %s, want %s", i, r.Name, want[i])
		}
	}
}

func TestParseListKind(t *testing.T) {
	for _, k := range ListKinds() {
		got, err := ParseListKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseListKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if got, err := ParseListKind(""); err != nil || got != ListAll {
		t.Errorf("ParseListKind(\"\") = %v, %v, want all", got, err)
	}
	if _, err := ParseListKind("everything"); err == nil {
		t.Error("ParseListKind should reject unknown kinds")
	}
}
