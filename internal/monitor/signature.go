package monitor

import (
	"fmt"
	"regexp"

	"github.com/pranshuparmar/renderwatch/internal/platform"
)

// Signature recognizes one kind of render process in process-table text.
type Signature struct {
	// Name is reported for matches on dialects whose process table has no
	// usable name column.
	Name    string
	Pattern *regexp.Regexp
}

// NewSignature compiles pattern into a case-insensitive, line-oriented matcher.
func NewSignature(name, pattern string) (Signature, error) {
	re, err := regexp.Compile(`(?im)^.*(?:` + pattern + `).*$`)
	if err != nil {
		return Signature{}, fmt.Errorf("signature %s: %w", name, err)
	}
	return Signature{Name: name, Pattern: re}, nil
}

func mustSignature(name, pattern string) Signature {
	s, err := NewSignature(name, pattern)
	if err != nil {
		panic(err)
	}
	return s
}

// Lines returns every line of text the signature matches.
func (s Signature) Lines(text string) []string {
	if s.Pattern == nil {
		return nil
	}
	return s.Pattern.FindAllString(text, -1)
}

// Signatures is the ordered pair checked against a process table. Worker
// matches win over host matches; the two are never merged.
type Signatures struct {
	Worker Signature
	Host   Signature
}

// DefaultSignatures returns the standalone render worker and the host
// application's companion process for the profile.
func DefaultSignatures(p platform.Profile) Signatures {
	switch p.Family {
	case platform.Windows:
		return Signatures{
			Worker: mustSignature("aerender.exe", `aerender\.exe`),
			Host:   mustSignature("afterfx.com", `afterfx\.com`),
		}
	case platform.Darwin:
		return Signatures{
			Worker: mustSignature("aerender", `aerender`),
			Host:   mustSignature("After Effects", `After Effects`),
		}
	default:
		return Signatures{
			Worker: mustSignature("aerender", `aerender`),
			Host:   mustSignature("afterfx", `afterfx`),
		}
	}
}

// WithPatterns returns s with the non-empty patterns replaced. The
// canonical names are kept.
func (s Signatures) WithPatterns(worker, host string) (Signatures, error) {
	if worker != "" {
		sig, err := NewSignature(s.Worker.Name, worker)
		if err != nil {
			return s, err
		}
		s.Worker = sig
	}
	if host != "" {
		sig, err := NewSignature(s.Host.Name, host)
		if err != nil {
			return s, err
		}
		s.Host = sig
	}
	return s, nil
}

// match returns the lines of the highest-priority signature that hits, and
// that signature.
func (s Signatures) match(text string) ([]string, Signature, bool) {
	for _, sig := range []Signature{s.Worker, s.Host} {
		if lines := sig.Lines(text); len(lines) > 0 {
			return lines, sig, true
		}
	}
	return nil, Signature{}, false
}
