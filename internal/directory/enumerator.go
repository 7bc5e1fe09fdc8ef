// Package directory lists folders by running the OS listing command and
// scraping its text output into model.FileRecord values.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pranshuparmar/renderwatch/internal/events"
	"github.com/pranshuparmar/renderwatch/internal/logging"
	"github.com/pranshuparmar/renderwatch/internal/platform"
	"github.com/pranshuparmar/renderwatch/internal/proc"
	"github.com/pranshuparmar/renderwatch/pkg/model"
)

// Enumerator builds listing commands for one platform profile and parses
// what they print.
type Enumerator struct {
	profile platform.Profile
	exec    proc.Executor
	logger  *slog.Logger
	bus     *events.Bus
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithEvents publishes a ListingCompletedEvent for every listing.
func WithEvents(bus *events.Bus) Option {
	return func(e *Enumerator) {
		e.bus = bus
	}
}

// WithLogger overrides the module logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enumerator) {
		e.logger = logger
	}
}

// NewEnumerator creates an enumerator that runs commands through exec.
func NewEnumerator(profile platform.Profile, exec proc.Executor, opts ...Option) *Enumerator {
	e := &Enumerator{
		profile: profile,
		exec:    exec,
		logger:  logging.GetLogger("directory"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// List enumerates path. An empty mask disables extension filtering.
//
// The result always holds at least one record: either the entries found,
// or a single model.SentinelInvalidPath record when the OS rejected the
// path, or a single model.SentinelError record when nothing matched. The
// only error returned is a launch failure from the executor.
func (e *Enumerator) List(ctx context.Context, path string, kind model.ListKind, mask string) (model.Listing, error) {
	command := e.profile.ListCommand(path, kind, mask)
	e.logger.Debug("Listing directory", "path", path, "kind", kind, "mask", mask)

	raw, err := e.exec.Run(ctx, command)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	listing := Parse(e.profile.Dialect, raw, mask)

	outcome, records := "ok", len(listing)
	if name, ok := listing.Sentinel(); ok {
		records = 0
		outcome = "error"
		if name == model.SentinelInvalidPath {
			outcome = "invalid_path"
		}
		e.logger.Debug("Listing produced no entries", "path", path, "sentinel", name)
	}
	e.bus.Publish(events.ListingCompletedEvent{
		Path:    path,
		Kind:    kind.String(),
		Outcome: outcome,
		Records: records,
	})

	return listing, nil
}

// Parse turns raw listing text in the given dialect into a listing,
// applying the same sentinel rules as List.
func Parse(dialect platform.Dialect, raw, mask string) model.Listing {
	format, ok := formats[dialect]
	if !ok {
		return model.NewSentinelListing(model.SentinelError)
	}

	if format.reportsError(raw) {
		return model.NewSentinelListing(model.SentinelInvalidPath)
	}

	var keep func(string, model.FileRecord) bool
	if ext := extensionOf(mask); ext != "" {
		keep = format.extFilter(ext)
	}

	listing := make(model.Listing)
	index := 0
	for line := range strings.Lines(raw) {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" || !format.row.MatchString(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < format.minFields {
			continue
		}

		rec, ok := format.extract(fields)
		if !ok || rec.Name == "" || rec.Name == "." || rec.Name == ".." {
			continue
		}
		if keep != nil && !keep(line, rec) {
			continue
		}
		if _, dup := listing[rec.Name]; dup {
			continue
		}

		rec.Index = index
		index++
		listing[rec.Name] = rec
	}

	if len(listing) == 0 {
		return model.NewSentinelListing(model.SentinelError)
	}
	return listing
}
