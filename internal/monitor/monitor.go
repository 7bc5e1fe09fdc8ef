// Package monitor detects render worker processes from a process-table
// snapshot and validates or terminates them by PID.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/pranshuparmar/renderwatch/internal/events"
	"github.com/pranshuparmar/renderwatch/internal/logging"
	"github.com/pranshuparmar/renderwatch/internal/platform"
	"github.com/pranshuparmar/renderwatch/internal/proc"
	"github.com/pranshuparmar/renderwatch/pkg/model"
)

var pidToken = regexp.MustCompile(`^[0-9A-Za-z]+$`)

// Options configures a Monitor. The zero value uses BypassAuto and the
// profile's default signatures.
type Options struct {
	Bypass     BypassMode
	Signatures *Signatures
	Events     *events.Bus
	Logger     *slog.Logger
}

// Monitor holds one process-table snapshot taken at construction. The
// snapshot never changes; Validate and Kill always query the OS afresh.
type Monitor struct {
	profile  platform.Profile
	exec     proc.Executor
	sigs     Signatures
	format   processFormat
	logger   *slog.Logger
	bus      *events.Bus
	data     string
	bypassed bool
	records  []model.ProcessRecord
}

// New takes the snapshot. The only error is a launch failure of the
// process listing command.
func New(ctx context.Context, profile platform.Profile, exec proc.Executor, opts Options) (*Monitor, error) {
	m := &Monitor{
		profile: profile,
		exec:    exec,
		sigs:    DefaultSignatures(profile),
		format:  processFormats[profile.Dialect],
		logger:  opts.Logger,
		bus:     opts.Events,
	}
	if opts.Signatures != nil {
		m.sigs = *opts.Signatures
	}
	if m.logger == nil {
		m.logger = logging.GetLogger("monitor")
	}

	if opts.Bypass.Enabled(profile) {
		m.bypassed = true
		m.logger.Info("Skipping process check", "os", profile.Family, "bypass", string(opts.Bypass))
	} else {
		command := profile.ProcessListCommand()
		m.logger.Debug("Executing process list command", "command", command)
		data, err := exec.Run(ctx, command)
		if err != nil {
			return nil, fmt.Errorf("process snapshot: %w", err)
		}
		m.data = data
		m.logger.Debug("Process list retrieved", "length", len(data))

		if lines, sig, ok := m.sigs.match(data); ok {
			m.records = m.format.records(lines, sig)
		}
	}

	m.bus.Publish(events.SnapshotTakenEvent{
		Bypassed:  m.bypassed,
		Active:    m.IsActive(),
		Processes: len(m.records),
	})
	return m, nil
}

// Data returns the raw snapshot text, empty when bypassed.
func (m *Monitor) Data() string { return m.data }

// Bypassed reports whether the snapshot was skipped.
func (m *Monitor) Bypassed() bool { return m.bypassed }

// IsActive reports whether the snapshot shows a worker or host process.
func (m *Monitor) IsActive() bool {
	_, _, ok := m.sigs.match(m.data)
	return ok
}

// Records returns the recognized processes in snapshot order.
func (m *Monitor) Records() []model.ProcessRecord {
	out := make([]model.ProcessRecord, len(m.records))
	copy(out, m.records)
	return out
}

// Names returns process names parallel to PIDs.
func (m *Monitor) Names() []string {
	names := make([]string, len(m.records))
	for i, r := range m.records {
		names[i] = r.Name
	}
	return names
}

// PIDs returns PID tokens parallel to Names.
func (m *Monitor) PIDs() []string {
	pids := make([]string, len(m.records))
	for i, r := range m.records {
		pids[i] = r.PID
	}
	return pids
}

// Validate re-queries the OS for pid and reports whether it is still a
// recognized render process.
func (m *Monitor) Validate(ctx context.Context, pid string) (bool, error) {
	if !pidToken.MatchString(pid) {
		m.logger.Debug("Rejecting malformed pid", "pid", pid)
		return false, nil
	}

	out, err := m.exec.Run(ctx, m.profile.ValidateCommand(pid))
	if err != nil {
		return false, fmt.Errorf("validate %s: %w", pid, err)
	}
	_, _, ok := m.sigs.match(out)
	return ok, nil
}

// Kill terminates pid only if Validate confirms it. A stale pid is not an
// error: it returns killed=false and runs nothing. When the kill command
// runs but reports a failure, the error is a *KillError. The output is
// whatever the kill command printed.
func (m *Monitor) Kill(ctx context.Context, pid string) (output string, killed bool, err error) {
	ok, err := m.Validate(ctx, pid)
	if err != nil {
		return "", false, err
	}
	if !ok {
		m.logger.Info("Skipping kill of unrecognized pid", "pid", pid)
		m.bus.Publish(events.KillSkippedEvent{PID: pid})
		return "", false, nil
	}

	out, err := m.exec.Run(ctx, m.profile.KillCommand(pid))
	if err != nil {
		return "", false, fmt.Errorf("kill %s: %w", pid, err)
	}
	if m.format.killFailed(out) {
		msg := strings.TrimSpace(out)
		m.logger.Warn("Kill command failed", "pid", pid, "output", msg)
		m.bus.Publish(events.KillFailedEvent{PID: pid, Output: msg})
		return out, false, &KillError{PID: pid, Output: msg}
	}
	m.logger.Info("Killed render process", "pid", pid)
	m.bus.Publish(events.ProcessKilledEvent{PID: pid})
	return out, true, nil
}
